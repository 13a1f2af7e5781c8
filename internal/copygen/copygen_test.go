package copygen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsmithhq/adsmith/internal/brief"
)

func TestParseContentTypeCoversAllSlugs(t *testing.T) {
	for _, slug := range Slugs() {
		ct, err := ParseContentType(slug)
		require.NoError(t, err, slug)
		assert.Equal(t, slug, ct.Slug())
	}

	_, err := ParseContentType("blog-post")
	assert.Error(t, err)
}

func TestDirectiveForEveryContentType(t *testing.T) {
	for _, slug := range Slugs() {
		ct, err := ParseContentType(slug)
		require.NoError(t, err)
		d, err := directiveFor(ct)
		require.NoError(t, err, slug)
		assert.NotEmpty(t, d, slug)
	}
}

func TestDirectiveCarriesTypedParameters(t *testing.T) {
	d, err := directiveFor(Tagline{Count: 3})
	require.NoError(t, err)
	assert.Contains(t, d, "3 alternative")

	d, err = directiveFor(RadioScript{Seconds: 15})
	require.NoError(t, err)
	assert.Contains(t, d, "15-second")

	d, err = directiveFor(SocialPost{Platform: "linkedin"})
	require.NoError(t, err)
	assert.Contains(t, d, "linkedin")
}

func TestBuildUserPromptIncludesBrief(t *testing.T) {
	b := brief.Brief{
		Company:     "Acme Anvils",
		Description: "Heavy-duty anvils for discerning coyotes.",
		Keywords:    []string{"durable", "fast shipping"},
		Audience:    "professional blacksmiths",
		Tone:        "playful",
	}
	prompt, err := buildUserPrompt(b, Tagline{Count: 5})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Acme Anvils")
	assert.Contains(t, prompt, "durable, fast shipping")
	assert.Contains(t, prompt, "professional blacksmiths")
	assert.Contains(t, prompt, "playful")
}

func TestParseArtifact(t *testing.T) {
	a, err := parseArtifact(`{"title": "Spot A", "body": "Buy anvils."}`, RadioScript{})
	require.NoError(t, err)
	assert.Equal(t, "radio-script", a.Type)
	assert.Equal(t, "Spot A", a.Title)
	assert.Equal(t, "Buy anvils.", a.Body)
}

func TestParseArtifactStripsFencesAndProse(t *testing.T) {
	raw := "Here is your copy:\n```json\n{\"title\": \"T\", \"body\": \"B\"}\n```\nHope it helps."
	a, err := parseArtifact(raw, Tagline{})
	require.NoError(t, err)
	assert.Equal(t, "T", a.Title)
	assert.Equal(t, "B", a.Body)
}

func TestParseArtifactRejectsEmptyBody(t *testing.T) {
	_, err := parseArtifact(`{"title": "T", "body": "  "}`, Tagline{})
	assert.Error(t, err)

	_, err = parseArtifact("no json here", Tagline{})
	assert.Error(t, err)
}

type fakeGenerator struct {
	fail map[string]bool
}

func (f *fakeGenerator) Generate(_ context.Context, _ brief.Brief, ct ContentType) (*Artifact, error) {
	if f.fail[ct.Slug()] {
		return nil, errors.New("model error")
	}
	return &Artifact{Type: ct.Slug(), Title: ct.Slug(), Body: "copy"}, nil
}

func (f *fakeGenerator) Complete(context.Context, string) (string, error) { return "", nil }

func TestGenerateAllFansOutIndependently(t *testing.T) {
	g := &fakeGenerator{fail: map[string]bool{"tv-script": true}}
	types := []ContentType{Tagline{}, TVScript{}, SocialPost{}}

	outcomes := GenerateAll(context.Background(), g, brief.Brief{Description: "d"}, types)
	require.Len(t, outcomes, 3)

	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, "tagline", outcomes[0].Artifact.Type)

	// One failure does not poison sibling requests.
	assert.Error(t, outcomes[1].Err)
	assert.Nil(t, outcomes[1].Artifact)

	assert.NoError(t, outcomes[2].Err)
	assert.Equal(t, "social-post", outcomes[2].Artifact.Type)
}
