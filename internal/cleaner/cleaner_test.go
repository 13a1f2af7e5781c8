package cleaner

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		script string
		want   Classification
	}{
		{"empty-ish prose", "Buy our coffee. It is good coffee.", ClassPlain},
		{"bracketed tags on every line", "[NARRATOR]: Hello.\n[VOICEOVER]: World.", ClassStructured},
		{"unbracketed tags", "NARRATOR: Hello.\nANNOUNCER: Act now.", ClassStructured},
		{"tagged with annotation line", "[NARRATOR]: Hello.\n[SFX: door slam]", ClassStructured},
		{"scene heading", "EXT. PARK - DAY\nA dog runs.", ClassFormatted},
		{"transition cue", "FADE IN:\nA morning kitchen.", ClassFormatted},
		{"voiceover bracket tag", "A kitchen. [VO] Start your day right.", ClassFormatted},
		{"long plain text", strings.Repeat("Great deals every day. ", 20), ClassFormatted},
		{"mixed loose tag and scene", "EXT. PARK - DAY\nNARRATOR: Adopt today.", ClassFormatted},
		{"unknown speaker name", "Bob: I love this product.", ClassPlain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.script), "script: %q", tc.script)
		})
	}
}

func TestRegexExtractorStructured(t *testing.T) {
	e := NewRegexExtractor()

	out, err := e.Extract(context.Background(), "[NARRATOR]: Welcome to Acme. [SFX: chime] Buy now!")
	require.NoError(t, err)
	assert.NotContains(t, out, "[SFX")
	assert.NotContains(t, out, "NARRATOR")
	assert.NotContains(t, out, "[")
	assert.Contains(t, out, "Welcome to Acme.")
}

func TestRegexExtractorStructuredPreservesOrder(t *testing.T) {
	e := NewRegexExtractor()
	script := "[NARRATOR]: First line.\n[SFX: whoosh]\n[ANNOUNCER]: Second line.\nVOICEOVER: Third line."

	out, err := e.Extract(context.Background(), script)
	require.NoError(t, err)

	first := strings.Index(out, "First line.")
	second := strings.Index(out, "Second line.")
	third := strings.Index(out, "Third line.")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)
	assert.NotContains(t, out, ":")
}

func TestRegexExtractorFormatted(t *testing.T) {
	e := NewRegexExtractor()
	script := "EXT. PARK - DAY\nA dog runs.\nCUT TO:\nNARRATOR: Adopt today."

	out, err := e.Extract(context.Background(), script)
	require.NoError(t, err)

	// Scene headings and transitions go; the loose NARRATOR label is
	// deliberately kept on this path (only the strict tagged path
	// strips speaker labels).
	assert.Equal(t, "A dog runs. NARRATOR: Adopt today.", out)
}

func TestRegexExtractorFormattedRuleChain(t *testing.T) {
	e := NewRegexExtractor()
	script := strings.Join([]string{
		"=== Variant 1 ===",
		"INT. COFFEE SHOP - MORNING",
		"[MUSIC: upbeat jingle]",
		"Try our new roast (pause for effect) today.",
		"[store interior]",
		"DISSOLVE TO:",
		"Every cup, every morning.",
	}, "\n")

	out, err := e.Extract(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, "Try our new roast today. Every cup, every morning.", out)
}

func TestRegexExtractorPlainIdempotent(t *testing.T) {
	e := NewRegexExtractor()
	ctx := context.Background()

	for _, script := range []string{
		"Fresh bread, baked daily.",
		"Our store   has\n\nthe best prices in town.",
		"Visit us today and save.",
	} {
		once, err := e.Extract(ctx, script)
		require.NoError(t, err)
		twice, err := e.Extract(ctx, once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "cleaning should be idempotent for %q", script)
	}
}

func TestRegexExtractorTagPatternWithNoCapture(t *testing.T) {
	e := NewRegexExtractor()

	// Every line is a production annotation with no spoken text at all;
	// cleaning yields nothing and the pipeline's safety net takes over.
	out, err := e.Extract(context.Background(), "[SFX: thunder]\n[MUSIC: strings]")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

type stubModel struct {
	out string
	err error
}

func (s *stubModel) Complete(context.Context, string) (string, error) { return s.out, s.err }

func TestModelAssistedExtractorPrefersModel(t *testing.T) {
	e := NewModelAssistedExtractor(&stubModel{out: "Adopt today."}, slog.Default())

	out, err := e.Extract(context.Background(), "EXT. PARK - DAY\nNARRATOR: Adopt today.")
	require.NoError(t, err)
	assert.Equal(t, "Adopt today.", out)
}

func TestModelAssistedExtractorFallsBackOnError(t *testing.T) {
	e := NewModelAssistedExtractor(&stubModel{err: errors.New("model unavailable")}, slog.Default())

	out, err := e.Extract(context.Background(), "EXT. PARK - DAY\nA dog runs.\nCUT TO:\nNARRATOR: Adopt today.")
	require.NoError(t, err)
	assert.Equal(t, "A dog runs. NARRATOR: Adopt today.", out)
}

func TestModelAssistedExtractorFallsBackOnEmpty(t *testing.T) {
	e := NewModelAssistedExtractor(&stubModel{out: "   \n"}, slog.Default())

	out, err := e.Extract(context.Background(), "EXT. PARK - DAY\nA dog runs.")
	require.NoError(t, err)
	assert.Equal(t, "A dog runs.", out)
}

func TestModelAssistedExtractorSkipsModelForTaggedScripts(t *testing.T) {
	// The model would return garbage; tagged scripts must never reach it.
	e := NewModelAssistedExtractor(&stubModel{out: "WRONG"}, slog.Default())

	out, err := e.Extract(context.Background(), "[NARRATOR]: Only this.")
	require.NoError(t, err)
	assert.Equal(t, "Only this.", out)
}
