package brief

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceExactlyOneOf(t *testing.T) {
	ctx := context.Background()

	_, err := Source{}.Resolve(ctx)
	assert.ErrorIs(t, err, ErrAmbiguousSource)

	_, err = Source{Inline: "a company", File: "brief.txt"}.Resolve(ctx)
	assert.ErrorIs(t, err, ErrAmbiguousSource)

	_, err = Source{URL: "https://example.com", PDF: "brief.pdf"}.Resolve(ctx)
	assert.ErrorIs(t, err, ErrAmbiguousSource)
}

func TestInlineSource(t *testing.T) {
	c, err := Source{Inline: "Acme sells anvils.\nReliable since 1949."}.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inline", c.Source)
	assert.Equal(t, "Acme sells anvils.", c.Title)
	assert.Equal(t, 6, c.WordCount)
}

func TestInlineSourceRejectsWhitespace(t *testing.T) {
	_, err := Source{Inline: "   \n\t"}.Resolve(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAmbiguousSource)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.txt")
	require.NoError(t, os.WriteFile(path, []byte("Fresh bread, baked daily."), 0o644))

	c, err := Source{File: path}.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "brief.txt", c.Source)
	assert.Equal(t, "Fresh bread, baked daily.", c.Text)
	assert.Equal(t, 4, c.WordCount)
}

func TestFileSourceRejectsMissingAndDir(t *testing.T) {
	_, err := Source{File: filepath.Join(t.TempDir(), "missing.txt")}.Resolve(context.Background())
	assert.Error(t, err)

	_, err = Source{File: t.TempDir()}.Resolve(context.Background())
	assert.Error(t, err)
}
