package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsmithhq/adsmith/internal/cleaner"
	"github.com/adsmithhq/adsmith/internal/progress"
	"github.com/adsmithhq/adsmith/internal/tts"
	"github.com/adsmithhq/adsmith/internal/wav"
)

// stubProvider records what it was asked to speak and returns canned PCM.
type stubProvider struct {
	lastText   string
	pcm        []byte
	sampleRate int
	err        error
}

func (p *stubProvider) Name() string    { return "stub" }
func (p *stubProvider) SampleRate() int { return p.sampleRate }
func (p *stubProvider) Close() error    { return nil }

func (p *stubProvider) Synthesize(_ context.Context, text string, _ tts.Voice) (tts.Result, error) {
	p.lastText = text
	if p.err != nil {
		return tts.Result{}, p.err
	}
	return tts.Result{PCM: p.pcm, SampleRate: p.sampleRate}, nil
}

func newTestSpeech(provider *stubProvider) *Speech {
	return NewSpeech(
		cleaner.NewRegexExtractor(),
		provider,
		tts.Voice{ID: "stub-voice", Name: "Stub"},
		slog.New(slog.NewTextHandler(testWriter{}, nil)),
		nil,
	)
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestRunReturnsWAVDataURI(t *testing.T) {
	provider := &stubProvider{pcm: make([]byte, 480), sampleRate: 24000}
	uri, err := newTestSpeech(provider).Run(context.Background(), "NARRATOR: Fresh bread, every morning.")
	require.NoError(t, err)

	wavBytes, err := wav.DecodeDataURI(uri)
	require.NoError(t, err)
	hdr, err := wav.ParseHeader(wavBytes)
	require.NoError(t, err)
	assert.Equal(t, 480, hdr.DataSize)
	assert.Len(t, wavBytes, wav.HeaderSize+480)
	assert.Equal(t, 24000, hdr.SampleRate)
	assert.Equal(t, 1, hdr.Channels)
	assert.Equal(t, "Fresh bread, every morning.", provider.lastText)
}

func TestRunUsesProviderSampleRate(t *testing.T) {
	provider := &stubProvider{pcm: make([]byte, 320), sampleRate: 16000}
	uri, err := newTestSpeech(provider).Run(context.Background(), "Plain sentence.")
	require.NoError(t, err)

	wavBytes, err := wav.DecodeDataURI(uri)
	require.NoError(t, err)
	hdr, err := wav.ParseHeader(wavBytes)
	require.NoError(t, err)
	assert.Equal(t, 16000, hdr.SampleRate)
}

func TestRunRejectsEmptyScript(t *testing.T) {
	provider := &stubProvider{pcm: []byte{0, 0}, sampleRate: 24000}
	for _, script := range []string{"", "   ", "\n\t\n"} {
		_, err := newTestSpeech(provider).Run(context.Background(), script)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyScript)

		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "validate", perr.Stage)
	}
	assert.Empty(t, provider.lastText, "synthesis must not run for empty input")
}

func TestRunTruncatesAtSynthesisBudget(t *testing.T) {
	provider := &stubProvider{pcm: []byte{0, 0}, sampleRate: 24000}
	long := strings.Repeat("a", maxSynthesisChars+1500)
	_, err := newTestSpeech(provider).Run(context.Background(), long)
	require.NoError(t, err)
	assert.Len(t, provider.lastText, maxSynthesisChars)
}

func TestRunTruncatesOnRuneBoundary(t *testing.T) {
	// A multibyte rune straddling the budget must not be split in two.
	provider := &stubProvider{pcm: []byte{0, 0}, sampleRate: 24000}
	long := strings.Repeat("a", maxSynthesisChars-1) + strings.Repeat("é", 200)
	_, err := newTestSpeech(provider).Run(context.Background(), long)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(provider.lastText))
	assert.LessOrEqual(t, len(provider.lastText), maxSynthesisChars)
	assert.Equal(t, maxSynthesisChars-1, len(provider.lastText))
}

func TestRunSafetyNetKeepsOriginalScript(t *testing.T) {
	// Bracket-only content cleans down to nothing, so the original
	// script must be what reaches the synthesizer.
	provider := &stubProvider{pcm: []byte{0, 0}, sampleRate: 24000}
	script := "[SFX: thunder]\n[MUSIC: strings]"
	_, err := newTestSpeech(provider).Run(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, script, provider.lastText)
}

func TestRunPropagatesSynthesisError(t *testing.T) {
	provider := &stubProvider{err: &tts.SynthesisError{Provider: "stub", Err: tts.ErrQuotaExceeded}}
	_, err := newTestSpeech(provider).Run(context.Background(), "Say this.")
	require.Error(t, err)
	assert.ErrorIs(t, err, tts.ErrQuotaExceeded)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "synthesize", perr.Stage)
}

func TestRunCleansStructuredScript(t *testing.T) {
	provider := &stubProvider{pcm: []byte{0, 0}, sampleRate: 24000}
	script := "NARRATOR: Welcome to Lumen Coffee.\n[SFX: grinder]\nNARRATOR: Small batches, big flavor."
	_, err := newTestSpeech(provider).Run(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Lumen Coffee. Small batches, big flavor.", provider.lastText)
}

func TestRunEmitsProgressStages(t *testing.T) {
	provider := &stubProvider{pcm: []byte{0, 0}, sampleRate: 24000}
	var stages []progress.Stage
	p := NewSpeech(
		cleaner.NewRegexExtractor(),
		provider,
		tts.Voice{ID: "stub-voice", Name: "Stub"},
		slog.New(slog.NewTextHandler(testWriter{}, nil)),
		func(ev progress.Event) { stages = append(stages, ev.Stage) },
	)
	_, err := p.Run(context.Background(), "One line.")
	require.NoError(t, err)
	assert.Equal(t, []progress.Stage{
		progress.StageClassify,
		progress.StageExtract,
		progress.StageSynthesize,
		progress.StageEncode,
		progress.StageComplete,
	}, stages)
}
