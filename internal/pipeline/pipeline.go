// Package pipeline drives a script through cleaning, speech synthesis,
// and container encoding. One Run is one request with no shared state
// across runs. Synthesis is never retried here; a failed call surfaces
// to the caller, who owns the regenerate decision.
package pipeline

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/adsmithhq/adsmith/internal/cleaner"
	"github.com/adsmithhq/adsmith/internal/progress"
	"github.com/adsmithhq/adsmith/internal/tts"
	"github.com/adsmithhq/adsmith/internal/wav"
)

// maxSynthesisChars is the input budget of the hosted TTS capability.
// Longer text is cut off hard at the character boundary.
const maxSynthesisChars = 5000

// ErrEmptyScript rejects empty or whitespace-only input before any
// cleaning runs. An empty original script is the one case the safety
// net cannot save.
var ErrEmptyScript = errors.New("script is empty")

// Error tags a failure with the pipeline stage it came from.
type Error struct {
	Stage   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Speech converts one ad script into a WAV data URI.
type Speech struct {
	extractor cleaner.Extractor
	synth     tts.Provider
	voice     tts.Voice
	log       *slog.Logger
	onEvent   progress.Callback
}

func NewSpeech(extractor cleaner.Extractor, synth tts.Provider, voice tts.Voice, log *slog.Logger, onEvent progress.Callback) *Speech {
	if onEvent == nil {
		onEvent = progress.NopCallback
	}
	return &Speech{
		extractor: extractor,
		synth:     synth,
		voice:     voice,
		log:       log,
		onEvent:   onEvent,
	}
}

// Run executes the full chain for one script and returns the
// data:audio/wav;base64 URI. There is no partial output: either the
// complete asset comes back, or an error does.
func (s *Speech) Run(ctx context.Context, script string) (string, error) {
	start := time.Now()
	id, err := ulid.New(ulid.Timestamp(start), rand.Reader)
	if err != nil {
		return "", &Error{Stage: "validate", Message: "generating request id", Err: err}
	}
	requestID := id.String()
	log := s.log.With(slog.String("request_id", requestID))

	tracer := otel.Tracer("adsmith/pipeline")
	ctx, span := tracer.Start(ctx, "speech.run", trace.WithAttributes(
		attribute.String("request_id", requestID),
		attribute.String("tts.provider", s.synth.Name()),
		attribute.String("tts.voice", s.voice.Name),
	))
	defer span.End()

	if strings.TrimSpace(script) == "" {
		return "", &Error{Stage: "validate", Message: "no script to synthesize", Err: ErrEmptyScript}
	}

	// Classifying
	s.onEvent(progress.NewEvent(progress.StageClassify, "Classifying script...", 0.05, start))
	class := cleaner.Classify(script)
	log.InfoContext(ctx, "script classified",
		slog.String("class", class.String()),
		slog.Int("script_chars", len(script)))
	span.SetAttributes(attribute.String("script.class", class.String()))

	// Extracting (the extractor handles its own model fallback; it
	// never fails the run)
	s.onEvent(progress.NewEvent(progress.StageExtract, "Extracting dialogue...", 0.15, start))
	cleaned, err := s.extractor.Extract(ctx, script)
	if err != nil {
		// Defensive: no shipped extractor returns an error, but the
		// interface allows it and recovery is specified.
		log.WarnContext(ctx, "extraction failed, keeping original script", slog.String("error", err.Error()))
		cleaned = script
	}

	// SafetyNetCheck: never send empty text downstream.
	if strings.TrimSpace(cleaned) == "" {
		log.WarnContext(ctx, "cleaning produced empty text, substituting original script")
		cleaned = script
	}

	// LengthGuarding: never split a rune, the synthesizers reject
	// invalid UTF-8.
	if len(cleaned) > maxSynthesisChars {
		cut := maxSynthesisChars
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		log.WarnContext(ctx, "cleaned text exceeds synthesis budget, truncating",
			slog.Int("chars", len(cleaned)),
			slog.Int("budget", maxSynthesisChars))
		cleaned = cleaned[:cut]
	}

	// Synthesizing: the single network-bound step.
	s.onEvent(progress.NewEvent(progress.StageSynthesize, fmt.Sprintf("Synthesizing speech (%s, %s)...", s.synth.Name(), s.voice.Name), 0.35, start))
	result, err := s.synth.Synthesize(ctx, cleaned, s.voice)
	if err != nil {
		span.RecordError(err)
		return "", &Error{Stage: "synthesize", Message: "speech synthesis failed", Err: err}
	}
	log.InfoContext(ctx, "speech synthesized",
		slog.Int("text_chars", len(cleaned)),
		slog.Int("pcm_bytes", len(result.PCM)),
		slog.Int("sample_rate", result.SampleRate))

	// ContainerWriting
	s.onEvent(progress.NewEvent(progress.StageEncode, "Encoding WAV container...", 0.9, start))
	uri, err := wav.DataURI(result.PCM, wav.Params{
		Channels:   wav.DefaultChannels,
		SampleRate: result.SampleRate,
	})
	if err != nil {
		span.RecordError(err)
		return "", &Error{Stage: "encode", Message: "WAV container write failed", Err: err}
	}

	s.onEvent(progress.NewEvent(progress.StageComplete, "Audio ready", 1.0, start))
	log.InfoContext(ctx, "speech pipeline complete",
		slog.Int("uri_chars", len(uri)),
		slog.Duration("elapsed", time.Since(start)))
	return uri, nil
}
