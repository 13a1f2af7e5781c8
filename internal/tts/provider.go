// Package tts invokes hosted text-to-speech services and returns raw
// linear-PCM audio. Providers differ in transport and sample rate but
// share one contract: cleaned text plus a voice in, PCM bytes out.
// Container wrapping happens downstream in the wav package.
package tts

import (
	"context"
	"fmt"
)

// Voice holds a provider-specific voice identifier resolved from the
// user-facing catalog.
type Voice struct {
	ID           string
	Name         string
	LanguageCode string
}

// Result is the output of a synthesis call: signed 16-bit little-endian
// mono samples at the provider's fixed rate.
type Result struct {
	PCM        []byte
	SampleRate int
}

// Provider synthesizes speech from cleaned text. Synthesis is never
// retried internally; transient failures surface to the caller, who
// owns the regenerate decision.
type Provider interface {
	Name() string
	// SampleRate is the fixed output rate in Hz. Google and Gemini
	// produce 24000; Polly's pcm output is the 16000 legacy path.
	SampleRate() int
	Synthesize(ctx context.Context, text string, voice Voice) (Result, error)
	Close() error
}

// Config carries the numeric synthesis settings shared by providers.
type Config struct {
	SpeakingRate float64 // 0 means provider default
	Pitch        float64 // semitones, 0 means provider default
	APIKey       string  // Gemini only; overrides GEMINI_API_KEY
}

// NewProvider creates a TTS provider by name.
func NewProvider(ctx context.Context, name string, cfg Config) (Provider, error) {
	switch name {
	case "google":
		return NewGoogleProvider(ctx, cfg)
	case "gemini":
		return NewGeminiProvider(cfg), nil
	case "polly":
		return NewPollyProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown TTS provider %q: choose google, gemini, or polly", name)
	}
}
