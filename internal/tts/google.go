package tts

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// googleSampleRate is the default output rate for the whole tool.
const googleSampleRate = 24000

// GoogleProvider implements Provider using Google Cloud Text-to-Speech.
// It requests PCM encoding, which is headerless 16-bit samples; the
// LINEAR16 encoding wraps the same samples in a WAV header, which would
// end up inside the data chunk of the container written downstream.
type GoogleProvider struct {
	client       *texttospeech.Client
	speakingRate float64
	pitch        float64
}

func NewGoogleProvider(ctx context.Context, cfg Config) (*GoogleProvider, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create Google TTS client: %w", err)
	}
	return &GoogleProvider{
		client:       client,
		speakingRate: cfg.SpeakingRate,
		pitch:        cfg.Pitch,
	}, nil
}

func (p *GoogleProvider) Name() string    { return "google" }
func (p *GoogleProvider) SampleRate() int { return googleSampleRate }

func (p *GoogleProvider) Synthesize(ctx context.Context, text string, voice Voice) (Result, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.ID,
		},
		AudioConfig: p.audioConfig(),
	}

	resp, err := p.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return Result{}, classifyGRPCError(p.Name(), err)
	}
	if len(resp.AudioContent) == 0 {
		return Result{}, fmt.Errorf("%w: google returned an empty buffer", ErrEmptySynthesis)
	}

	return Result{PCM: resp.AudioContent, SampleRate: googleSampleRate}, nil
}

func (p *GoogleProvider) audioConfig() *texttospeechpb.AudioConfig {
	cfg := &texttospeechpb.AudioConfig{
		AudioEncoding:   texttospeechpb.AudioEncoding_PCM,
		SampleRateHertz: googleSampleRate,
	}
	if p.speakingRate != 0 {
		cfg.SpeakingRate = p.speakingRate
	}
	if p.pitch != 0 {
		cfg.Pitch = p.pitch
	}
	return cfg
}

func (p *GoogleProvider) Close() error { return p.client.Close() }
