package tts

import (
	"testing"

	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
)

func TestGoogleAudioConfigRequestsHeaderlessPCM(t *testing.T) {
	p := &GoogleProvider{}
	cfg := p.audioConfig()
	// LINEAR16 responses carry their own WAV header; PCM is the
	// headerless encoding the container writer expects.
	assert.Equal(t, texttospeechpb.AudioEncoding_PCM, cfg.AudioEncoding)
	assert.Equal(t, int32(googleSampleRate), cfg.SampleRateHertz)
	assert.Zero(t, cfg.SpeakingRate)
	assert.Zero(t, cfg.Pitch)
}

func TestGoogleAudioConfigAppliesTuning(t *testing.T) {
	p := &GoogleProvider{speakingRate: 1.2, pitch: -2.5}
	cfg := p.audioConfig()
	assert.Equal(t, 1.2, cfg.SpeakingRate)
	assert.Equal(t, -2.5, cfg.Pitch)
}
