package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// pollySampleRate is the legacy 16 kHz path; Polly's pcm output does
// not support 24000. The WAV writer is told the real rate.
const pollySampleRate = 16000

// PollyProvider implements Provider using AWS Polly with pcm output.
type PollyProvider struct {
	client *polly.Client
}

func NewPollyProvider(ctx context.Context, _ Config) (*PollyProvider, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for Polly: %w", err)
	}
	return &PollyProvider{client: polly.NewFromConfig(awsCfg)}, nil
}

func (p *PollyProvider) Name() string    { return "polly" }
func (p *PollyProvider) SampleRate() int { return pollySampleRate }

func (p *PollyProvider) Synthesize(ctx context.Context, text string, voice Voice) (Result, error) {
	input := &polly.SynthesizeSpeechInput{
		Engine:       types.EngineNeural,
		OutputFormat: types.OutputFormatPcm,
		SampleRate:   aws.String("16000"),
		Text:         &text,
		TextType:     types.TextTypeText,
		VoiceId:      types.VoiceId(voice.ID),
	}

	resp, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return Result{}, classifyAWSError(p.Name(), err)
	}
	defer resp.AudioStream.Close()

	data, err := io.ReadAll(resp.AudioStream)
	if err != nil {
		return Result{}, &SynthesisError{Provider: p.Name(), Err: fmt.Errorf("read audio stream: %w", err)}
	}
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: polly returned an empty stream", ErrEmptySynthesis)
	}

	return Result{PCM: data, SampleRate: pollySampleRate}, nil
}

func (p *PollyProvider) Close() error { return nil }
