package copygen

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/adsmithhq/adsmith/internal/brief"
)

var novaModels = map[string]string{
	"nova-lite": "us.amazon.nova-2-lite-v1:0",
}

// NovaGenerator generates copy with Amazon Nova via the Bedrock
// Converse API.
type NovaGenerator struct {
	model  string
	client *bedrockruntime.Client
}

func NewNovaGenerator(model string) (*NovaGenerator, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &NovaGenerator{
		model:  model,
		client: bedrockruntime.NewFromConfig(cfg),
	}, nil
}

func (g *NovaGenerator) modelID() string {
	id := novaModels[g.model]
	if id == "" {
		id = novaModels["nova-lite"]
	}
	return id
}

func (g *NovaGenerator) Generate(ctx context.Context, b brief.Brief, ct ContentType) (*Artifact, error) {
	userPrompt, err := buildUserPrompt(b, ct)
	if err != nil {
		return nil, err
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		text, err := g.call(ctx, systemPrompt, userPrompt)
		if err == nil {
			artifact, parseErr := parseArtifact(text, ct)
			if parseErr == nil {
				return artifact, nil
			}
			err = parseErr
		}
		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, maxRetries, err)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= time.Duration(backoffMult)
		}
	}
	return nil, lastErr
}

// Complete runs a plain-text completion with no system prompt.
func (g *NovaGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	return g.call(ctx, "", prompt)
}

func (g *NovaGenerator) call(ctx context.Context, system, user string) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(g.modelID()),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: user},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(generateMaxTokens),
			Temperature: aws.Float32(temperature),
		},
	}
	if system != "" {
		input.System = []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		}
	}

	resp, err := g.client.Converse(ctx, input)
	if err != nil {
		return "", fmt.Errorf("Nova converse error: %w", err)
	}

	out, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok || len(out.Value.Content) == 0 {
		return "", fmt.Errorf("empty response from Nova")
	}
	textBlock, ok := out.Value.Content[0].(*types.ContentBlockMemberText)
	if !ok {
		return "", fmt.Errorf("unexpected content block from Nova")
	}
	return textBlock.Value, nil
}
