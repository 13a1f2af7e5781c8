package copygen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/adsmithhq/adsmith/internal/brief"
)

var claudeModels = map[string]string{
	"haiku":  "claude-haiku-4-5-20251001",
	"sonnet": "claude-sonnet-4-5-20250929",
}

const (
	temperature    = 0.7
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	backoffMult    = 2

	generateMaxTokens = 4096
	completeMaxTokens = 8192
)

// ClaudeGenerator generates copy with the Anthropic API. Generation
// calls are retried with backoff; unlike synthesis, a retried
// generation is cheap relative to a failed run.
type ClaudeGenerator struct {
	model string
}

func NewClaudeGenerator(model string) *ClaudeGenerator {
	return &ClaudeGenerator{model: model}
}

func (g *ClaudeGenerator) modelID() anthropic.Model {
	id := claudeModels[g.model]
	if id == "" {
		id = claudeModels["haiku"]
	}
	return anthropic.Model(id)
}

func (g *ClaudeGenerator) Generate(ctx context.Context, b brief.Brief, ct ContentType) (*Artifact, error) {
	userPrompt, err := buildUserPrompt(b, ct)
	if err != nil {
		return nil, err
	}

	var artifact *Artifact
	err = g.withRetry(ctx, func() error {
		text, callErr := g.call(ctx, systemPrompt, userPrompt, generateMaxTokens)
		if callErr != nil {
			return callErr
		}
		parsed, parseErr := parseArtifact(text, ct)
		if parseErr != nil {
			return parseErr
		}
		artifact = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// Complete runs a plain-text completion with no system prompt and no
// retry; callers on this path have their own fallback.
func (g *ClaudeGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	return g.call(ctx, "", prompt, completeMaxTokens)
}

func (g *ClaudeGenerator) call(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	client := anthropic.NewClient()

	params := anthropic.MessageNewParams{
		Model:       g.modelID(),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	message, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	text := extractText(message)
	if text == "" {
		return "", fmt.Errorf("empty response from Claude")
	}
	return text, nil
}

func (g *ClaudeGenerator) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, maxRetries, lastErr)
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= time.Duration(backoffMult)
		}
	}
	return lastErr
}

func extractText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}
