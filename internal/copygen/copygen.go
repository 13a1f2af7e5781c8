package copygen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/adsmithhq/adsmith/internal/brief"
)

// Artifact is one generated piece of marketing content.
type Artifact struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Generator produces one artifact per call. Implementations also expose
// Complete for plain-text completions (used by the model-assisted
// dialogue extractor).
type Generator interface {
	Generate(ctx context.Context, b brief.Brief, ct ContentType) (*Artifact, error)
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewGenerator creates a copy generator by model family name.
func NewGenerator(name string) (Generator, error) {
	switch name {
	case "haiku", "sonnet":
		return NewClaudeGenerator(name), nil
	case "nova-lite":
		return NewNovaGenerator(name)
	default:
		return nil, fmt.Errorf("unknown generation model %q: choose haiku, sonnet, or nova-lite", name)
	}
}

// parseArtifact turns the raw model response into an Artifact, tolerating
// markdown fences and stray prose around the JSON object.
func parseArtifact(text string, ct ContentType) (*Artifact, error) {
	text = stripMarkdownFences(text)
	text = extractJSON(text)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("no JSON content found in response")
	}

	var a Artifact
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w\nRaw text (first 500 chars): %s", err, truncate(text, 500))
	}
	if strings.TrimSpace(a.Body) == "" {
		return nil, fmt.Errorf("artifact has empty body")
	}
	a.Type = ct.Slug()
	return &a, nil
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

func stripMarkdownFences(text string) string {
	if matches := fenceRe.FindStringSubmatch(text); len(matches) > 1 {
		return matches[1]
	}
	return text
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// Outcome pairs a content type with its result from a concurrent batch.
type Outcome struct {
	Type     ContentType
	Artifact *Artifact
	Err      error
}

// GenerateAll fans out one generation request per content type. Each
// request is independent end to end; results come back in input order.
func GenerateAll(ctx context.Context, g Generator, b brief.Brief, types []ContentType) []Outcome {
	outcomes := make([]Outcome, len(types))

	var wg sync.WaitGroup
	for i, ct := range types {
		wg.Add(1)
		go func(i int, ct ContentType) {
			defer wg.Done()
			artifact, err := g.Generate(ctx, b, ct)
			outcomes[i] = Outcome{Type: ct, Artifact: artifact, Err: err}
		}(i, ct)
	}
	wg.Wait()

	return outcomes
}
