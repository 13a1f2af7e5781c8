package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// TextModel is the one capability the model-assisted path needs from a
// hosted text-generation service: prompt in, text out.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const extractionPrompt = `You are preparing an advertising script for text-to-speech narration.
Remove everything that is not spoken aloud: scene headings, camera directions,
transition cues, sound and music annotations, speaker labels, and parenthetical
asides. Return ONLY the spoken dialogue, in its original order, as plain text
with no commentary and no formatting.

SCRIPT:
%s`

// ModelAssistedExtractor delegates cleaning of screenplay-style scripts
// to a text model, which handles ambiguous formatting (loose speaker
// labels, unusual cue syntax) better than the fixed rule chain. Tagged
// and plain scripts skip the model; any model failure or empty result
// falls back to the deterministic pass, so this extractor never fails.
type ModelAssistedExtractor struct {
	model    TextModel
	fallback *RegexExtractor
	log      *slog.Logger
}

func NewModelAssistedExtractor(model TextModel, log *slog.Logger) *ModelAssistedExtractor {
	return &ModelAssistedExtractor{
		model:    model,
		fallback: NewRegexExtractor(),
		log:      log,
	}
}

func (e *ModelAssistedExtractor) Extract(ctx context.Context, script string) (string, error) {
	if Classify(script) != ClassFormatted {
		return e.fallback.Extract(ctx, script)
	}

	out, err := e.model.Complete(ctx, fmt.Sprintf(extractionPrompt, script))
	if err != nil {
		e.log.Warn("model-assisted extraction failed, using regex cleanup",
			slog.String("error", err.Error()))
		return e.fallback.Extract(ctx, script)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		e.log.Warn("model-assisted extraction returned empty text, using regex cleanup")
		return e.fallback.Extract(ctx, script)
	}
	return out, nil
}
