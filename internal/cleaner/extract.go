package cleaner

import (
	"context"
	"regexp"
	"strings"
)

// Extractor produces spoken-only text from a raw script.
type Extractor interface {
	Extract(ctx context.Context, script string) (string, error)
}

var (
	parentheticalRe = regexp.MustCompile(`\([^()]*\)`)
	productionTagRe = regexp.MustCompile(`(?i)\[\s*(sfx|music|sound|fx|visual|video|scene|shot)\s*:[^\]]*\]`)
	variantSepRe    = regexp.MustCompile(`(?im)^[ \t]*=+\s*variant\s+\d+\s*=+[ \t]*$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)

	sceneHeadingLineRe = regexp.MustCompile(`(?im)^[ \t]*(?:int\./ext\.|int\.|ext\.|i/e)[^\n]*$`)
	transitionLineRe   = regexp.MustCompile(`(?im)^[ \t]*\[?\s*(?:cut to|fade in|fade out|dissolve to|smash cut|scene start|scene end)[^\n]*$`)
	bracketOnlyLineRe  = regexp.MustCompile(`(?m)^[ \t]*\[[^\]\n]*\][ \t]*$`)
)

// RegexExtractor is the deterministic cleaning pass. It is a pure
// function of its input and the preferred path for tagged scripts.
type RegexExtractor struct{}

func NewRegexExtractor() *RegexExtractor { return &RegexExtractor{} }

func (e *RegexExtractor) Extract(_ context.Context, script string) (string, error) {
	return e.clean(script), nil
}

func (e *RegexExtractor) clean(script string) string {
	switch Classify(script) {
	case ClassStructured:
		if out, ok := extractTagged(script); ok {
			return out
		}
		// Tag convention detected but nothing captured; treat as
		// formatted text instead.
		return cleanFormatted(script)
	case ClassFormatted:
		return cleanFormatted(script)
	default:
		return cleanGeneric(script)
	}
}

// extractTagged keeps only the text following a recognized speaker tag
// on each line, in order, joined by single spaces. Inline production
// tags inside the kept fragments are still stripped.
func extractTagged(script string) (string, bool) {
	var fragments []string
	for _, line := range strings.Split(script, "\n") {
		m := speakerTagRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		frag := strings.TrimSpace(m[2])
		if frag != "" {
			fragments = append(fragments, frag)
		}
	}
	if len(fragments) == 0 {
		return "", false
	}
	return cleanGeneric(strings.Join(fragments, " ")), true
}

// cleanFormatted applies the full screenplay cleanup. Rule order matters:
// line-level removals run before inline removals so the inline rules
// operate on already-thinned text.
func cleanFormatted(script string) string {
	s := sceneHeadingLineRe.ReplaceAllString(script, "")
	s = transitionLineRe.ReplaceAllString(s, "")
	return cleanGeneric(s)
}

// cleanGeneric strips inline production noise: parenthetical asides,
// bracketed cue tags, leftover bracket-only lines, variant separators,
// and whitespace runs. Loose speaker labels like "NARRATOR:" in running
// text survive this pass; only the strict tagged path removes them.
func cleanGeneric(script string) string {
	s := parentheticalRe.ReplaceAllString(script, "")
	s = productionTagRe.ReplaceAllString(s, "")
	s = bracketOnlyLineRe.ReplaceAllString(s, "")
	s = variantSepRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
