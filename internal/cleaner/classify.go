// Package cleaner turns a production ad script into spoken-only text
// suitable for speech synthesis. Scripts arrive in three shapes: strictly
// speaker-tagged dialogue, screenplay-style text with scene and sound
// cues, and plain prose. Classification picks the cleaning strategy.
package cleaner

import (
	"regexp"
	"strings"
)

// Classification selects the cleaning strategy for a script.
type Classification int

const (
	// ClassPlain is prose with no production formatting; only generic
	// cleanup applies.
	ClassPlain Classification = iota
	// ClassStructured means every spoken line is prefixed with a
	// recognized speaker tag ("NARRATOR:", "[VOICEOVER]:", ...).
	ClassStructured
	// ClassFormatted is screenplay-style text (scene headings,
	// transitions, cue tags) that does not follow the strict tag
	// convention.
	ClassFormatted
)

func (c Classification) String() string {
	switch c {
	case ClassStructured:
		return "structured"
	case ClassFormatted:
		return "formatted-unstructured"
	default:
		return "plain"
	}
}

// plainLengthLimit pushes long untagged scripts onto the formatted path
// even without explicit screenplay cues; long form input tends to carry
// production annotations somewhere.
const plainLengthLimit = 300

// speakerLabels is the closed set of recognized speaker tags. A line like
// "Bob: hello" is deliberately NOT treated as tagged dialogue.
var speakerTagRe = regexp.MustCompile(`(?i)^\s*\[?(narrator|voiceover|v\.?o\.?|announcer|character|man|woman|host|speaker)\]?\s*:\s*(.*)$`)

var (
	sceneHeadingRe = regexp.MustCompile(`(?i)^\s*(int\./ext\.|int\.|ext\.|i/e)`)
	transitionRe   = regexp.MustCompile(`(?i)^\s*\[?\s*(cut to|fade in|fade out|dissolve to|smash cut|scene start|scene end)`)
	voiceoverTagRe = regexp.MustCompile(`(?i)\[\s*(voiceover|v\.?o\.?)\s*\]`)
	bracketLineRe  = regexp.MustCompile(`^\s*\[[^\]]*\]\s*$`)
)

// Classify inspects raw script text and decides which cleaning strategy
// applies. Rules are evaluated structured → formatted → plain; the first
// match wins. The ordering is a heuristic: a short paragraph containing
// the words "CUT TO" will land on the formatted path even if those words
// were spoken copy. The pipeline's safety net covers misclassification
// that empties the output.
func Classify(script string) Classification {
	if isStrictlyTagged(script) {
		return ClassStructured
	}
	if hasFormattingCues(script) || len(script) > plainLengthLimit {
		return ClassFormatted
	}
	return ClassPlain
}

// isStrictlyTagged reports whether every non-empty line is either tagged
// dialogue or a standalone bracketed annotation. At least one tagged line
// is required.
func isStrictlyTagged(script string) bool {
	tagged := 0
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if speakerTagRe.MatchString(line) {
			tagged++
			continue
		}
		if bracketLineRe.MatchString(line) {
			continue
		}
		return false
	}
	return tagged > 0
}

func hasFormattingCues(script string) bool {
	for _, line := range strings.Split(script, "\n") {
		if sceneHeadingRe.MatchString(line) || transitionRe.MatchString(line) {
			return true
		}
	}
	return voiceoverTagRe.MatchString(script)
}
