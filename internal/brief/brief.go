// Package brief acquires and normalizes the company brief that every
// generation request starts from. A brief can arrive inline on the
// command line, or be extracted from a text file, a URL, or a PDF;
// exactly one source must be given.
package brief

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// maxInputSize caps file and URL payloads (25 MB).
const maxInputSize = 25 * 1024 * 1024

// Brief is the normalized input to copy generation.
type Brief struct {
	Company     string
	Description string
	Keywords    []string
	Audience    string
	Tone        string
}

// Content is the raw material extracted from a source.
type Content struct {
	Text      string
	Title     string
	Source    string
	WordCount int
}

// Source names the possible places a brief description can come from.
// Exactly one field may be set.
type Source struct {
	Inline string // description text passed directly
	File   string // plain-text file path
	URL    string // web page, extracted via readability
	PDF    string // PDF file path
}

// ErrAmbiguousSource is returned when zero or more than one source
// field is set.
var ErrAmbiguousSource = errors.New("exactly one brief source is required: --description, --file, --url, or --pdf")

type extractor interface {
	extract(ctx context.Context, source string) (*Content, error)
}

// Resolve validates the exactly-one-of constraint and extracts content
// from whichever source is set.
func (s Source) Resolve(ctx context.Context) (*Content, error) {
	var (
		ext   extractor
		value string
		set   int
	)
	if s.Inline != "" {
		set, ext, value = set+1, inlineExtractor{}, s.Inline
	}
	if s.File != "" {
		set, ext, value = set+1, fileExtractor{}, s.File
	}
	if s.URL != "" {
		set, ext, value = set+1, urlExtractor{}, s.URL
	}
	if s.PDF != "" {
		set, ext, value = set+1, pdfExtractor{}, s.PDF
	}
	if set != 1 {
		return nil, ErrAmbiguousSource
	}
	return ext.extract(ctx, value)
}

type inlineExtractor struct{}

func (inlineExtractor) extract(_ context.Context, text string) (*Content, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("inline description is empty")
	}
	return &Content{
		Text:      text,
		Title:     titleFromText(text, 80),
		Source:    "inline",
		WordCount: wordCount(text),
	}, nil
}

func wordCount(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count
}

func titleFromText(text string, maxLen int) string {
	line := text
	if idx := strings.IndexByte(text, '\n'); idx > 0 {
		line = text[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > maxLen {
		line = line[:maxLen] + "..."
	}
	if line == "" {
		return "Untitled"
	}
	return line
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() > maxInputSize {
		return fmt.Errorf("%s is too large (%d MB, max %d MB)", path, info.Size()/(1024*1024), maxInputSize/(1024*1024))
	}
	return nil
}
