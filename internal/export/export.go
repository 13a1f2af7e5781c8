// Package export writes generation results to disk: session JSON for
// later reuse, TXT and HTML renderings of the copy, and playable WAV
// files decoded from audio data URIs.
package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/adsmithhq/adsmith/internal/brief"
	"github.com/adsmithhq/adsmith/internal/copygen"
	"github.com/adsmithhq/adsmith/internal/wav"
)

// Session is one complete generation run: the brief that drove it and
// every artifact it produced. Saved sessions can be reloaded to re-run
// speech synthesis without paying for copy generation again.
type Session struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Brief     brief.Brief        `json:"brief"`
	Artifacts []copygen.Artifact `json:"artifacts"`
}

func SaveSession(s *Session, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write session to %s: %w", path, err)
	}
	return nil
}

func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session from %s: %w", path, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session from %s: %w", path, err)
	}
	if len(s.Artifacts) == 0 {
		return nil, fmt.Errorf("session %s has no artifacts", path)
	}
	return &s, nil
}

// WriteText renders artifacts as a plain-text document, one section per
// artifact separated by a rule line.
func WriteText(s *Session, path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Brief.Company)
	fmt.Fprintf(&b, "Generated %s\n", s.CreatedAt.Format("2006-01-02 15:04"))
	for _, a := range s.Artifacts {
		b.WriteString("\n" + strings.Repeat("-", 60) + "\n")
		fmt.Fprintf(&b, "%s: %s\n\n", strings.ToUpper(a.Type), a.Title)
		b.WriteString(a.Body)
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write text export to %s: %w", path, err)
	}
	return nil
}

var htmlTmpl = template.Must(template.New("session").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Brief.Company}} — generated copy</title>
<style>
body { font-family: Georgia, serif; max-width: 46rem; margin: 2rem auto; line-height: 1.5; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: .25rem; }
.kind { color: #777; font-size: .8rem; text-transform: uppercase; letter-spacing: .08em; }
pre { white-space: pre-wrap; font: inherit; }
</style>
</head>
<body>
<h1>{{.Brief.Company}}</h1>
<p>Generated {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
{{range .Artifacts}}
<section>
<p class="kind">{{.Type}}</p>
<h2>{{.Title}}</h2>
<pre>{{.Body}}</pre>
</section>
{{end}}
</body>
</html>
`))

// WriteHTML renders artifacts as a standalone HTML page.
func WriteHTML(s *Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create HTML export %s: %w", path, err)
	}
	defer f.Close()
	if err := htmlTmpl.Execute(f, s); err != nil {
		return fmt.Errorf("render HTML export: %w", err)
	}
	return nil
}

// WriteWAV decodes an audio data URI and writes the WAV bytes to path.
func WriteWAV(dataURI, path string) error {
	wavBytes, err := wav.DecodeDataURI(dataURI)
	if err != nil {
		return fmt.Errorf("decode audio for %s: %w", path, err)
	}
	if err := os.WriteFile(path, wavBytes, 0644); err != nil {
		return fmt.Errorf("write audio to %s: %w", path, err)
	}
	return nil
}
