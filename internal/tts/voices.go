package tts

import (
	"fmt"
	"strings"
)

// DefaultVoiceName is used whenever the caller does not pick a voice.
const DefaultVoiceName = "Charon"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// CatalogVoice is one user-facing voice. The same name resolves to a
// provider-specific identifier per provider; where a provider has no
// mapping, a hard-coded gender default applies.
type CatalogVoice struct {
	Name        string
	Gender      Gender
	Description string

	googleID string
	geminiID string
	pollyID  string
}

// Polly's catalog does not mirror the Chirp voice names, so unmapped
// voices fall back by gender.
const (
	pollyDefaultMale   = "Matthew"
	pollyDefaultFemale = "Ruth"
)

func chirp(name string) string { return "en-US-Chirp3-HD-" + name }

// Catalog returns the immutable voice catalog. Injected into providers
// at construction so tests can substitute alternates.
func Catalog() []CatalogVoice {
	return []CatalogVoice{
		{Name: "Charon", Gender: GenderMale, Description: "Informative, clear narrator", googleID: chirp("Charon"), geminiID: "Charon", pollyID: "Matthew"},
		{Name: "Leda", Gender: GenderFemale, Description: "Youthful, bright", googleID: chirp("Leda"), geminiID: "Leda", pollyID: "Ruth"},
		{Name: "Kore", Gender: GenderFemale, Description: "Firm, confident", googleID: chirp("Kore"), geminiID: "Kore", pollyID: "Danielle"},
		{Name: "Fenrir", Gender: GenderMale, Description: "Deep, resonant", googleID: chirp("Fenrir"), geminiID: "Fenrir", pollyID: "Stephen"},
		{Name: "Aoede", Gender: GenderFemale, Description: "Bright, expressive", googleID: chirp("Aoede"), geminiID: "Aoede"},
		{Name: "Puck", Gender: GenderMale, Description: "Upbeat, energetic", googleID: chirp("Puck"), geminiID: "Puck"},
		{Name: "Orus", Gender: GenderMale, Description: "Warm, steady narrator", googleID: chirp("Orus"), geminiID: "Orus"},
		{Name: "Zephyr", Gender: GenderFemale, Description: "Breezy, relaxed", googleID: chirp("Zephyr"), geminiID: "Zephyr", pollyID: "Olivia"},
		{Name: "Umbriel", Gender: GenderMale, Description: "Grounded, wise", googleID: chirp("Umbriel"), geminiID: "Umbriel"},
		{Name: "Algenib", Gender: GenderMale, Description: "Gravelly, textured", googleID: chirp("Algenib"), geminiID: "Algenib"},
		{Name: "Callirrhoe", Gender: GenderFemale, Description: "Easy-going, lively", googleID: chirp("Callirrhoe"), geminiID: "Callirrhoe"},
		{Name: "Autonoe", Gender: GenderFemale, Description: "Bright, capable", googleID: chirp("Autonoe"), geminiID: "Autonoe"},
		{Name: "Enceladus", Gender: GenderMale, Description: "Breathy, intimate", googleID: chirp("Enceladus"), geminiID: "Enceladus"},
		{Name: "Iapetus", Gender: GenderMale, Description: "Clear, direct", googleID: chirp("Iapetus"), geminiID: "Iapetus"},
		{Name: "Despina", Gender: GenderFemale, Description: "Smooth, polished", googleID: chirp("Despina"), geminiID: "Despina"},
		{Name: "Erinome", Gender: GenderFemale, Description: "Clear, composed", googleID: chirp("Erinome"), geminiID: "Erinome"},
		{Name: "Rasalgethi", Gender: GenderMale, Description: "Informative, broadcast", googleID: chirp("Rasalgethi"), geminiID: "Rasalgethi"},
		{Name: "Laomedeia", Gender: GenderFemale, Description: "Upbeat, spirited", googleID: chirp("Laomedeia"), geminiID: "Laomedeia", pollyID: "Kajal"},
		{Name: "Achernar", Gender: GenderFemale, Description: "Soft, gentle", googleID: chirp("Achernar"), geminiID: "Achernar"},
		{Name: "Alnilam", Gender: GenderMale, Description: "Firm, assured", googleID: chirp("Alnilam"), geminiID: "Alnilam"},
		{Name: "Schedar", Gender: GenderMale, Description: "Even, measured", googleID: chirp("Schedar"), geminiID: "Schedar"},
		{Name: "Gacrux", Gender: GenderFemale, Description: "Mature, warm", googleID: chirp("Gacrux"), geminiID: "Gacrux"},
		{Name: "Pulcherrima", Gender: GenderFemale, Description: "Forward, expressive", googleID: chirp("Pulcherrima"), geminiID: "Pulcherrima"},
		{Name: "Achird", Gender: GenderMale, Description: "Friendly, approachable", googleID: chirp("Achird"), geminiID: "Achird"},
		{Name: "Zubenelgenubi", Gender: GenderMale, Description: "Casual, conversational", googleID: chirp("Zubenelgenubi"), geminiID: "Zubenelgenubi"},
		{Name: "Vindemiatrix", Gender: GenderFemale, Description: "Gentle, reassuring", googleID: chirp("Vindemiatrix"), geminiID: "Vindemiatrix"},
		{Name: "Sadachbia", Gender: GenderMale, Description: "Laid-back, textured", googleID: chirp("Sadachbia"), geminiID: "Sadachbia"},
		{Name: "Sadaltager", Gender: GenderMale, Description: "Knowledgeable, precise", googleID: chirp("Sadaltager"), geminiID: "Sadaltager"},
		{Name: "Sulafat", Gender: GenderFemale, Description: "Warm, welcoming", googleID: chirp("Sulafat"), geminiID: "Sulafat"},
		{Name: "Amy", Gender: GenderFemale, Description: "British, crisp", googleID: chirp("Kore"), geminiID: "Kore", pollyID: "Amy"},
	}
}

// LookupVoice finds a catalog entry by user-facing name,
// case-insensitively.
func LookupVoice(name string) (CatalogVoice, bool) {
	for _, v := range Catalog() {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return CatalogVoice{}, false
}

// ResolveVoice maps a user-facing voice name onto the identifier the
// named provider expects. An empty name resolves to the system default.
// Unknown names are rejected rather than silently defaulted so a typo
// never synthesizes with the wrong voice.
func ResolveVoice(provider, name string) (Voice, error) {
	if name == "" {
		name = DefaultVoiceName
	}
	entry, ok := LookupVoice(name)
	if !ok {
		return Voice{}, fmt.Errorf("unknown voice %q: run list-voices for the catalog", name)
	}

	v := Voice{Name: entry.Name, LanguageCode: "en-US"}
	switch provider {
	case "google":
		v.ID = entry.googleID
	case "gemini":
		v.ID = entry.geminiID
	case "polly":
		v.ID = entry.pollyID
		if v.ID == "" {
			if entry.Gender == GenderFemale {
				v.ID = pollyDefaultFemale
			} else {
				v.ID = pollyDefaultMale
			}
		}
	default:
		return Voice{}, fmt.Errorf("unknown TTS provider %q", provider)
	}
	return v, nil
}
