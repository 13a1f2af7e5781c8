package copygen

import (
	"fmt"
	"strings"

	"github.com/adsmithhq/adsmith/internal/brief"
)

const systemPrompt = `You are a senior advertising copywriter. You write sharp, concrete marketing
copy grounded in the supplied company brief.

RULES:
1. Base everything on the brief — do not invent products, prices, or claims
2. Write for the stated audience in the stated tone
3. Prefer short sentences and active voice
4. Work the keywords in naturally; never stuff them

OUTPUT FORMAT:
Return ONLY valid JSON matching this exact structure (no markdown fences, no extra text):
{
  "title": "Short label for the artifact",
  "body": "The full copy text"
}

IMPORTANT: Output raw JSON only. No markdown code fences. No text before or after the JSON.`

// directiveFor renders the content-specific prompt section. The type
// switch is exhaustive over the sealed set; an unknown type is a
// programming error.
func directiveFor(ct ContentType) (string, error) {
	switch v := ct.(type) {
	case Tagline:
		n := v.Count
		if n <= 0 {
			n = 5
		}
		return fmt.Sprintf("Write %d alternative campaign taglines, one per line, each under 8 words.", n), nil
	case RadioScript:
		s := v.Seconds
		if s <= 0 {
			s = 30
		}
		return fmt.Sprintf(`Write a %d-second radio ad script. Format every spoken line as
"NARRATOR: ..." (or ANNOUNCER/VOICEOVER for secondary voices). Put sound and
music cues in bracketed tags like [SFX: ...] and [MUSIC: ...] on their own
lines. Roughly %d words of spoken copy.`, s, s*2), nil
	case TVScript:
		s := v.Seconds
		if s <= 0 {
			s = 30
		}
		return fmt.Sprintf(`Write a %d-second TV ad script in screenplay form: scene headings
(INT./EXT.), visual directions, transition cues (CUT TO:), and spoken lines
labeled by speaker.`, s), nil
	case SocialPost:
		platform := v.Platform
		if platform == "" {
			platform = "instagram"
		}
		return fmt.Sprintf("Write a single %s post: hook first line, 2-4 short paragraphs, 3-5 hashtags at the end.", platform), nil
	case WireframeCopy:
		n := v.Sections
		if n <= 0 {
			n = 5
		}
		return fmt.Sprintf(`Write landing-page copy for %d sections. For each section give a heading,
subheading, and 1-2 sentences of body copy, plus a call-to-action button label.`, n), nil
	case PodcastOutline:
		n := v.Episodes
		if n <= 0 {
			n = 1
		}
		return fmt.Sprintf(`Outline %d branded podcast episode(s): working title, one-line premise,
and 4-6 talking points each.`, n), nil
	case ImageBrief:
		style := v.Style
		if style == "" {
			style = "photorealistic"
		}
		return fmt.Sprintf(`Write a detailed text-to-image prompt for a %s campaign hero image:
subject, composition, lighting, mood, and brand-appropriate color palette.
Do not include any text overlays in the image description.`, style), nil
	default:
		return "", fmt.Errorf("no prompt directive for content type %T", ct)
	}
}

func buildUserPrompt(b brief.Brief, ct ContentType) (string, error) {
	directive, err := directiveFor(ct)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("TASK: ")
	sb.WriteString(directive)
	sb.WriteString("\n\nBRIEF:\n")
	if b.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", b.Company)
	}
	fmt.Fprintf(&sb, "Description: %s\n", b.Description)
	if len(b.Keywords) > 0 {
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(b.Keywords, ", "))
	}
	if b.Audience != "" {
		fmt.Fprintf(&sb, "Audience: %s\n", b.Audience)
	}
	if b.Tone != "" {
		fmt.Fprintf(&sb, "Tone: %s\n", b.Tone)
	}
	return sb.String(), nil
}
