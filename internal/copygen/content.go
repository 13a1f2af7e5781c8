// Package copygen generates marketing copy from a company brief by
// prompting hosted text models. Content types form a closed set; each
// carries its own typed parameters and dispatch is an exhaustive type
// switch, so an unhandled type is a compile-visible bug rather than a
// silent fall-through to a default prompt.
package copygen

import "fmt"

// ContentType is the sealed set of producible artifacts.
type ContentType interface {
	// Slug is the stable identifier used on the CLI and in filenames.
	Slug() string
	isContentType()
}

// Tagline asks for short campaign taglines.
type Tagline struct {
	Count int // number of alternatives, default 5
}

// RadioScript asks for a spoken radio ad script.
type RadioScript struct {
	Seconds int // target spot length, default 30
}

// TVScript asks for a TV ad script with visual directions.
type TVScript struct {
	Seconds int // target spot length, default 30
}

// SocialPost asks for a social media post.
type SocialPost struct {
	Platform string // e.g. "instagram", "linkedin"; default "instagram"
}

// WireframeCopy asks for landing-page section copy.
type WireframeCopy struct {
	Sections int // number of page sections, default 5
}

// PodcastOutline asks for a branded podcast episode outline.
type PodcastOutline struct {
	Episodes int // default 1
}

// ImageBrief asks for a text-to-image prompt describing campaign
// imagery. Image synthesis itself happens elsewhere; this produces the
// prompt only.
type ImageBrief struct {
	Style string // e.g. "photorealistic", "illustration"
}

func (Tagline) Slug() string        { return "tagline" }
func (RadioScript) Slug() string    { return "radio-script" }
func (TVScript) Slug() string       { return "tv-script" }
func (SocialPost) Slug() string     { return "social-post" }
func (WireframeCopy) Slug() string  { return "wireframe" }
func (PodcastOutline) Slug() string { return "podcast-outline" }
func (ImageBrief) Slug() string     { return "image-brief" }

func (Tagline) isContentType()        {}
func (RadioScript) isContentType()    {}
func (TVScript) isContentType()       {}
func (SocialPost) isContentType()     {}
func (WireframeCopy) isContentType()  {}
func (PodcastOutline) isContentType() {}
func (ImageBrief) isContentType()     {}

// Slugs lists every valid content-type slug, for CLI help and
// validation.
func Slugs() []string {
	return []string{
		"tagline",
		"radio-script",
		"tv-script",
		"social-post",
		"wireframe",
		"podcast-outline",
		"image-brief",
	}
}

// ParseContentType maps a CLI slug onto a ContentType with default
// parameters.
func ParseContentType(slug string) (ContentType, error) {
	switch slug {
	case "tagline":
		return Tagline{Count: 5}, nil
	case "radio-script":
		return RadioScript{Seconds: 30}, nil
	case "tv-script":
		return TVScript{Seconds: 30}, nil
	case "social-post":
		return SocialPost{Platform: "instagram"}, nil
	case "wireframe":
		return WireframeCopy{Sections: 5}, nil
	case "podcast-outline":
		return PodcastOutline{Episodes: 1}, nil
	case "image-brief":
		return ImageBrief{Style: "photorealistic"}, nil
	default:
		return nil, fmt.Errorf("unknown content type %q: choose one of %v", slug, Slugs())
	}
}
