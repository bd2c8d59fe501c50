package models

import (
	"html/template"
	"strings"
	"time"
)

// PlaceholderImage is served in place of any missing or broken image.
const PlaceholderImage = "/static/img/placeholder.svg"

// Design types known to the gallery.
const (
	TypeBlackWhite = "BlackWhite"
	TypeColor      = "Color"
)

// Media is a single image or video reference.
type Media struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
}

// IsVideo reports whether the media should render as a video element.
func (m Media) IsVideo() bool {
	if strings.HasPrefix(m.MimeType, "video/") {
		return true
	}
	lower := strings.ToLower(m.URL)
	for _, ext := range []string{".mp4", ".m4v", ".webm", ".mov"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Artist represents a studio artist
type Artist struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Role         string        `json:"role"`
	Specialty    string        `json:"specialty"`
	Experience   string        `json:"experience"`
	Bio          template.HTML `json:"bio"`
	Image        string        `json:"image"`
	Portfolio    []string      `json:"portfolio"`
	Instagram    string        `json:"instagram,omitempty"`
	Email        string        `json:"email,omitempty"`
	Achievements []string      `json:"achievements"`
}

// Design represents a tattoo design in the gallery. Image is never empty.
type Design struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Styles      []string  `json:"styles"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Artist      string    `json:"artist,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TypeLabel returns a human readable label for the design type.
func (d Design) TypeLabel() string {
	switch d.Type {
	case TypeBlackWhite:
		return "Black & White"
	case TypeColor:
		return "Color"
	default:
		return d.Type
	}
}

// Course represents a class offered by the studio
type Course struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Duration    string        `json:"duration"`
	Level       string        `json:"level"`
	Description template.HTML `json:"description"`
	Features    []string      `json:"features"`
	Media       *Media        `json:"media,omitempty"`
}

// BlogPost represents a published article
type BlogPost struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Excerpt         string        `json:"excerpt"`
	Body            template.HTML `json:"body"`
	Image           string        `json:"image"`
	Tags            []string      `json:"tags"`
	Author          string        `json:"author,omitempty"`
	AuthorInstagram string        `json:"authorInstagram,omitempty"`
	PublishedAt     time.Time     `json:"publishedAt"`
}

// LeadTags returns at most the first n tags.
func (p BlogPost) LeadTags(n int) []string {
	if len(p.Tags) <= n {
		return p.Tags
	}
	return p.Tags[:n]
}

// CardTags are the tags shown on a listing card.
func (p BlogPost) CardTags() []string {
	return p.LeadTags(3)
}

// Page media slots.
const (
	SlotHeroImage            = "heroImage"
	SlotHeroVideo            = "heroVideo"
	SlotGalleryMarqueeImages = "galleryMarqueeImages"
	SlotBWStyleVideo         = "bwStyleVideo"
	SlotBWStyleImage         = "bwStyleImage"
	SlotColorStyleVideo      = "colorStyleVideo"
	SlotColorStyleImage      = "colorStyleImage"
	SlotStudentWorkImages    = "studentWorkImages"
)

// PageContent is the sparse set of media attached to one route slug.
type PageContent struct {
	Slug  string             `json:"slug"`
	Media map[string][]Media `json:"media"`
}

// First returns the first media in slot, if any.
func (p *PageContent) First(slot string) (Media, bool) {
	if p == nil || len(p.Media[slot]) == 0 {
		return Media{}, false
	}
	return p.Media[slot][0], true
}

// All returns every media in slot.
func (p *PageContent) All(slot string) []Media {
	if p == nil {
		return nil
	}
	return p.Media[slot]
}

// Homepage holds the singleton homepage media. Every field is optional.
type Homepage struct {
	HeroVideo    *Media `json:"heroVideo,omitempty"`
	WelcomeImage *Media `json:"welcomeImage,omitempty"`
	BookingVideo *Media `json:"bookingVideo,omitempty"`
}
