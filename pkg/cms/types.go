package cms

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
)

// Raw records as the CMS returns them. Any field may be missing or null, so
// nested objects are pointers and consumers normalize before rendering.

// Asset is an uploaded media file.
type Asset struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
}

// RichText is a rich-text field in the formats the content model exposes.
type RichText struct {
	HTML     string `json:"html,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// ArtistRef is the embedded author of a design or post.
type ArtistRef struct {
	Name      string `json:"name"`
	Instagram string `json:"instagram,omitempty"`
}

type ArtistRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Specialty    string    `json:"specialty"`
	Experience   string    `json:"experience"`
	Description  *RichText `json:"description"`
	Image        *Asset    `json:"image"`
	Instagram    string    `json:"instagram"`
	Portfolio    []Asset   `json:"portfolio"`
	Achievements []string  `json:"achievements"`
	Email        string    `json:"email"`
	Order        int       `json:"order"`
}

type DesignRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Style       StyleField `json:"style"`
	Image       *Asset     `json:"image"`
	Images      []Asset    `json:"images"`
	Artist      *ArtistRef `json:"artist"`
	Featured    bool       `json:"featured"`
	Order       int        `json:"order"`
	CreatedAt   Timestamp  `json:"createdAt"`
}

type CourseRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Duration    string    `json:"duration"`
	Description *RichText `json:"description"`
	Features    []string  `json:"features"`
	Level       string    `json:"level"`
	Image       *Asset    `json:"image"`
	VideoURL    string    `json:"videoUrl"`
	Order       int       `json:"order"`
}

type BlogPostRecord struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         *RichText  `json:"content"`
	Image           *Asset     `json:"image"`
	Tags            []string   `json:"tags"`
	Artist          *ArtistRef `json:"artist"`
	PublicationDate Timestamp  `json:"publicationDate"`
	PublishedAt     Timestamp  `json:"publishedAt"`
}

// PageRecord holds the per-route media slots. Every slot is optional.
type PageRecord struct {
	HeroImage            *Asset  `json:"heroImage"`
	HeroVideo            *Asset  `json:"heroVideo"`
	GalleryMarqueeImages []Asset `json:"galleryMarqueeImages"`
	BWStyleVideo         *Asset  `json:"bwStyleVideo"`
	BWStyleImage         *Asset  `json:"bwStyleImage"`
	ColorStyleVideo      *Asset  `json:"colorStyleVideo"`
	ColorStyleImage      *Asset  `json:"colorStyleImage"`
	StudentWorkImages    []Asset `json:"studentWorkImages"`
}

type HomepageRecord struct {
	HeroVideo    *Asset `json:"heroVideo"`
	WelcomeImage *Asset `json:"welcomeImage"`
	BookingVideo *Asset `json:"bookingVideo"`
}

// StyleField accepts either a list of style tags or a single string. A single
// CamelCase string such as "FineLine" is split on its capitals. Values of any
// other shape decode to no styles so one bad record cannot fail its collection.
type StyleField []string

func (s *StyleField) UnmarshalJSON(data []byte) error {
	*s = nil

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = SplitCamel(single)
		return nil
	}

	var list []any
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	for _, v := range list {
		if tag, ok := v.(string); ok && strings.TrimSpace(tag) != "" {
			*s = append(*s, tag)
		}
	}
	return nil
}

// SplitCamel splits "FineLineBlackwork" into ["Fine", "Line", "Blackwork"].
// Spaces and commas also separate words.
func SplitCamel(s string) []string {
	var parts []string
	var current []rune
	flush := func() {
		if word := strings.TrimSpace(string(current)); word != "" {
			parts = append(parts, word)
		}
		current = current[:0]
	}

	for _, r := range s {
		switch {
		case r == ',' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && len(current) > 0:
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return parts
}

// Timestamp accepts RFC 3339 date-times and plain YYYY-MM-DD dates. Null,
// empty and unrecognized values leave the zero time.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil || raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}
