package services

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tattoo-studio/pkg/cms"
	"tattoo-studio/pkg/models"
)

var markdown = goldmark.New()

func toMedia(a *cms.Asset) *models.Media {
	if a == nil || a.URL == "" {
		return nil
	}
	return &models.Media{URL: a.URL, MimeType: a.MimeType}
}

func assetURLs(assets []cms.Asset) []string {
	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		if a.URL != "" {
			urls = append(urls, a.URL)
		}
	}
	return urls
}

// firstImage picks the primary image, then the first gallery image, then the
// placeholder.
func firstImage(primary *cms.Asset, rest []cms.Asset) string {
	if primary != nil && primary.URL != "" {
		return primary.URL
	}
	for _, a := range rest {
		if a.URL != "" {
			return a.URL
		}
	}
	return models.PlaceholderImage
}

// richText prefers CMS rendered HTML and falls back to rendering markdown.
func richText(rt *cms.RichText) template.HTML {
	if rt == nil {
		return ""
	}
	if rt.HTML != "" {
		return template.HTML(rt.HTML)
	}
	if rt.Markdown == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(rt.Markdown), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(rt.Markdown))
	}
	return template.HTML(buf.String())
}

// styleTags trims, capitalizes the first letter of and de-duplicates style
// tags. The rest of each tag is kept as authored.
func styleTags(raw []string) []string {
	upper := cases.Upper(language.English)
	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(tag)
		tag = upper.String(tag[:size]) + tag[size:]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeArtist(rec cms.ArtistRecord) models.Artist {
	return models.Artist{
		ID:           rec.ID,
		Name:         rec.Name,
		Role:         rec.Role,
		Specialty:    rec.Specialty,
		Experience:   rec.Experience,
		Bio:          richText(rec.Description),
		Image:        firstImage(rec.Image, rec.Portfolio),
		Portfolio:    assetURLs(rec.Portfolio),
		Instagram:    rec.Instagram,
		Email:        rec.Email,
		Achievements: nonEmpty(rec.Achievements),
	}
}

func normalizeDesign(rec cms.DesignRecord) models.Design {
	d := models.Design{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Type:        rec.Type,
		Styles:      styleTags(rec.Style),
		Image:       firstImage(rec.Image, rec.Images),
		Images:      assetURLs(rec.Images),
		CreatedAt:   rec.CreatedAt.Time,
	}
	if rec.Artist != nil {
		d.Artist = rec.Artist.Name
	}
	return d
}

func normalizeDesigns(recs []cms.DesignRecord) []models.Design {
	designs := make([]models.Design, 0, len(recs))
	for _, rec := range recs {
		designs = append(designs, normalizeDesign(rec))
	}
	return designs
}

func normalizeCourse(rec cms.CourseRecord) models.Course {
	c := models.Course{
		ID:          rec.ID,
		Title:       rec.Title,
		Duration:    rec.Duration,
		Level:       rec.Level,
		Description: richText(rec.Description),
		Features:    nonEmpty(rec.Features),
		Media:       toMedia(rec.Image),
	}
	if c.Media == nil && rec.VideoURL != "" {
		c.Media = &models.Media{URL: rec.VideoURL, MimeType: "video/mp4"}
	}
	return c
}

func normalizePost(rec cms.BlogPostRecord) models.BlogPost {
	p := models.BlogPost{
		ID:          rec.ID,
		Title:       rec.Title,
		Slug:        rec.Slug,
		Excerpt:     rec.Excerpt,
		Body:        richText(rec.Content),
		Image:       firstImage(rec.Image, nil),
		Tags:        nonEmpty(rec.Tags),
		PublishedAt: rec.PublicationDate.Time,
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = rec.PublishedAt.Time
	}
	if rec.Artist != nil {
		p.Author = rec.Artist.Name
		p.AuthorInstagram = rec.Artist.Instagram
	}
	return p
}

func normalizePage(slug string, rec *cms.PageRecord) *models.PageContent {
	page := &models.PageContent{Slug: slug, Media: make(map[string][]models.Media)}
	single := map[string]*cms.Asset{
		models.SlotHeroImage:       rec.HeroImage,
		models.SlotHeroVideo:       rec.HeroVideo,
		models.SlotBWStyleVideo:    rec.BWStyleVideo,
		models.SlotBWStyleImage:    rec.BWStyleImage,
		models.SlotColorStyleVideo: rec.ColorStyleVideo,
		models.SlotColorStyleImage: rec.ColorStyleImage,
	}
	for slot, asset := range single {
		if m := toMedia(asset); m != nil {
			page.Media[slot] = []models.Media{*m}
		}
	}

	multi := map[string][]cms.Asset{
		models.SlotGalleryMarqueeImages: rec.GalleryMarqueeImages,
		models.SlotStudentWorkImages:    rec.StudentWorkImages,
	}
	for slot, assets := range multi {
		for _, url := range assetURLs(assets) {
			page.Media[slot] = append(page.Media[slot], models.Media{URL: url})
		}
	}
	return page
}
