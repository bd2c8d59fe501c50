// Package views derives the data each page template renders from already
// fetched content. Nothing here performs I/O.
package views

import (
	"time"

	"tattoo-studio/pkg/models"
)

// State is the load state of a rendered page.
type State string

const (
	StateSuccess State = "success"
	StateEmpty   State = "empty"
)

// StateOf is StateSuccess when any collection has items, else StateEmpty.
func StateOf(counts ...int) State {
	for _, n := range counts {
		if n > 0 {
			return StateSuccess
		}
	}
	return StateEmpty
}

// Empty-state messages.
const (
	NoArtistsMessage = "No artists found. Please check back soon."
	NoCoursesMessage = "No courses available at the moment. Please check back later."
	NoPostsMessage   = "No more articles found."
)

// Site holds values shared by every page.
type Site struct {
	Title       string
	Path        string
	Placeholder string
	Year        int
}

// NewSite returns the shared values for the page at path.
func NewSite(title, path string) Site {
	return Site{
		Title:       title,
		Path:        path,
		Placeholder: models.PlaceholderImage,
		Year:        time.Now().Year(),
	}
}

// HomePage is rendered at "/".
type HomePage struct {
	Site
	State    State
	Hero     *models.Media
	Welcome  *models.Media
	Video    *models.Media
	Featured []models.Design
	Artists  []models.Artist
	Booking  BookingForm

	// ArtistsMessage replaces the artist grid when there are no artists.
	ArtistsMessage string
}

// NewHomePage assembles the home page from its fetch results.
func NewHomePage(home *models.Homepage, featured []models.Design, artists []models.Artist, form BookingForm) HomePage {
	page := HomePage{
		Site:     NewSite("Home", "/"),
		State:    StateOf(len(featured), len(artists)),
		Featured: featured,
		Artists:  artists,
		Booking:  form,
	}
	if len(artists) == 0 {
		page.ArtistsMessage = NoArtistsMessage
	}
	if home != nil {
		page.Hero = home.HeroVideo
		page.Welcome = home.WelcomeImage
		page.Video = home.BookingVideo
	}
	return page
}

// GalleryPage is rendered at "/gallery".
type GalleryPage struct {
	Site
	State   State
	Hero    *models.Media
	Marquee []models.Media
	Gallery GalleryView
}

func NewGalleryPage(content *models.PageContent, designs []models.Design, q GalleryQuery) GalleryPage {
	page := GalleryPage{
		Site:    NewSite("Gallery", "/gallery"),
		State:   StateOf(len(designs)),
		Marquee: content.All(models.SlotGalleryMarqueeImages),
		Gallery: BuildGallery(designs, q),
	}
	page.Hero = heroOf(content)
	return page
}

// DesignPage is the zoomed view of one design at "/gallery/{id}".
type DesignPage struct {
	Site
	Design models.Design
	// Images is the cover followed by any additional shots.
	Images []string
}

func NewDesignPage(d models.Design) DesignPage {
	page := DesignPage{
		Site:   NewSite(d.Name, "/gallery/"+d.ID),
		Design: d,
		Images: []string{d.Image},
	}
	for _, img := range d.Images {
		if img != "" && img != d.Image {
			page.Images = append(page.Images, img)
		}
	}
	return page
}

// ArtistsPage is rendered at "/artists".
type ArtistsPage struct {
	Site
	State   State
	Hero    *models.Media
	Artists []models.Artist
	Message string
}

func NewArtistsPage(content *models.PageContent, artists []models.Artist) ArtistsPage {
	page := ArtistsPage{
		Site:    NewSite("Artists", "/artists"),
		State:   StateOf(len(artists)),
		Hero:    heroOf(content),
		Artists: artists,
	}
	if page.State == StateEmpty {
		page.Message = NoArtistsMessage
	}
	return page
}

// BlogPage is rendered at "/blog". The most recent post is featured.
type BlogPage struct {
	Site
	State    State
	Hero     *models.Media
	Featured *models.BlogPost
	Posts    []models.BlogPost
	Message  string
}

func NewBlogPage(content *models.PageContent, posts []models.BlogPost) BlogPage {
	page := BlogPage{
		Site:  NewSite("Blog", "/blog"),
		State: StateOf(len(posts)),
		Hero:  heroOf(content),
	}
	if len(posts) > 0 {
		featured := posts[0]
		page.Featured = &featured
		page.Posts = posts[1:]
	}
	if len(page.Posts) == 0 {
		page.Message = NoPostsMessage
	}
	return page
}

// PostPage is rendered at "/blog/{slug}".
type PostPage struct {
	Site
	Post    models.BlogPost
	Related []models.BlogPost
}

// NewPostPage shows post with up to three other posts.
func NewPostPage(post models.BlogPost, all []models.BlogPost) PostPage {
	page := PostPage{
		Site: NewSite(post.Title, "/blog/"+post.Slug),
		Post: post,
	}
	for _, p := range all {
		if p.Slug == post.Slug {
			continue
		}
		page.Related = append(page.Related, p)
		if len(page.Related) == 3 {
			break
		}
	}
	return page
}

// ClassesPage is rendered at "/classes".
type ClassesPage struct {
	Site
	State       State
	Hero        *models.Media
	StudentWork []models.Media
	Courses     []models.Course
	Message     string
}

func NewClassesPage(content *models.PageContent, courses []models.Course) ClassesPage {
	page := ClassesPage{
		Site:        NewSite("Classes", "/classes"),
		State:       StateOf(len(courses)),
		Hero:        heroOf(content),
		StudentWork: content.All(models.SlotStudentWorkImages),
		Courses:     courses,
	}
	if page.State == StateEmpty {
		page.Message = NoCoursesMessage
	}
	return page
}

// heroOf prefers the hero video over the hero image.
func heroOf(content *models.PageContent) *models.Media {
	if m, ok := content.First(models.SlotHeroVideo); ok {
		return &m
	}
	if m, ok := content.First(models.SlotHeroImage); ok {
		return &m
	}
	return nil
}
