package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tattoo-studio/pkg/models"
	"tattoo-studio/pkg/services"
	"tattoo-studio/pkg/views"
)

type fakeContent struct {
	artists   []models.Artist
	designs   []models.Design
	featured  []models.Design
	courses   []models.Course
	posts     []models.BlogPost
	pages     map[string]*models.PageContent
	home      *models.Homepage
	homeDelay time.Duration

	mu        sync.Mutex
	typesSeen []string
}

func (f *fakeContent) GetArtists(context.Context) []models.Artist { return f.artists }

func (f *fakeContent) GetTattooDesigns(_ context.Context, designType string) []models.Design {
	f.mu.Lock()
	f.typesSeen = append(f.typesSeen, designType)
	f.mu.Unlock()
	return f.designs
}

func (f *fakeContent) GetFeaturedTattoos(context.Context) []models.Design { return f.featured }
func (f *fakeContent) GetCourses(context.Context) []models.Course         { return f.courses }
func (f *fakeContent) GetBlogPosts(context.Context) []models.BlogPost     { return f.posts }

func (f *fakeContent) GetPageContent(_ context.Context, slug string) *models.PageContent {
	return f.pages[slug]
}

func (f *fakeContent) GetHomepageData(ctx context.Context) *models.Homepage {
	if f.homeDelay > 0 {
		select {
		case <-time.After(f.homeDelay):
		case <-ctx.Done():
			return nil
		}
	}
	return f.home
}

// captureRenderer records the last render and writes the template name.
type captureRenderer struct {
	mu   sync.Mutex
	name string
	data any
	err  error
}

func (c *captureRenderer) Render(w io.Writer, name string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.name, c.data = name, data
	_, err := fmt.Fprintf(w, "<html>%s</html>", name)
	return err
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []map[string]string
	err   error
}

func (n *recordingNotifier) Send(_ context.Context, params map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, params)
	return n.err
}

type fixture struct {
	content  *fakeContent
	renderer *captureRenderer
	notifier *recordingNotifier
	router   http.Handler
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		content:  &fakeContent{pages: map[string]*models.PageContent{}},
		renderer: &captureRenderer{},
		notifier: &recordingNotifier{},
	}
	booking := services.NewBookingService(f.notifier, nil, nil)
	h := New(f.content, booking, f.renderer, nil, opts)
	f.router = NewRouter(h, nil, nil)
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"user@example.com"},
		"phone":   {"555-0100"},
		"date":    {"2025-07-01"},
		"message": {"Sleeve consult"},
	}
}

func TestGalleryHandler(t *testing.T) {
	t.Run("no results state", func(t *testing.T) {
		f := newFixture(Options{})
		f.content.designs = []models.Design{
			{ID: "1", Name: "Koi", Type: models.TypeColor, Image: models.PlaceholderImage},
		}

		rec := f.get("/gallery?type=Color&q=dragon")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "gallery", f.renderer.name)

		page, ok := f.renderer.data.(views.GalleryPage)
		require.True(t, ok)
		assert.True(t, page.Gallery.NoResults)
		assert.Empty(t, page.Gallery.Designs)
		assert.Equal(t, views.NoDesignsMessage, page.Gallery.Message)
		assert.Equal(t, []string{models.TypeColor}, f.content.typesSeen)
	})

	t.Run("fetch failure renders empty", func(t *testing.T) {
		f := newFixture(Options{})
		rec := f.get("/gallery")
		require.Equal(t, http.StatusOK, rec.Code)
		page := f.renderer.data.(views.GalleryPage)
		assert.Equal(t, views.StateEmpty, page.State)
		assert.True(t, page.Gallery.NoResults)
	})
}

func TestDesignHandler(t *testing.T) {
	f := newFixture(Options{})
	f.content.designs = []models.Design{
		{ID: "d1", Name: "Koi", Image: "https://cdn/koi.jpg", Images: []string{"https://cdn/koi-2.jpg"}, Artist: "Mara Quinn"},
		{ID: "d2", Name: "Rose", Image: "https://cdn/rose.jpg"},
	}

	rec := f.get("/gallery/d1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "design", f.renderer.name)
	page := f.renderer.data.(views.DesignPage)
	assert.Equal(t, "Koi", page.Design.Name)
	assert.Equal(t, []string{"https://cdn/koi.jpg", "https://cdn/koi-2.jpg"}, page.Images)
	assert.Equal(t, []string{""}, f.content.typesSeen, "lookup spans every type")

	assert.Equal(t, http.StatusNotFound, f.get("/gallery/nope").Code)
}

func TestPagesRender(t *testing.T) {
	f := newFixture(Options{})
	f.content.posts = []models.BlogPost{{Slug: "aftercare", Title: "Aftercare"}, {Slug: "sizing", Title: "Sizing"}}
	f.content.pages["classes"] = &models.PageContent{Slug: "classes", Media: map[string][]models.Media{
		models.SlotHeroVideo: {{URL: "https://cdn/hero.mp4"}},
	}}

	tests := []struct {
		path     string
		template string
	}{
		{"/", "home"},
		{"/artists", "artists"},
		{"/blog", "blog"},
		{"/blog/aftercare", "post"},
		{"/classes", "classes"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := f.get(tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.template, f.renderer.name)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		})
	}

	t.Run("artists empty message", func(t *testing.T) {
		f.get("/artists")
		page := f.renderer.data.(views.ArtistsPage)
		assert.Equal(t, views.NoArtistsMessage, page.Message)
	})

	t.Run("classes hero", func(t *testing.T) {
		f.get("/classes")
		page := f.renderer.data.(views.ClassesPage)
		require.NotNil(t, page.Hero)
		assert.True(t, page.Hero.IsVideo())
		assert.Equal(t, views.NoCoursesMessage, page.Message)
	})

	t.Run("unknown post", func(t *testing.T) {
		rec := f.get("/blog/missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHomeHandler_HeroTimeout(t *testing.T) {
	f := newFixture(Options{HeroTimeout: 20 * time.Millisecond})
	f.content.home = &models.Homepage{HeroVideo: &models.Media{URL: "https://cdn/hero.mp4"}}
	f.content.homeDelay = time.Second
	f.content.featured = []models.Design{{ID: "f1"}}

	start := time.Now()
	rec := f.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	page := f.renderer.data.(views.HomePage)
	assert.Nil(t, page.Hero)
	assert.Len(t, page.Featured, 1)
	assert.Equal(t, views.StateSuccess, page.State)
}

func TestTemplateFailure(t *testing.T) {
	f := newFixture(Options{})
	f.renderer.err = errors.New("bad template")

	rec := f.get("/artists")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBookingHandler_Form(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		f := newFixture(Options{AckDuration: 5 * time.Second})

		rec := f.do(postForm(validForm()))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, f.notifier.calls, 1)
		assert.Equal(t, "user@example.com", f.notifier.calls[0]["email"])

		page := f.renderer.data.(views.HomePage)
		assert.True(t, page.Booking.Success)
		assert.Equal(t, int64(5000), page.Booking.DismissAfterMs)
		assert.Empty(t, page.Booking.Values.Name, "form must be cleared")
	})

	t.Run("empty name", func(t *testing.T) {
		f := newFixture(Options{})
		form := validForm()
		form.Set("name", "")

		rec := f.do(postForm(form))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, f.notifier.calls)

		page := f.renderer.data.(views.HomePage)
		assert.True(t, page.Booking.HasError("name"))
		assert.Equal(t, "user@example.com", page.Booking.Values.Email, "values must be kept")
	})

	t.Run("provider failure keeps values", func(t *testing.T) {
		f := newFixture(Options{})
		f.notifier.err = errors.New("provider down")

		rec := f.do(postForm(validForm()))
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		page := f.renderer.data.(views.HomePage)
		assert.Equal(t, views.BookingFailureMessage, page.Booking.Alert)
		assert.Equal(t, "Ada Lovelace", page.Booking.Values.Name)
		assert.False(t, page.Booking.Success)
	})

	t.Run("message length boundary", func(t *testing.T) {
		f := newFixture(Options{})
		form := validForm()
		form.Set("message", strings.Repeat("m", services.MaxMessageLength))
		assert.Equal(t, http.StatusOK, f.do(postForm(form)).Code)

		form.Set("message", strings.Repeat("m", services.MaxMessageLength+1))
		assert.Equal(t, http.StatusUnprocessableEntity, f.do(postForm(form)).Code)
		assert.Len(t, f.notifier.calls, 1)
	})
}

func TestBookingHandler_JSON(t *testing.T) {
	post := func(f *fixture, body string) (*httptest.ResponseRecorder, bookingResponse) {
		req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := f.do(req)
		var resp bookingResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		return rec, resp
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(Options{})
		rec, resp := post(f, `{"name":"Ada","email":"user@example.com"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.Reference)
		assert.Equal(t, int64(5000), resp.DismissAfterMs)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newFixture(Options{})
		rec, resp := post(f, `{"name":"Ada","email":"not-an-email"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.False(t, resp.OK)
		assert.Contains(t, resp.Errors, "email")
		assert.Empty(t, f.notifier.calls)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(Options{})
		rec, _ := post(f, `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newFixture(Options{BookingPerMinute: 1})
		rec, _ := post(f, `{"name":"Ada","email":"user@example.com"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, resp := post(f, `{"name":"Ada","email":"user@example.com"}`)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, views.BookingLimitedMessage, resp.Error)
		assert.Len(t, f.notifier.calls, 1)
	})
}

func TestFeedHandler(t *testing.T) {
	f := newFixture(Options{})
	f.content.artists = []models.Artist{{ID: "a1", Name: "Mara"}}

	t.Run("artists", func(t *testing.T) {
		rec := f.get("/api/feed/artists")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got []models.Artist
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Mara", got[0].Name)
	})

	t.Run("designs by type", func(t *testing.T) {
		rec := f.get("/api/feed/designs?type=BlackWhite")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, f.content.typesSeen, models.TypeBlackWhite)
	})

	t.Run("missing page is null", func(t *testing.T) {
		rec := f.get("/api/feed/page?slug=nowhere")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", rec.Body.String())
	})

	t.Run("page needs slug", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.get("/api/feed/page").Code)
	})

	t.Run("unknown collection", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, f.get("/api/feed/widgets").Code)
	})
}

func TestHealth(t *testing.T) {
	f := newFixture(Options{})
	rec := f.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
