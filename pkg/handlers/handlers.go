package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"tattoo-studio/pkg/config"
	"tattoo-studio/pkg/logging"
	"tattoo-studio/pkg/models"
	"tattoo-studio/pkg/services"
	"tattoo-studio/pkg/views"
)

// ContentSource provides the fetched site content. Implementations return
// empty results rather than errors.
type ContentSource interface {
	GetArtists(ctx context.Context) []models.Artist
	GetTattooDesigns(ctx context.Context, designType string) []models.Design
	GetFeaturedTattoos(ctx context.Context) []models.Design
	GetCourses(ctx context.Context) []models.Course
	GetBlogPosts(ctx context.Context) []models.BlogPost
	GetPageContent(ctx context.Context, slug string) *models.PageContent
	GetHomepageData(ctx context.Context) *models.Homepage
}

// BookingSubmitter accepts booking requests.
type BookingSubmitter interface {
	Submit(ctx context.Context, req services.BookingRequest) (services.BookingResult, error)
}

// Options tunes request handling.
type Options struct {
	HeroTimeout      time.Duration
	AckDuration      time.Duration
	BookingPerMinute int
}

// OptionsFrom reads handler options from the site configuration.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		HeroTimeout:      cfg.Home.HeroTimeout,
		AckDuration:      cfg.Booking.AckDuration,
		BookingPerMinute: cfg.Booking.RatePerMinute,
	}
}

// Handler serves the site pages, the booking endpoint and the JSON feed.
type Handler struct {
	content  ContentSource
	booking  BookingSubmitter
	renderer Renderer
	logger   *zap.Logger
	opts     Options
	limiter  *rate.Limiter
}

// New creates a Handler. Zero options fall back to the configured defaults.
func New(content ContentSource, booking BookingSubmitter, renderer Renderer, logger *zap.Logger, opts Options) *Handler {
	if opts.HeroTimeout <= 0 {
		opts.HeroTimeout = config.DefaultHeroTimeout
	}
	if opts.AckDuration <= 0 {
		opts.AckDuration = config.DefaultAckDuration
	}
	if opts.BookingPerMinute <= 0 {
		opts.BookingPerMinute = config.DefaultBookingRate
	}
	return &Handler{
		content:  content,
		booking:  booking,
		renderer: renderer,
		logger:   logging.OrNop(logger),
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.BookingPerMinute)), opts.BookingPerMinute),
	}
}

// render buffers the page so a template failure never leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		h.logger.Error("Template error", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("Response write interrupted", zap.Error(err))
	}
}

// loadHome fetches the home page content in parallel. The hero media is
// optional and gets at most HeroTimeout.
func (h *Handler) loadHome(ctx context.Context, form views.BookingForm) views.HomePage {
	var (
		home     *models.Homepage
		featured []models.Design
		artists  []models.Artist
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		heroCtx, cancel := context.WithTimeout(gctx, h.opts.HeroTimeout)
		defer cancel()
		home = h.content.GetHomepageData(heroCtx)
		return nil
	})
	g.Go(func() error {
		featured = h.content.GetFeaturedTattoos(gctx)
		return nil
	})
	g.Go(func() error {
		artists = h.content.GetArtists(gctx)
		return nil
	})
	_ = g.Wait()

	return views.NewHomePage(home, featured, artists, form)
}

// HomeHandler handles requests for the home page
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", h.loadHome(r.Context(), views.NewBookingForm()))
}

// GalleryHandler handles requests for the gallery page
func (h *Handler) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	q := views.ParseGalleryQuery(r.URL.Query())

	var (
		content *models.PageContent
		designs []models.Design
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		content = h.content.GetPageContent(ctx, "gallery")
		return nil
	})
	g.Go(func() error {
		designs = h.content.GetTattooDesigns(ctx, q.Type)
		return nil
	})
	_ = g.Wait()

	h.render(w, http.StatusOK, "gallery", views.NewGalleryPage(content, designs, q))
}

// DesignHandler shows one design with all of its images
func (h *Handler) DesignHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	design, ok := services.FindDesign(h.content.GetTattooDesigns(r.Context(), ""), id)
	if !ok {
		h.logger.Info("Design not found", zap.String("id", id))
		http.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, "design", views.NewDesignPage(design))
}

// ArtistsHandler handles requests for the artists page
func (h *Handler) ArtistsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		content *models.PageContent
		artists []models.Artist
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		content = h.content.GetPageContent(ctx, "artists")
		return nil
	})
	g.Go(func() error {
		artists = h.content.GetArtists(ctx)
		return nil
	})
	_ = g.Wait()

	h.render(w, http.StatusOK, "artists", views.NewArtistsPage(content, artists))
}

// BlogHandler handles requests for the blog listing
func (h *Handler) BlogHandler(w http.ResponseWriter, r *http.Request) {
	var (
		content *models.PageContent
		posts   []models.BlogPost
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		content = h.content.GetPageContent(ctx, "blog")
		return nil
	})
	g.Go(func() error {
		posts = h.content.GetBlogPosts(ctx)
		return nil
	})
	_ = g.Wait()

	h.render(w, http.StatusOK, "blog", views.NewBlogPage(content, posts))
}

// PostHandler handles requests for a single blog post
func (h *Handler) PostHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	posts := h.content.GetBlogPosts(r.Context())

	post, ok := services.FindBlogPost(posts, slug)
	if !ok {
		h.logger.Info("Post not found", zap.String("slug", slug))
		http.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, "post", views.NewPostPage(post, posts))
}

// ClassesHandler handles requests for the classes page
func (h *Handler) ClassesHandler(w http.ResponseWriter, r *http.Request) {
	var (
		content *models.PageContent
		courses []models.Course
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		content = h.content.GetPageContent(ctx, "classes")
		return nil
	})
	g.Go(func() error {
		courses = h.content.GetCourses(ctx)
		return nil
	})
	_ = g.Wait()

	h.render(w, http.StatusOK, "classes", views.NewClassesPage(content, courses))
}

// HealthHandler reports liveness
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
