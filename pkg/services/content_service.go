package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tattoo-studio/pkg/cms"
	"tattoo-studio/pkg/logging"
	"tattoo-studio/pkg/metrics"
	"tattoo-studio/pkg/models"
)

// FeaturedLimit is the maximum number of featured designs on the homepage.
const FeaturedLimit = 8

// Service fetches and normalizes site content from the CMS. Every fetch
// degrades to an empty result on failure and logs a warning instead of
// returning an error.
type Service struct {
	cms     cms.Executor
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates a content service backed by the given executor.
func NewService(ex cms.Executor, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		cms:     ex,
		logger:  logging.OrNop(logger),
		metrics: m,
	}
}

// fetch runs a query and decodes it into out. It reports whether out is usable.
func (s *Service) fetch(ctx context.Context, subject string, req cms.Request, out any) bool {
	start := time.Now()
	if err := cms.Decode(ctx, s.cms, req, out); err != nil {
		s.metrics.ObserveFetch(req.OperationName, metrics.OutcomeError, time.Since(start))
		s.logger.Warn("Error fetching "+subject,
			zap.String("operation", req.OperationName),
			zap.Error(err),
		)
		return false
	}
	s.metrics.ObserveFetch(req.OperationName, metrics.OutcomeOK, time.Since(start))
	return true
}

// GetArtists returns published artists in display order.
func (s *Service) GetArtists(ctx context.Context) []models.Artist {
	var data struct {
		Artists []cms.ArtistRecord `json:"artists"`
	}
	if !s.fetch(ctx, "artists", cms.Request{OperationName: "GetArtists", Query: getArtistsQuery}, &data) {
		return []models.Artist{}
	}

	artists := make([]models.Artist, 0, len(data.Artists))
	for _, rec := range data.Artists {
		artists = append(artists, normalizeArtist(rec))
	}
	return artists
}

// GetTattooDesigns returns published designs, newest first. An empty type or
// "All" returns every design; any other type is filtered by the CMS.
func (s *Service) GetTattooDesigns(ctx context.Context, designType string) []models.Design {
	req := cms.Request{OperationName: "GetAllTattooDesigns", Query: getAllTattooDesignsQuery}
	if designType != "" && designType != "All" {
		req = cms.Request{
			OperationName: "GetTattooDesignsByType",
			Query:         getTattooDesignsByTypeQuery,
			Variables:     map[string]any{"type": designType},
		}
	}

	var data struct {
		TattooDesigns []cms.DesignRecord `json:"tattooDesigns"`
	}
	if !s.fetch(ctx, "tattoo designs", req, &data) {
		return []models.Design{}
	}
	return normalizeDesigns(data.TattooDesigns)
}

// GetFeaturedTattoos returns at most FeaturedLimit featured designs.
func (s *Service) GetFeaturedTattoos(ctx context.Context) []models.Design {
	var data struct {
		TattooDesigns []cms.DesignRecord `json:"tattooDesigns"`
	}
	req := cms.Request{OperationName: "GetFeaturedTattoos", Query: getFeaturedTattoosQuery}
	if !s.fetch(ctx, "featured tattoos", req, &data) {
		return []models.Design{}
	}

	designs := normalizeDesigns(data.TattooDesigns)
	if len(designs) > FeaturedLimit {
		designs = designs[:FeaturedLimit]
	}
	return designs
}

// GetCourses returns published courses in display order.
func (s *Service) GetCourses(ctx context.Context) []models.Course {
	var data struct {
		Courses []cms.CourseRecord `json:"courses"`
	}
	if !s.fetch(ctx, "courses", cms.Request{OperationName: "GetCourses", Query: getCoursesQuery}, &data) {
		return []models.Course{}
	}

	courses := make([]models.Course, 0, len(data.Courses))
	for _, rec := range data.Courses {
		courses = append(courses, normalizeCourse(rec))
	}
	return courses
}

// GetBlogPosts returns published posts, most recent first.
func (s *Service) GetBlogPosts(ctx context.Context) []models.BlogPost {
	var data struct {
		BlogPosts []cms.BlogPostRecord `json:"blogPosts"`
	}
	if !s.fetch(ctx, "blog posts", cms.Request{OperationName: "GetBlogPosts", Query: getBlogPostsQuery}, &data) {
		return []models.BlogPost{}
	}

	posts := make([]models.BlogPost, 0, len(data.BlogPosts))
	for _, rec := range data.BlogPosts {
		posts = append(posts, normalizePost(rec))
	}
	return posts
}

// GetPageContent returns the media for a route slug, or nil when the page
// does not exist or the fetch fails.
func (s *Service) GetPageContent(ctx context.Context, slug string) *models.PageContent {
	var data struct {
		Page *cms.PageRecord `json:"page"`
	}
	req := cms.Request{
		OperationName: "GetPageContent",
		Query:         getPageContentQuery,
		Variables:     map[string]any{"slug": slug},
	}
	if !s.fetch(ctx, "page content", req, &data) || data.Page == nil {
		return nil
	}
	return normalizePage(slug, data.Page)
}

// GetHomepageData returns the homepage singleton, or nil when absent.
func (s *Service) GetHomepageData(ctx context.Context) *models.Homepage {
	var data struct {
		Homepages []cms.HomepageRecord `json:"homepages"`
	}
	req := cms.Request{OperationName: "GetHomepageData", Query: getHomepageDataQuery}
	if !s.fetch(ctx, "homepage data", req, &data) || len(data.Homepages) == 0 {
		return nil
	}

	rec := data.Homepages[0]
	return &models.Homepage{
		HeroVideo:    toMedia(rec.HeroVideo),
		WelcomeImage: toMedia(rec.WelcomeImage),
		BookingVideo: toMedia(rec.BookingVideo),
	}
}

// FindBlogPost returns the post with the given slug from posts.
func FindBlogPost(posts []models.BlogPost, slug string) (models.BlogPost, bool) {
	for _, post := range posts {
		if post.Slug == slug {
			return post, true
		}
	}
	return models.BlogPost{}, false
}

// FindDesign returns the design with the given id.
func FindDesign(designs []models.Design, id string) (models.Design, bool) {
	for _, d := range designs {
		if d.ID == id {
			return d, true
		}
	}
	return models.Design{}, false
}
