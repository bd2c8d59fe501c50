package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the site routes. static serves /static/* with the prefix
// stripped; metrics serves /metrics. Either may be nil.
func NewRouter(h *Handler, static, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.HomeHandler)
	r.Get("/gallery", h.GalleryHandler)
	r.Get("/gallery/{id}", h.DesignHandler)
	r.Get("/artists", h.ArtistsHandler)
	r.Get("/blog", h.BlogHandler)
	r.Get("/blog/{slug}", h.PostHandler)
	r.Get("/classes", h.ClassesHandler)
	r.Post("/booking", h.BookingHandler)
	r.Get("/api/feed/{collection}", h.FeedHandler)
	r.Get("/healthz", HealthHandler)

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	if static != nil {
		r.Handle("/static/*", http.StripPrefix("/static", static))
	}
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
