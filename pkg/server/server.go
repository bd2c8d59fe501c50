// Package server assembles the site from configuration and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"tattoo-studio/pkg/assets"
	"tattoo-studio/pkg/cms"
	"tattoo-studio/pkg/config"
	"tattoo-studio/pkg/handlers"
	"tattoo-studio/pkg/logging"
	"tattoo-studio/pkg/metrics"
	"tattoo-studio/pkg/notify"
	"tattoo-studio/pkg/services"
)

const shutdownTimeout = 10 * time.Second

// NewExecutor builds the CMS request chain: the HTTP client, one bounded
// retry and the response cache, each unless disabled. A zero cache TTL also
// leaves the cache out.
func NewExecutor(cfg *config.Config, m *metrics.Metrics) cms.Executor {
	var ex cms.Executor = cms.NewClient(cfg.CMS.Endpoint,
		cms.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}),
		cms.WithToken(cfg.CMS.Token),
	)
	if !cfg.CMS.RetryDisabled {
		ex = cms.NewRetrying(ex, cfg.CMS.RetryWait)
	}
	if !cfg.CMS.CacheDisabled && cfg.CMS.CacheTTL > 0 {
		ex = cms.NewCache(ex, cfg.CMS.CacheTTL, m)
	}
	return ex
}

// NewContentService wires a content service to the configured CMS.
func NewContentService(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *services.Service {
	return services.NewService(NewExecutor(cfg, m), logger, m)
}

// NewAssetStore returns the bucket store when a bucket is configured and the
// local directory store otherwise. A bucket may carry a prefix as "bucket/prefix".
func NewAssetStore(ctx context.Context, cfg config.AssetsConfig) (assets.Store, error) {
	if cfg.Bucket == "" {
		return assets.NewDirStore(cfg.Dir), nil
	}
	bucket, prefix, _ := strings.Cut(cfg.Bucket, "/")
	return assets.NewBucketStore(ctx, bucket, prefix)
}

// Server is the assembled site.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   assets.Store
	handler http.Handler
}

// New assembles the site. renderer may be nil, in which case pages are
// compiled from the configured views directory.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, renderer handlers.Renderer) (*Server, error) {
	logger = logging.OrNop(logger)
	m := metrics.New()

	store, err := NewAssetStore(ctx, cfg.Assets)
	if err != nil {
		return nil, err
	}
	if !assets.Exists(ctx, store, assets.PlaceholderPath) {
		logger.Warn("Placeholder image is missing", zap.String("path", assets.PlaceholderPath))
	}

	if renderer == nil {
		renderer = handlers.NewPugRenderer(cfg.Views.Dir, cfg.Log.Level == "debug")
	}

	content := NewContentService(cfg, logger, m)
	booking := services.NewBookingService(notify.NewEmailJS(cfg.EmailJS, nil), logger, m)
	h := handlers.New(content, booking, renderer, logger, handlers.OptionsFrom(cfg))

	return &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		handler: handlers.NewRouter(h, assets.Handler(store, logger), m.Handler()),
	}, nil
}

// Handler returns the site's root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ServerAddress(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting",
			zap.String("url", s.cfg.SiteURL()),
			zap.String("cms", s.cfg.CMS.Endpoint),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the asset store when it holds resources.
func (s *Server) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
