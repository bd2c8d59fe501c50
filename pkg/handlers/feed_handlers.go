package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode JSON", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// FeedHandler handles requests for the JSON content feed
func (h *Handler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	ctx := r.Context()
	h.logger.Debug("Generating Feed", zap.String("collection", collection))

	var data any
	switch collection {
	case "artists":
		data = h.content.GetArtists(ctx)
	case "designs":
		data = h.content.GetTattooDesigns(ctx, r.URL.Query().Get("type"))
	case "featured":
		data = h.content.GetFeaturedTattoos(ctx)
	case "courses":
		data = h.content.GetCourses(ctx)
	case "posts":
		data = h.content.GetBlogPosts(ctx)
	case "homepage":
		data = h.content.GetHomepageData(ctx)
	case "page":
		slug := r.URL.Query().Get("slug")
		if slug == "" {
			http.Error(w, "slug is required", http.StatusBadRequest)
			return
		}
		data = h.content.GetPageContent(ctx, slug)
	default:
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, data, h.logger)
}
