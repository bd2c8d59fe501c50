package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmsPayloads = map[string]string{
	"GetArtists": `{"artists":[
		{"id":"a1","name":"Mara Quinn","role":"Owner","specialty":"Fine line"},
		{"id":"a2","name":"Theo Park","role":"Resident","specialty":"Neo-traditional"}]}`,
	"GetAllTattooDesigns": `{"tattooDesigns":[
		{"id":"d1","name":"Koi","type":"Color","style":"JapaneseTraditional","createdAt":"2025-03-01"},
		{"id":"d2","name":"Rose","type":"BlackWhite","style":["Fine line"],"createdAt":"2025-02-01"}]}`,
	"GetTattooDesignsByType": `{"tattooDesigns":[
		{"id":"d2","name":"Rose","type":"BlackWhite","createdAt":"2025-02-01"}]}`,
	"GetFeaturedTattoos": `{"tattooDesigns":[]}`,
	"GetCourses":         `{"courses":[]}`,
	"GetBlogPosts":       `{"blogPosts":[]}`,
	"GetPageContent":     `{"page":{"heroVideo":{"url":"https://cdn/hero.mp4","mimeType":"video/mp4"}}}`,
	"GetHomepageData":    `{"homepages":[{"welcomeImage":{"url":"https://cdn/welcome.jpg"}}]}`,
}

func newFakeCMS(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OperationName string `json:"operationName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		payload, ok := cmsPayloads[req.OperationName]
		if !ok {
			http.Error(w, "unknown operation", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":`+payload+`}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// isolateEnv clears the variables the commands read and restores them afterwards.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HYGRAPH_ENDPOINT", "PORT", "ASSETS_DIR", "ASSETS_BUCKET", "API_BASE_URL", "ADMIN_PASSWORD", "CMS_CACHE_DISABLED"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestContentCommands(t *testing.T) {
	isolateEnv(t)
	srv := newFakeCMS(t)

	t.Run("list-artists", func(t *testing.T) {
		out, err := execute(t, "--endpoint", srv.URL, "list-artists")
		require.NoError(t, err)
		assert.Contains(t, out, "Mara Quinn")
		assert.Contains(t, out, "Specialty: Neo-traditional")
		assert.Contains(t, out, "Total: 2 artists")
	})

	t.Run("list-designs", func(t *testing.T) {
		out, err := execute(t, "-e", srv.URL, "list-designs")
		require.NoError(t, err)
		assert.Contains(t, out, "Type: Color")
		assert.Contains(t, out, "Type: Black & White")
		assert.Contains(t, out, "Styles: Japanese, Traditional")
		assert.Contains(t, out, "Total: 2 designs across 2 types")
	})

	t.Run("list-designs by type", func(t *testing.T) {
		out, err := execute(t, "-e", srv.URL, "list-designs", "--type", "BlackWhite")
		require.NoError(t, err)
		assert.Contains(t, out, "Rose")
		assert.NotContains(t, out, "Koi")
	})

	t.Run("show-page", func(t *testing.T) {
		out, err := execute(t, "-e", srv.URL, "show-page", "gallery")
		require.NoError(t, err)
		assert.Contains(t, out, "heroVideo:")
		assert.Contains(t, out, "https://cdn/hero.mp4")
	})

	t.Run("show-page home", func(t *testing.T) {
		out, err := execute(t, "-e", srv.URL, "show-page", "home")
		require.NoError(t, err)
		assert.Contains(t, out, "welcomeImage: https://cdn/welcome.jpg")
		assert.Contains(t, out, "heroVideo: (none)")
	})

	t.Run("export", func(t *testing.T) {
		out, err := execute(t, "-e", srv.URL, "export")
		require.NoError(t, err)

		var got siteExport
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Len(t, got.Artists, 2)
		assert.Len(t, got.Designs, 2)
		assert.Empty(t, got.Featured)
		require.NotNil(t, got.Homepage)
		assert.Len(t, got.Pages, len(exportedPages))
	})

	t.Run("export unsupported format", func(t *testing.T) {
		_, err := execute(t, "-e", srv.URL, "export", "xml")
		assert.ErrorContains(t, err, "unsupported export format")
	})
}

func TestListAssets(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "placeholder.svg"), []byte("<svg/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.css"), []byte("body{}"), 0o644))
	t.Setenv("ASSETS_DIR", dir)

	out, err := execute(t, "list-assets")
	require.NoError(t, err)
	assert.Contains(t, out, "img/placeholder.svg")
	assert.Contains(t, out, "site.css")
	assert.Contains(t, out, "Total: 2 assets")
	assert.Contains(t, out, "(ok)")
}

func TestAdminCommands(t *testing.T) {
	isolateEnv(t)

	r := chi.NewRouter()
	r.Get("/api/categories", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"c1","name":"Flash","slug":"flash","isActive":true,"displayOrder":1}]`)
	})
	r.Get("/api/posts/published", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"p1","title":"Aftercare","slug":"aftercare","status":"published","tags":["care"]}]`)
	})
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok","admin":{"_id":"1","email":"`+creds.Email+`","fullName":"Studio Admin","isActive":true}}`)
	})
	api := httptest.NewServer(r)
	t.Cleanup(api.Close)
	t.Setenv("API_BASE_URL", api.URL)

	t.Run("categories", func(t *testing.T) {
		out, err := execute(t, "admin", "categories")
		require.NoError(t, err)
		assert.Contains(t, out, "Flash")
		assert.Contains(t, out, "flash")
	})

	t.Run("published posts", func(t *testing.T) {
		out, err := execute(t, "admin", "posts", "--published")
		require.NoError(t, err)
		assert.Contains(t, out, "Aftercare")
	})

	t.Run("login", func(t *testing.T) {
		t.Setenv("ADMIN_PASSWORD", "secret")
		out, err := execute(t, "admin", "login", "--email", "admin@example.com")
		require.NoError(t, err)
		assert.Contains(t, out, "Logged in as Studio Admin <admin@example.com>")
	})

	t.Run("login rejected", func(t *testing.T) {
		t.Setenv("ADMIN_PASSWORD", "wrong")
		_, err := execute(t, "admin", "login", "--email", "admin@example.com")
		assert.Error(t, err)
	})

	t.Run("login needs password", func(t *testing.T) {
		_, err := execute(t, "admin", "login", "--email", "admin@example.com")
		assert.ErrorContains(t, err, "ADMIN_PASSWORD")
	})
}
