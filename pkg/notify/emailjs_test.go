package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tattoo-studio/pkg/config"
)

func TestEmailJS_Send(t *testing.T) {
	t.Run("posts template params", func(t *testing.T) {
		var got sendRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte("OK"))
		}))
		defer srv.Close()

		sender := NewEmailJS(config.EmailJSConfig{
			Endpoint:   srv.URL,
			ServiceID:  "service_1",
			TemplateID: "template_1",
			PublicKey:  "pk_1",
		}, srv.Client())

		err := sender.Send(context.Background(), map[string]string{"name": "Ada", "email": "user@example.com"})
		require.NoError(t, err)

		assert.Equal(t, "service_1", got.ServiceID)
		assert.Equal(t, "template_1", got.TemplateID)
		assert.Equal(t, "pk_1", got.UserID)
		assert.Equal(t, "user@example.com", got.TemplateParams["email"])
	})

	t.Run("provider rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "The public key is invalid", http.StatusBadRequest)
		}))
		defer srv.Close()

		sender := NewEmailJS(config.EmailJSConfig{
			Endpoint: srv.URL, ServiceID: "s", TemplateID: "t", PublicKey: "p",
		}, nil)

		err := sender.Send(context.Background(), map[string]string{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "public key is invalid")
	})

	t.Run("not configured", func(t *testing.T) {
		sender := NewEmailJS(config.EmailJSConfig{ServiceID: "s"}, nil)
		assert.ErrorIs(t, sender.Send(context.Background(), nil), ErrNotConfigured)
	})
}
