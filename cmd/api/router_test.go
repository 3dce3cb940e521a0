package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarot-backend/pkg/config"
)

func guestConfig() *config.Config {
	return &config.Config{
		GinMode:                gin.TestMode,
		AIProvider:             "gemini",
		OllamaBaseURL:          "http://localhost:11434",
		OllamaModel:            "llama3",
		DailyTimezone:          "UTC",
		ReadingCacheTTL:        time.Hour,
		ReadingCacheMaxEntries: 10,
		FreeHistoryLimit:       20,
		DeliveryHour:           8,
	}
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGuestModeRoutes(t *testing.T) {
	h := NewHandler(context.Background(), guestConfig(), nil, nil)
	defer h.Close()
	r := h.Router()

	assert.Nil(t, h.Delivery())
	require.NotNil(t, h.Daily())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"health", http.MethodGet, "/api/health", "", http.StatusOK},
		{"deck", http.MethodGet, "/api/cards", "", http.StatusOK},
		{"card", http.MethodGet, "/api/cards/the-fool", "", http.StatusOK},
		{"search", http.MethodGet, "/api/cards/search?q=fool", "", http.StatusOK},
		{"lookup", http.MethodGet, "/api/cards/lookup?name=the%20tower", "", http.StatusOK},
		{"spreads", http.MethodGet, "/api/spreads", "", http.StatusOK},
		{"daily", http.MethodGet, "/api/daily?date=2025-01-01", "", http.StatusOK},
		{"triad", http.MethodGet, "/api/daily/triad", "", http.StatusOK},
		{"sign card", http.MethodGet, "/api/daily/zodiac/leo", "", http.StatusOK},
		{"signs", http.MethodGet, "/api/zodiac", "", http.StatusOK},
		{"sign for date", http.MethodGet, "/api/zodiac/for-date?date=2025-08-01", "", http.StatusOK},
		{"interpret preflight", http.MethodOptions, "/api/interpret", "", http.StatusNoContent},
		{"interpret wrong method", http.MethodGet, "/api/interpret", "", http.StatusMethodNotAllowed},
		{"interpret unconfigured", http.MethodPost, "/api/interpret", `{}`, http.StatusInternalServerError},
		{"legacy path", http.MethodPost, "/api/generate-reading", `{}`, http.StatusInternalServerError},
		{"no accounts in guest mode", http.MethodGet, "/api/auth/me", "", http.StatusNotFound},
		{"no history without database", http.MethodGet, "/api/readings", "", http.StatusNotFound},
		{"no admin without database", http.MethodPost, "/api/admin/cards/generate-all", "", http.StatusNotFound},
		{"no semantic search without database", http.MethodGet, "/api/cards/semantic?q=love", "", http.StatusNotFound},
		{"settings need admin key", http.MethodGet, "/api/settings/ollama", "", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestInterpretUnconfiguredMessage(t *testing.T) {
	h := NewHandler(context.Background(), guestConfig(), nil, nil)
	defer h.Close()

	w := serve(h.Router(), http.MethodPost, "/api/interpret", `{"session":{}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"AI service is not configured"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	h := NewHandler(context.Background(), guestConfig(), nil, nil)
	defer h.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/cards", nil)
	req.Header.Set("Origin", "https://tarot.example")
	h.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://tarot.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Admin-Key")
}
