package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tastyshare/backend/config"
	"github.com/pageza/tastyshare/backend/internal/api"
	"github.com/pageza/tastyshare/backend/internal/service"
	"github.com/pageza/tastyshare/backend/internal/testhelpers"
)

func testRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		ImageStorage:   config.StorageLocal,
		ImageDir:       dir,
	}

	logger := testhelpers.DiscardLogger()
	db := testhelpers.SetupTestDatabase(t)
	images, err := service.NewLocalImageStore(dir, 1<<20, logger)
	require.NoError(t, err)

	router, err := SetupRouter(cfg, api.Deps{
		DB:             db,
		Auth:           service.NewAuthService(db, service.NewMemorySessionStore(), images, "secret", time.Hour, logger),
		Recipes:        service.NewRecipeService(db, images, logger),
		Social:         service.NewSocialService(db, logger),
		Images:         images,
		MaxUploadBytes: 1 << 20,
		Logger:         logger,
	})
	require.NoError(t, err)
	return router, dir
}

func TestSetupRouter(t *testing.T) {
	router, dir := testRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tea.png"), []byte("png"), 0o644))

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"recipes", http.MethodGet, "/api/v1/recipes", http.StatusOK},
		{"menu", http.MethodGet, "/api/v1/menu", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"static image", http.MethodGet, "/images/tea.png", http.StatusOK},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/health", http.StatusMethodNotAllowed},
		{"profile needs session", http.MethodGet, "/api/v1/profile", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestMetricsExposeRequests(t *testing.T) {
	router, _ := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `tastyshare_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recipes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
