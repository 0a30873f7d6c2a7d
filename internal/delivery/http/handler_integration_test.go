package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeefBowl03/domain-generator/config"
	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/cache"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/catalog"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/persistence"
	"github.com/BeefBowl03/domain-generator/internal/logger"
	"github.com/BeefBowl03/domain-generator/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

// stubProber answers every probe without touching the network
type stubProber struct {
	live bool
}

func (p stubProber) Exists(_ context.Context, store domain.StoreRecord, _ domain.ProbeMode) domain.LivenessResult {
	if !p.live {
		return domain.LivenessResult{Status: domain.LivenessDead}
	}
	return domain.LivenessResult{Status: domain.LivenessLive, URL: store.URL, Method: http.MethodHead, StatusCode: http.StatusOK}
}

func (p stubProber) FetchHTML(_ context.Context, store domain.StoreRecord, _ domain.ProbeMode) domain.PageResult {
	if !p.live {
		return domain.PageResult{}
	}
	return domain.PageResult{
		HTML:     `<html><body>Authorized dealer. Financing available. From $2,499.</body></html>`,
		FinalURL: store.URL,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*", "http://localhost:3000"},
		},
		Cache: config.CacheConfig{
			Type: "memory",
		},
	}
}

// setupTestRouter creates a test router without a lookup service
func setupTestRouter() *gin.Engine {
	return SetupRouter(testConfig(), NewHandler(nil), logger.NewNop())
}

// setupTestRouterWithService creates a test router with a real LookupService over stubs
func setupTestRouterWithService(t *testing.T, prober domain.SiteProber, repo domain.CuratedRepository) *gin.Engine {
	t.Helper()

	normalizer := usecase.NewNicheNormalizer(catalog.Default(), catalog.DefaultLexicon(), usecase.DefaultSimilarityPolicy)
	seeds := usecase.NewSeedSource(catalog.Default(), normalizer)
	competitors := usecase.NewCompetitorService(normalizer, seeds, prober, nil, logger.NewNop())

	memCache := cache.NewMemoryCache()
	t.Cleanup(func() { _ = memCache.Close() })

	lookup := usecase.NewLookupService(competitors, normalizer, memCache, repo, usecase.LookupServiceConfig{}, logger.NewNop())
	return SetupRouter(testConfig(), NewHandler(lookup), logger.NewNop())
}

func doJSON(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		w, response := doJSON(setupTestRouter(), http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "nichescout", response["service"])
		version, ok := response["version"].(string)
		assert.True(t, ok && strings.TrimSpace(version) != "", "version = %v", response["version"])
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter()

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w, _ := doJSON(router, method, "/health", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})

	t.Run("carries a request id", func(t *testing.T) {
		w, _ := doJSON(setupTestRouter(), http.MethodGet, "/health", "")

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

// TestCompetitorsEndpoint tests POST /api/v1/competitors
func TestCompetitorsEndpoint(t *testing.T) {
	t.Run("returns 503 without a service", func(t *testing.T) {
		w, response := doJSON(setupTestRouter(), http.MethodPost, "/api/v1/competitors", `{"niche":"backyard"}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, response["error"], "not configured")
	})

	t.Run("returns verified competitors", func(t *testing.T) {
		repo := persistence.NewMemoryRepository()
		router := setupTestRouterWithService(t, stubProber{live: true}, repo)

		w, response := doJSON(router, http.MethodPost, "/api/v1/competitors", `{"niche":"Home Gym","timeoutSeconds":30}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "home gym", response["canonical"])
		assert.Equal(t, usecase.SourceDiscovery, response["source"])
		assert.Equal(t, false, response["partial"])
		competitors, ok := response["competitors"].([]interface{})
		require.True(t, ok)
		assert.Len(t, competitors, domain.MaxCompetitors)

		_, err := repo.GetCurated(context.Background(), "home gym")
		assert.NoError(t, err)
	})

	t.Run("second lookup is served from cache", func(t *testing.T) {
		router := setupTestRouterWithService(t, stubProber{live: true}, nil)

		w, _ := doJSON(router, http.MethodPost, "/api/v1/competitors", `{"niche":"backyard","fast":true}`)
		require.Equal(t, http.StatusOK, w.Code)

		w, response := doJSON(router, http.MethodPost, "/api/v1/competitors", `{"niche":"backyard","fast":true}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecase.SourceCache, response["source"])
	})

	t.Run("returns 404 when nothing verifies", func(t *testing.T) {
		router := setupTestRouterWithService(t, stubProber{live: false}, nil)

		w, response := doJSON(router, http.MethodPost, "/api/v1/competitors", `{"niche":"backyard","timeoutSeconds":5}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, response["error"], "try a different niche")
	})

	t.Run("returns 400 for invalid requests", func(t *testing.T) {
		router := setupTestRouterWithService(t, stubProber{live: true}, nil)

		bodies := []string{
			`{invalid json}`,
			`{}`,
			`{"niche":""}`,
			`{"niche":"  !! "}`,
			`{"niche":"backyard","timeoutSeconds":-1}`,
		}
		for _, body := range bodies {
			w, response := doJSON(router, http.MethodPost, "/api/v1/competitors", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
			assert.NotNil(t, response["error"], "body %s", body)
		}
	})

	t.Run("validates HTTP method", func(t *testing.T) {
		router := setupTestRouter()

		for _, method := range []string{"GET", "PUT", "DELETE", "PATCH"} {
			w, _ := doJSON(router, method, "/api/v1/competitors", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

// TestResolveEndpoint tests GET /api/v1/niches/resolve
func TestResolveEndpoint(t *testing.T) {
	router := setupTestRouterWithService(t, stubProber{live: true}, nil)

	t.Run("resolves through the alias table", func(t *testing.T) {
		w, response := doJSON(router, http.MethodGet, "/api/v1/niches/resolve?q=Hot-Tub", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hot-Tub", response["input"])
		assert.Equal(t, "hot tubs", response["normalized"])
		assert.Equal(t, "hot tubs", response["canonical"])
		assert.NotEmpty(t, response["variations"])
	})

	t.Run("requires q", func(t *testing.T) {
		w, _ := doJSON(router, http.MethodGet, "/api/v1/niches/resolve", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestCuratedEndpoint tests GET /api/v1/niches/:niche/curated
func TestCuratedEndpoint(t *testing.T) {
	repo := persistence.NewMemoryRepository()
	require.NoError(t, repo.ReplaceCurated(context.Background(), "home gym", []domain.StoreRecord{
		{Name: "Garage Gym Reviews Shop", Domain: "garagegymshop.com"},
	}))
	router := setupTestRouterWithService(t, stubProber{live: true}, repo)

	t.Run("returns the stored list", func(t *testing.T) {
		w, response := doJSON(router, http.MethodGet, "/api/v1/niches/home%20gym/curated", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecase.SourceCurated, response["source"])
		competitors, ok := response["competitors"].([]interface{})
		require.True(t, ok)
		assert.Len(t, competitors, 1)
	})

	t.Run("returns 404 for unknown niches", func(t *testing.T) {
		w, response := doJSON(router, http.MethodGet, "/api/v1/niches/kayaks/curated", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, response["error"], "try a different niche")
	})
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	t.Run("health endpoint has CORS for Chrome extension", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
		w := httptest.NewRecorder()

		setupTestRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "chrome-extension://abcdefghijklmnop", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("api endpoint has CORS for localhost", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/competitors", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		setupTestRouter().ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

// TestRecoveryMiddleware tests panic recovery
func TestRecoveryMiddleware(t *testing.T) {
	router := setupTestRouter()
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w, _ := doJSON(router, http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestJSONResponses tests that all responses are valid JSON
func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/api/v1/competitors"},
		{"GET", "/api/v1/niches/resolve?q=drones"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			router := setupTestRouter()

			w, response := doJSON(router, endpoint.method, endpoint.path, "")

			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.NotNil(t, response)
		})
	}
}
