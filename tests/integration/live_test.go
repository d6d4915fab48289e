// Package integration runs the full stack against the real Google APIs.
// Every test skips unless VAMU_LIVE_TESTS=1 and the needed keys are set.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vamu/internal/ai"
	"vamu/internal/config"
	httptransport "vamu/internal/http"
	"vamu/internal/http/handlers"
	"vamu/internal/maps"
	"vamu/internal/modules/inspiration"
	"vamu/internal/modules/wishlist"
)

func requireLive(t *testing.T, keys ...string) {
	t.Helper()
	if os.Getenv("VAMU_LIVE_TESTS") != "1" {
		t.Skip("VAMU_LIVE_TESTS not set; skipping live API tests")
	}
	for _, k := range keys {
		if strings.TrimSpace(os.Getenv(k)) == "" {
			t.Skipf("%s not set; skipping live API tests", k)
		}
	}
}

func liveRouter(t *testing.T, providerName string, generator ai.WishlistGenerator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	provider, err := maps.NewProvider(config.PlacesConfig{
		APIKey:   os.Getenv("GOOGLE_PLACES_API_KEY"),
		Provider: providerName,
		Timeout:  15 * time.Second,
	})
	require.NoError(t, err)
	svc := inspiration.NewService(provider, inspiration.Options{
		Defaults: inspiration.QueryDefaults{MaxResults: 8, RadiusMeters: 5000, LanguageCode: "en-US"},
		Timeout:  15 * time.Second,
	})
	return httptransport.NewRouter(httptransport.RouterDeps{
		Inspiration: svc,
		Wishlist:    wishlist.NewService(generator, nil),
		Info:        handlers.ServiceInfo{Name: "vamu-inspiration", Version: "live"},
	})
}

func post(t *testing.T, r http.Handler, path string, body any) (int, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestLiveWhereScenarios(t *testing.T) {
	requireLive(t, "GOOGLE_PLACES_API_KEY")

	for _, backend := range []string{config.ProviderPlacesV1, config.ProviderMapsLegacy} {
		t.Run(backend, func(t *testing.T) {
			r := liveRouter(t, backend, nil)
			milan := map[string]any{"latitude": 45.4642, "longitude": 9.19}

			status, body := post(t, r, "/api/v1/inspiration/where", map[string]any{
				"what":        "Pizza night",
				"location":    milan,
				"preferences": map[string]any{"max_results": 5, "min_rating": 4.0},
			})
			require.Equal(t, http.StatusOK, status, body)
			suggestions := body["suggestions"].([]any)
			assert.LessOrEqual(t, len(suggestions), 5)
			for _, s := range suggestions {
				if rating, ok := s.(map[string]any)["rating"].(float64); ok {
					assert.GreaterOrEqual(t, rating, 4.0)
				}
			}

			status, body = post(t, r, "/api/v1/inspiration/where", map[string]any{
				"what":     "Pizza in Paris",
				"location": milan,
			})
			require.Equal(t, http.StatusOK, status, body)
			assert.Equal(t, "Pizza in Paris", body["query"])
		})
	}
}

func TestLiveWishlist(t *testing.T) {
	requireLive(t, "GOOGLE_PLACES_API_KEY", "GEMINI_API_KEY")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	gemini, err := ai.NewGeminiProvider(ctx, os.Getenv("GEMINI_API_KEY"))
	require.NoError(t, err)
	defer gemini.Close()

	r := liveRouter(t, config.ProviderPlacesV1, gemini)
	status, body := post(t, r, "/api/v1/inspiration/wishlist", map[string]any{"event_name": "camping weekend", "max_items": 5})
	require.Equal(t, http.StatusOK, status, body)
	items := body["items"].([]any)
	assert.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 5)
}
