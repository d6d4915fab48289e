// README: Inspiration handlers (venue search, recent searches, feature health).
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vamu/internal/modules/analytics"
	"vamu/internal/modules/inspiration"
	"vamu/internal/types"
)

type InspirationHandler struct {
	inspiration *inspiration.Service
	analytics   *analytics.Recorder
}

// NewInspirationHandler creates the handler. recorder may be nil.
func NewInspirationHandler(svc *inspiration.Service, recorder *analytics.Recorder) *InspirationHandler {
	return &InspirationHandler{inspiration: svc, analytics: recorder}
}

type locationReq struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type preferencesReq struct {
	MaxResults *int     `json:"max_results"`
	MinRating  *float64 `json:"min_rating"`
	PriceLevel []string `json:"price_level"`
	OpenNow    bool     `json:"open_now"`
}

type whereReq struct {
	What string `json:"what"`
	// When is accepted for compatibility and not used by the search.
	When           *string         `json:"when"`
	Location       *locationReq    `json:"location"`
	LocationRadius *float64        `json:"location_radius"`
	Preferences    *preferencesReq `json:"preferences"`
}

// toSearchRequest applies the HTTP-level bounds and converts to the domain request.
func (r whereReq) toSearchRequest() (inspiration.SearchRequest, string) {
	req := inspiration.SearchRequest{What: r.What, RadiusMeters: r.LocationRadius}
	if r.Location != nil {
		if r.Location.Latitude == nil || r.Location.Longitude == nil {
			return req, "location requires latitude and longitude"
		}
		req.Location = &types.LatLon{Latitude: *r.Location.Latitude, Longitude: *r.Location.Longitude}
	}
	if p := r.Preferences; p != nil {
		prefs := &inspiration.Preferences{MinRating: p.MinRating, OpenNow: p.OpenNow}
		if p.MaxResults != nil {
			if *p.MaxResults < 1 || *p.MaxResults > inspiration.MaxProviderResults {
				return req, "max_results must be between 1 and " + strconv.Itoa(inspiration.MaxProviderResults)
			}
			prefs.MaxResults = *p.MaxResults
		}
		for _, label := range p.PriceLevel {
			tier, err := inspiration.ParsePriceTier(label)
			if err != nil {
				return req, err.Error()
			}
			prefs.PriceLevels = append(prefs.PriceLevels, tier)
		}
		req.Preferences = prefs
	}
	return req, ""
}

// Where handles POST /api/v1/inspiration/where.
func (h *InspirationHandler) Where(c *gin.Context) {
	var body whereReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json", err.Error())
		return
	}
	req, problem := body.toSearchRequest()
	if problem != "" {
		writeError(c, http.StatusBadRequest, "invalid request", problem)
		return
	}

	start := time.Now()
	list, err := h.inspiration.Suggest(c.Request.Context(), req)
	biasApplied := req.Location != nil && !inspiration.HasLocationMarker(req.What)
	h.analytics.Track(analytics.NewSearchEvent(req.What, biasApplied, list.TotalCount, err, time.Since(start)))
	if err != nil {
		writeInspirationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, list)
}

// Searches handles GET /api/v1/inspiration/searches.
func (h *InspirationHandler) Searches(c *gin.Context) {
	if !h.analytics.Enabled() {
		writeError(c, http.StatusServiceUnavailable, "search analytics not configured", "")
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(c, http.StatusBadRequest, "invalid request", "limit must be a positive integer")
			return
		}
		limit = n
	}
	events, err := h.analytics.Recent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error", "")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"searches": events})
}

// Health handles GET /api/v1/inspiration/health.
func (h *InspirationHandler) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "healthy", "service": "inspiration"})
}
