package maps

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"googlemaps.github.io/maps"

	"vamu/internal/modules/inspiration"
	"vamu/internal/types"
)

// LegacyPlacesService searches through the legacy Places Text Search API using the
// Google Maps client. The legacy endpoint has no field mask, so the versioned mask in
// the query is not transmitted; it returns neither phone, website nor map link.
type LegacyPlacesService struct {
	client *maps.Client
}

// NewLegacyPlacesService creates a LegacyPlacesService with the given API key.
// baseURL is optional and only used to point the client at a test server.
func NewLegacyPlacesService(apiKey, baseURL string, timeout time.Duration) (*LegacyPlacesService, error) {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	opts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &LegacyPlacesService{client: client}, nil
}

// Capabilities reports the filters the legacy endpoint enforces. Rating and price-set
// filters are not supported and are applied after the call.
func (s *LegacyPlacesService) Capabilities() inspiration.Capabilities {
	return inspiration.Capabilities{OpenNow: true}
}

// Search performs one legacy Text Search call.
func (s *LegacyPlacesService) Search(ctx context.Context, q inspiration.ProviderQuery) ([]inspiration.RawVenueRecord, error) {
	r := &maps.TextSearchRequest{
		Query:    q.Text,
		OpenNow:  q.OpenNow,
		Language: q.LanguageCode,
	}
	if q.Bias != nil {
		r.Location = &maps.LatLng{Lat: q.Bias.Center.Latitude, Lng: q.Bias.Center.Longitude}
		r.Radius = uint(q.Bias.RadiusMeters)
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, classifyLegacyError(err)
	}

	records := make([]inspiration.RawVenueRecord, 0, len(resp.Results))
	for _, result := range resp.Results {
		records = append(records, legacyRecord(result))
	}

	log.Ctx(ctx).Debug().
		Str("text_query", q.Text).
		Int("results_count", len(records)).
		Msg("legacy places text search completed")
	return records, nil
}

func classifyLegacyError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "REQUEST_DENIED"):
		return fmt.Errorf("%w: %v", inspiration.ErrProviderAuth, err)
	case strings.Contains(msg, "OVER_QUERY_LIMIT"):
		return fmt.Errorf("%w: %v", inspiration.ErrProviderRateLimited, err)
	default:
		return fmt.Errorf("%w: places api error: %v", inspiration.ErrProviderUnavailable, err)
	}
}

// legacyRecord maps a legacy result. The legacy API reports a missing rating and a
// missing price level as zero, so zero is read as "unknown" for both.
func legacyRecord(result maps.PlacesSearchResult) inspiration.RawVenueRecord {
	rec := inspiration.RawVenueRecord{
		PlaceID:     result.PlaceID,
		Name:        result.Name,
		DisplayName: result.Name,
		Address:     result.FormattedAddress,
		Location:    types.LatLon{Latitude: result.Geometry.Location.Lat, Longitude: result.Geometry.Location.Lng},
		RatingCount: result.UserRatingsTotal,
		Types:       result.Types,
	}
	if result.Rating > 0 || result.UserRatingsTotal > 0 {
		rating := float64(result.Rating)
		rec.Rating = &rating
	}
	if result.PriceLevel > 0 {
		tier := inspiration.PriceTier(result.PriceLevel)
		rec.PriceTier = &tier
	}
	if result.OpeningHours != nil {
		rec.OpenNow = result.OpeningHours.OpenNow
	}
	return rec
}
