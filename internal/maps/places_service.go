package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"vamu/internal/modules/inspiration"
	"vamu/internal/types"
)

const (
	// DefaultPlacesBaseURL is the Places API (New) root.
	DefaultPlacesBaseURL = "https://places.googleapis.com/v1"
	defaultHTTPTimeout   = 10 * time.Second
	maxErrorBody         = 4 << 10
)

// PlacesService calls the Places API (New) Text Search endpoint.
// It is safe for concurrent use.
type PlacesService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewPlacesService creates a PlacesService. An empty baseURL selects the public endpoint.
func NewPlacesService(apiKey, baseURL string, timeout time.Duration) *PlacesService {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return NewPlacesServiceWithClient(apiKey, baseURL, &http.Client{Timeout: timeout})
}

// NewPlacesServiceWithClient allows overriding the HTTP client (used for tests).
func NewPlacesServiceWithClient(apiKey, baseURL string, httpClient *http.Client) *PlacesService {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultPlacesBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &PlacesService{
		apiKey:     apiKey,
		endpoint:   strings.TrimRight(baseURL, "/") + "/places:searchText",
		httpClient: httpClient,
	}
}

// Capabilities reports that Text Search (New) enforces every preference filter natively.
func (s *PlacesService) Capabilities() inspiration.Capabilities {
	return inspiration.Capabilities{MinRating: true, PriceLevels: true, OpenNow: true}
}

// Search performs exactly one Text Search call. No retries.
func (s *PlacesService) Search(ctx context.Context, q inspiration.ProviderQuery) ([]inspiration.RawVenueRecord, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return nil, fmt.Errorf("%w: missing api key", inspiration.ErrProviderAuth)
	}

	payload, err := json.Marshal(newSearchTextRequest(q))
	if err != nil {
		return nil, fmt.Errorf("%w: encode search request: %v", inspiration.ErrInvalidRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", inspiration.ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMaskHeader(q.FieldMask))

	logger := log.Ctx(ctx)
	logger.Debug().
		Str("url", s.endpoint).
		Str("text_query", q.Text).
		Str("key", "***REDACTED***").
		Msg("calling places text search")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inspiration.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		logger.Warn().Err(err).Int("status", resp.StatusCode).Msg("places text search failed")
		return nil, err
	}

	var body searchTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", inspiration.ErrProviderUnavailable, err)
	}

	records := make([]inspiration.RawVenueRecord, 0, len(body.Places))
	for _, p := range body.Places {
		records = append(records, p.toRecord())
	}

	logger.Debug().
		Int("results_count", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("places text search completed")
	return records, nil
}

func fieldMaskHeader(fields []string) string {
	prefixed := make([]string, len(fields))
	for i, f := range fields {
		prefixed[i] = "places." + f
	}
	return strings.Join(prefixed, ",")
}

func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := readErrorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", inspiration.ErrProviderAuth, resp.StatusCode, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", inspiration.ErrProviderRateLimited, resp.StatusCode, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", inspiration.ErrProviderUnavailable, resp.StatusCode, msg)
	}
}

func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body apiErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return "unknown error"
}

type searchTextRequest struct {
	TextQuery      string        `json:"textQuery"`
	MaxResultCount int           `json:"maxResultCount"`
	LanguageCode   string        `json:"languageCode,omitempty"`
	LocationBias   *locationBias `json:"locationBias,omitempty"`
	MinRating      *float64      `json:"minRating,omitempty"`
	PriceLevels    []string      `json:"priceLevels,omitempty"`
	OpenNow        bool          `json:"openNow,omitempty"`
	RankPreference string        `json:"rankPreference,omitempty"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func newSearchTextRequest(q inspiration.ProviderQuery) searchTextRequest {
	req := searchTextRequest{
		TextQuery:      q.Text,
		MaxResultCount: min(q.MaxResults, inspiration.MaxProviderResults),
		LanguageCode:   q.LanguageCode,
		MinRating:      q.MinRating,
		OpenNow:        q.OpenNow,
		RankPreference: q.RankPreference,
	}
	if q.Bias != nil {
		req.LocationBias = &locationBias{Circle: circle{
			Center: latLng{Latitude: q.Bias.Center.Latitude, Longitude: q.Bias.Center.Longitude},
			Radius: q.Bias.RadiusMeters,
		}}
	}
	for _, tier := range q.PriceLevels {
		req.PriceLevels = append(req.PriceLevels, tier.Enum())
	}
	return req
}

type searchTextResponse struct {
	Places []placeV1 `json:"places"`
}

type placeV1 struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	DisplayName         *localizedText `json:"displayName,omitempty"`
	FormattedAddress    string         `json:"formattedAddress"`
	Location            *latLng        `json:"location,omitempty"`
	Rating              *float64       `json:"rating,omitempty"`
	UserRatingCount     int            `json:"userRatingCount"`
	PriceLevel          string         `json:"priceLevel,omitempty"`
	Types               []string       `json:"types,omitempty"`
	NationalPhoneNumber string         `json:"nationalPhoneNumber,omitempty"`
	WebsiteURI          string         `json:"websiteUri,omitempty"`
	GoogleMapsURI       string         `json:"googleMapsUri,omitempty"`
	CurrentOpeningHours *openingHours  `json:"currentOpeningHours,omitempty"`
}

type localizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type openingHours struct {
	OpenNow *bool `json:"openNow,omitempty"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (p placeV1) toRecord() inspiration.RawVenueRecord {
	rec := inspiration.RawVenueRecord{
		PlaceID:     p.ID,
		Name:        p.Name,
		Address:     p.FormattedAddress,
		Rating:      p.Rating,
		RatingCount: p.UserRatingCount,
		Types:       p.Types,
		Phone:       p.NationalPhoneNumber,
		Website:     p.WebsiteURI,
		MapsURI:     p.GoogleMapsURI,
	}
	if p.DisplayName != nil {
		rec.DisplayName = p.DisplayName.Text
	}
	if p.Location != nil {
		rec.Location = types.LatLon{Latitude: p.Location.Latitude, Longitude: p.Location.Longitude}
	}
	if tier, ok := inspiration.PriceTierFromEnum(p.PriceLevel); ok {
		rec.PriceTier = &tier
	}
	if p.CurrentOpeningHours != nil {
		rec.OpenNow = p.CurrentOpeningHours.OpenNow
	}
	return rec
}
