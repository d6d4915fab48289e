// README: Inspiration domain types (requests, provider queries, raw records, suggestions).
package inspiration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"vamu/internal/types"
)

var (
	// ErrInvalidRequest marks malformed or out-of-range input. Never retried.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrProviderAuth is returned when the places provider rejects or lacks a credential.
	ErrProviderAuth = errors.New("places provider authentication failed")
	// ErrProviderUnavailable covers transport failures, timeouts and non-success statuses.
	ErrProviderUnavailable = errors.New("places provider unavailable")
	// ErrProviderRateLimited is a provider 429. It also matches ErrProviderUnavailable.
	ErrProviderRateLimited = fmt.Errorf("%w: rate limit exceeded", ErrProviderUnavailable)
)

const (
	// MaxProviderResults is the hard per-call cap enforced by the provider.
	MaxProviderResults = 20
	// MaxRadiusMeters is the largest bias circle the provider accepts.
	MaxRadiusMeters = 50000.0

	RankRelevance = "RELEVANCE"
)

// PriceTier is the provider's numeric price bucket, 0 (free) through 4 (very expensive).
type PriceTier int

const (
	PriceFree PriceTier = iota
	PriceInexpensive
	PriceModerate
	PriceExpensive
	PriceVeryExpensive
)

// PriceUnspecifiedLabel is used for missing or unknown tiers.
const PriceUnspecifiedLabel = "unspecified"

var priceLabels = map[PriceTier]string{
	PriceFree:          "free",
	PriceInexpensive:   "inexpensive",
	PriceModerate:      "moderate",
	PriceExpensive:     "expensive",
	PriceVeryExpensive: "very expensive",
}

var priceEnums = map[PriceTier]string{
	PriceFree:          "PRICE_LEVEL_FREE",
	PriceInexpensive:   "PRICE_LEVEL_INEXPENSIVE",
	PriceModerate:      "PRICE_LEVEL_MODERATE",
	PriceExpensive:     "PRICE_LEVEL_EXPENSIVE",
	PriceVeryExpensive: "PRICE_LEVEL_VERY_EXPENSIVE",
}

// Label returns the display label, or PriceUnspecifiedLabel for an unknown tier.
func (p PriceTier) Label() string {
	if l, ok := priceLabels[p]; ok {
		return l
	}
	return PriceUnspecifiedLabel
}

// Enum returns the provider-native enum name, or "" for an unknown tier.
func (p PriceTier) Enum() string {
	return priceEnums[p]
}

// ParsePriceTier accepts a display label ("moderate", "very_expensive") or a
// provider enum ("PRICE_LEVEL_MODERATE").
func ParsePriceTier(s string) (PriceTier, error) {
	v := strings.TrimSpace(s)
	for tier, enum := range priceEnums {
		if strings.EqualFold(v, enum) {
			return tier, nil
		}
	}
	norm := strings.ToLower(strings.ReplaceAll(v, "_", " "))
	for tier, label := range priceLabels {
		if norm == label {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown price level %q", ErrInvalidRequest, s)
}

// PriceTierFromEnum maps a provider enum to a tier. ok is false for
// PRICE_LEVEL_UNSPECIFIED, empty or unrecognized values.
func PriceTierFromEnum(enum string) (tier PriceTier, ok bool) {
	for t, e := range priceEnums {
		if e == enum {
			return t, true
		}
	}
	return 0, false
}

// Preferences are the optional result constraints of a search.
type Preferences struct {
	// MaxResults of 0 means "use the configured default".
	MaxResults  int
	MinRating   *float64
	PriceLevels []PriceTier
	OpenNow     bool
}

// SearchRequest is the inbound payload of a venue search.
type SearchRequest struct {
	What         string
	Location     *types.LatLon
	RadiusMeters *float64
	Preferences  *Preferences
}

// Validate checks the constraints that do not depend on configuration.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.What) == "" {
		return fmt.Errorf("%w: what must not be empty", ErrInvalidRequest)
	}
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	if r.RadiusMeters != nil && (math.IsNaN(*r.RadiusMeters) || *r.RadiusMeters <= 0 || *r.RadiusMeters > MaxRadiusMeters) {
		return fmt.Errorf("%w: location_radius must be in (0, %.0f]", ErrInvalidRequest, MaxRadiusMeters)
	}
	if p := r.Preferences; p != nil {
		if p.MaxResults < 0 {
			return fmt.Errorf("%w: max_results must be positive", ErrInvalidRequest)
		}
		if p.MinRating != nil && (math.IsNaN(*p.MinRating) || *p.MinRating < 0 || *p.MinRating > 5) {
			return fmt.Errorf("%w: min_rating must be in [0, 5]", ErrInvalidRequest)
		}
		for _, tier := range p.PriceLevels {
			if tier.Enum() == "" {
				return fmt.Errorf("%w: unknown price tier %d", ErrInvalidRequest, tier)
			}
		}
	}
	return nil
}

// LocationBias weights results toward a circle without restricting to it.
type LocationBias struct {
	Center       types.LatLon
	RadiusMeters float64
}

// Capabilities lists the filters a provider backend enforces natively.
type Capabilities struct {
	MinRating   bool
	PriceLevels bool
	OpenNow     bool
}

// ProviderQuery is the outbound search, built once per request and not mutated afterwards.
type ProviderQuery struct {
	Text           string
	Bias           *LocationBias
	MaxResults     int
	FieldMask      []string
	RankPreference string
	LanguageCode   string

	// Native filters, sent to the provider.
	MinRating   *float64
	PriceLevels []PriceTier
	OpenNow     bool

	// Deferred holds the constraints the normalizer must still apply.
	Deferred Preferences
}

// RawVenueRecord is a provider record reduced to the fields the field mask requests.
type RawVenueRecord struct {
	PlaceID     string
	Name        string
	DisplayName string
	Address     string
	Location    types.LatLon
	Rating      *float64
	RatingCount int
	PriceTier   *PriceTier
	Types       []string
	Phone       string
	Website     string
	OpenNow     *bool
	MapsURI     string
}

// VenueSuggestion is the normalized output entity.
type VenueSuggestion struct {
	PlaceID       string       `json:"place_id"`
	Name          string       `json:"name"`
	DisplayName   string       `json:"display_name"`
	Address       string       `json:"address"`
	Location      types.LatLon `json:"location"`
	Rating        *float64     `json:"rating"`
	TotalRatings  int          `json:"total_ratings"`
	PriceLevel    string       `json:"price_level"`
	Types         []string     `json:"types"`
	Phone         *string      `json:"phone"`
	Website       *string      `json:"website"`
	IsOpenNow     *bool        `json:"is_open_now"`
	GoogleMapsURI string       `json:"google_maps_uri"`
}

// SuggestionList is the result of one pipeline run.
type SuggestionList struct {
	Suggestions []VenueSuggestion `json:"suggestions"`
	TotalCount  int               `json:"total_count"`
	Query       string            `json:"query"`
}
