package inspiration

import (
	"fmt"
	"slices"
	"strings"
)

// fieldMaskV1 is the provider field set needed to fill a VenueSuggestion.
// Every entry maps to a billed SKU tier; adding one raises the per-call cost.
var fieldMaskV1 = []string{
	"id",
	"name",
	"displayName",
	"formattedAddress",
	"location",
	"types",
	"googleMapsUri",
	"rating",
	"userRatingCount",
	"priceLevel",
	"nationalPhoneNumber",
	"websiteUri",
	"currentOpeningHours",
}

// FieldMaskVersion identifies fieldMaskV1 in logs and analytics.
const FieldMaskVersion = "v1"

// FieldMask returns a copy of the versioned field mask.
func FieldMask() []string {
	return slices.Clone(fieldMaskV1)
}

// QueryDefaults are the configured fallbacks for a request.
type QueryDefaults struct {
	MaxResults   int
	RadiusMeters float64
	LanguageCode string
}

// BuildQuery assembles the provider request. Filters the backend supports go out
// natively; the rest are carried in Deferred for the normalizer.
func BuildQuery(req SearchRequest, bias *LocationBias, defaults QueryDefaults, caps Capabilities) (ProviderQuery, error) {
	text := strings.TrimSpace(req.What)
	if text == "" {
		return ProviderQuery{}, fmt.Errorf("%w: what must not be empty", ErrInvalidRequest)
	}

	prefs := Preferences{}
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	maxResults := prefs.MaxResults
	if maxResults == 0 {
		maxResults = defaults.MaxResults
	}
	if maxResults <= 0 {
		return ProviderQuery{}, fmt.Errorf("%w: max_results must be positive, got %d", ErrInvalidRequest, maxResults)
	}

	q := ProviderQuery{
		Text:           text,
		MaxResults:     maxResults,
		FieldMask:      FieldMask(),
		RankPreference: RankRelevance,
		LanguageCode:   defaults.LanguageCode,
		Deferred:       Preferences{MaxResults: maxResults},
	}
	if bias != nil {
		b := *bias
		q.Bias = &b
	}

	if prefs.MinRating != nil {
		r := *prefs.MinRating
		if caps.MinRating {
			q.MinRating = &r
		} else {
			q.Deferred.MinRating = &r
		}
	}
	if len(prefs.PriceLevels) > 0 {
		levels := slices.Clone(prefs.PriceLevels)
		if caps.PriceLevels {
			q.PriceLevels = levels
		} else {
			q.Deferred.PriceLevels = levels
		}
	}
	if prefs.OpenNow {
		if caps.OpenNow {
			q.OpenNow = true
		} else {
			q.Deferred.OpenNow = true
		}
	}
	return q, nil
}
