package inspiration

import (
	"slices"
	"strings"
)

// Normalize maps raw provider records to suggestions, keeping provider order.
// It drops records that fail the given post-filters and truncates to
// prefs.MaxResults when that is positive. Unknown rating, price tier or
// open-now status never excludes a record.
func Normalize(records []RawVenueRecord, prefs Preferences) []VenueSuggestion {
	out := make([]VenueSuggestion, 0, len(records))
	for _, rec := range records {
		if prefs.MaxResults > 0 && len(out) >= prefs.MaxResults {
			break
		}
		if !passesFilters(rec, prefs) {
			continue
		}
		out = append(out, toSuggestion(rec))
	}
	return out
}

func passesFilters(rec RawVenueRecord, prefs Preferences) bool {
	if prefs.MinRating != nil && rec.Rating != nil && *rec.Rating < *prefs.MinRating {
		return false
	}
	if len(prefs.PriceLevels) > 0 && rec.PriceTier != nil && !slices.Contains(prefs.PriceLevels, *rec.PriceTier) {
		return false
	}
	if prefs.OpenNow && rec.OpenNow != nil && !*rec.OpenNow {
		return false
	}
	return true
}

func toSuggestion(rec RawVenueRecord) VenueSuggestion {
	s := VenueSuggestion{
		PlaceID:       rec.PlaceID,
		Name:          rec.Name,
		DisplayName:   rec.DisplayName,
		Address:       rec.Address,
		Location:      rec.Location,
		TotalRatings:  rec.RatingCount,
		PriceLevel:    PriceUnspecifiedLabel,
		Types:         []string{},
		GoogleMapsURI: rec.MapsURI,
	}
	if s.DisplayName == "" {
		s.DisplayName = rec.Name
	}
	if rec.Rating != nil {
		r := *rec.Rating
		s.Rating = &r
	}
	if rec.PriceTier != nil {
		s.PriceLevel = rec.PriceTier.Label()
	}
	if len(rec.Types) > 0 {
		s.Types = slices.Clone(rec.Types)
	}
	s.Phone = optionalString(rec.Phone)
	s.Website = optionalString(rec.Website)
	if rec.OpenNow != nil {
		open := *rec.OpenNow
		s.IsOpenNow = &open
	}
	return s
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
