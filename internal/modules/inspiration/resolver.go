package inspiration

import (
	"strings"

	"vamu/internal/types"
)

// locationMarkers signal that the text already names a place. The surrounding
// spaces keep "Latin" from matching " at ".
var locationMarkers = []string{" in ", " near ", " at ", " around "}

// HasLocationMarker reports whether text carries one of the locative markers.
func HasLocationMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range locationMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// ResolveLocation decides whether coordinates should bias the provider search.
//
// A marker in the text wins over coordinates and no bias is returned. Without a
// marker the coordinates (if any) become the bias. With neither, the provider
// falls back to its own IP-based location.
func ResolveLocation(text string, coords *types.LatLon, radiusMeters float64) *LocationBias {
	if HasLocationMarker(text) || coords == nil {
		return nil
	}
	return &LocationBias{Center: *coords, RadiusMeters: radiusMeters}
}
