// README: Common coordinate value object shared by request parsing and provider clients.
package types

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// LatLon is a WGS84 coordinate pair in decimal degrees.
type LatLon struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports whether the pair lies inside the valid latitude/longitude ranges.
func (p LatLon) Validate() error {
	if !isFinite(p.Latitude) || !isFinite(p.Longitude) {
		return fmt.Errorf("coordinates %v,%v are not finite", p.Latitude, p.Longitude)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Longitude)
	}
	return nil
}

func (p LatLon) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}

// DistanceMeters returns the great-circle (haversine) distance to q.
func (p LatLon) DistanceMeters(q LatLon) float64 {
	dLat := degreesToRadians(q.Latitude - p.Latitude)
	dLng := degreesToRadians(q.Longitude - p.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(p.Latitude))*math.Cos(degreesToRadians(q.Latitude))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
