package domain

// ProximityResult is a pharmacy found inside a search radius. DistanceKm is
// rounded to one decimal place.
type ProximityResult struct {
	Pharmacy   Pharmacy `json:"pharmacy"`
	DistanceKm float64  `json:"distance_km"`
}
