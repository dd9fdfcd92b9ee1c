package proximity

import (
	"fmt"
	"math"

	"pharmanear/m/domain"
	apperrors "pharmanear/m/pkg/errors"
)

const (
	// KmPerDegree converts planar degree distance to kilometres.
	KmPerDegree = 111.0
	// DefaultRadiusKm is the search radius used when the caller gives none.
	DefaultRadiusKm = 5.0
)

// DistanceKm is the flat-plane approximation sqrt(dLat^2 + dLng^2) * 111.
// It is not geodesic; results near the reference point are what matter.
func DistanceKm(from, to domain.Location) float64 {
	dLat := to.Lat - from.Lat
	dLng := to.Lng - from.Lng
	return math.Sqrt(dLat*dLat+dLng*dLng) * KmPerDegree
}

// RoundDistance rounds to one decimal place, half away from zero.
func RoundDistance(km float64) float64 {
	return math.Round(km*10) / 10
}

// ValidateRadius accepts any finite, non-negative radius.
func ValidateRadius(radiusKm float64) error {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "radius must be a finite number", nil)
	}
	if radiusKm < 0 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("radius %v must not be negative", radiusKm), nil)
	}
	return nil
}

// FindNearby returns the pharmacies within radiusKm of (lat, lng) in input
// order. Each result holds a copy of the pharmacy; the input slice is never
// modified. An empty result is not an error.
func FindNearby(lat, lng, radiusKm float64, pharmacies []domain.Pharmacy) ([]domain.ProximityResult, error) {
	ref := domain.Location{Lat: lat, Lng: lng}
	if err := ref.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid reference location", err)
	}
	if err := ValidateRadius(radiusKm); err != nil {
		return nil, err
	}

	results := make([]domain.ProximityResult, 0, len(pharmacies))
	for _, p := range pharmacies {
		d := DistanceKm(ref, p.Location)
		if d > radiusKm {
			continue
		}
		results = append(results, domain.ProximityResult{
			Pharmacy:   p.Clone(),
			DistanceKm: RoundDistance(d),
		})
	}
	return results, nil
}
