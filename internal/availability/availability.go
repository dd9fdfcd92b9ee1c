package availability

import "pharmanear/m/domain"

// StockFor returns the units p holds of medicine; a missing entry is zero.
func StockFor(p domain.Pharmacy, medicine string) int {
	if medicine == "" {
		return 0
	}
	return p.Stock[medicine]
}

// CanOrder reports whether an order for medicine may be placed at p right now.
func CanOrder(p domain.Pharmacy, medicine string) bool {
	return p.IsOpen && StockFor(p, medicine) > 0
}

// Classify maps the two availability counts onto the badge shown to users.
func Classify(openAvailable, anyAvailable int) domain.Classification {
	switch {
	case openAvailable > 0:
		return domain.ClassificationAvailable
	case anyAvailable > 0:
		return domain.ClassificationAvailableButClosed
	default:
		return domain.ClassificationNotAvailable
	}
}

// Summarize aggregates stock of medicine across results. An empty medicine
// yields a zero summary classified as none.
func Summarize(results []domain.ProximityResult, medicine string) domain.AvailabilitySummary {
	if medicine == "" {
		return domain.AvailabilitySummary{Classification: domain.ClassificationNone}
	}

	summary := domain.AvailabilitySummary{
		Medicine:      medicine,
		TotalInRadius: len(results),
	}
	for _, r := range results {
		units := StockFor(r.Pharmacy, medicine)
		summary.TotalStock += units
		if units <= 0 {
			continue
		}
		summary.AnyAvailable++
		if r.Pharmacy.IsOpen {
			summary.OpenAvailable++
		}
	}
	summary.Classification = Classify(summary.OpenAvailable, summary.AnyAvailable)
	return summary
}
