package catalog

import (
	"strings"

	"pharmanear/m/domain"
)

// Catalog is a read-only snapshot of medicines and pharmacies. Accessors
// hand out copies so callers cannot write through to the snapshot.
type Catalog struct {
	medicines  []domain.Medicine
	pharmacies []domain.Pharmacy
}

// New builds a catalog from the given entries, keeping their order.
func New(medicines []domain.Medicine, pharmacies []domain.Pharmacy) *Catalog {
	c := &Catalog{
		medicines:  append([]domain.Medicine(nil), medicines...),
		pharmacies: make([]domain.Pharmacy, len(pharmacies)),
	}
	for i, p := range pharmacies {
		c.pharmacies[i] = p.Clone()
	}
	return c
}

// Default returns the built-in Bangalore dataset.
func Default() *Catalog {
	return New(defaultMedicines, defaultPharmacies)
}

func (c *Catalog) Medicines() []domain.Medicine {
	return append([]domain.Medicine(nil), c.medicines...)
}

func (c *Catalog) Pharmacies() []domain.Pharmacy {
	out := make([]domain.Pharmacy, len(c.pharmacies))
	for i, p := range c.pharmacies {
		out[i] = p.Clone()
	}
	return out
}

// FindMedicine matches name case-insensitively against the catalog. With
// emergencyOnly set, non-emergency medicines never match.
func (c *Catalog) FindMedicine(name string, emergencyOnly bool) (domain.Medicine, bool) {
	query := strings.TrimSpace(name)
	if query == "" {
		return domain.Medicine{}, false
	}
	for _, m := range c.medicines {
		if !strings.EqualFold(m.Name, query) {
			continue
		}
		if emergencyOnly && !m.Emergency {
			continue
		}
		return m, true
	}
	return domain.Medicine{}, false
}

// Pharmacy looks up a pharmacy by name, case-insensitively.
func (c *Catalog) Pharmacy(name string) (domain.Pharmacy, bool) {
	query := strings.TrimSpace(name)
	for _, p := range c.pharmacies {
		if strings.EqualFold(p.Name, query) {
			return p.Clone(), true
		}
	}
	return domain.Pharmacy{}, false
}
