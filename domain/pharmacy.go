package domain

import (
	"fmt"
	"math"
)

// Location is a point in floating-point degrees.
type Location struct {
	Lat float64 `db:"lat" json:"lat"`
	Lng float64 `db:"lng" json:"lng"`
}

// Validate rejects non-finite values and coordinates outside the
// latitude/longitude ranges.
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || math.IsInf(l.Lat, 0) || math.IsNaN(l.Lng) || math.IsInf(l.Lng, 0) {
		return fmt.Errorf("coordinates must be finite numbers")
	}
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", l.Lat)
	}
	if l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", l.Lng)
	}
	return nil
}

type Pharmacy struct {
	ID        int64          `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Location  Location       `db:"-" json:"location"`
	Address   string         `db:"address" json:"address"`
	IsOpen    bool           `db:"is_open" json:"is_open"`
	OpenTime  string         `db:"open_time" json:"open_time"`
	CloseTime string         `db:"close_time" json:"close_time"`
	Rating    float64        `db:"rating" json:"rating"`
	Phone     string         `db:"phone" json:"phone"`
	Stock     map[string]int `db:"-" json:"stock"`
}

// Clone returns a copy that shares no stock map with p.
func (p Pharmacy) Clone() Pharmacy {
	out := p
	if p.Stock != nil {
		out.Stock = make(map[string]int, len(p.Stock))
		for name, qty := range p.Stock {
			out.Stock[name] = qty
		}
	}
	return out
}
