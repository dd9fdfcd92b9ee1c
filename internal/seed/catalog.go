package seed

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"pharmanear/m/internal/catalog"
)

// Catalog writes the medicines, pharmacies and stock of c into the
// database. Rows that already exist are left untouched, so re-seeding a
// file-backed database keeps dashboard stock edits.
func Catalog(db *sqlx.DB, c *catalog.Catalog) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("start catalog seed: %w", err)
	}
	defer tx.Rollback()

	for i, m := range c.Medicines() {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO medicines (name, uses, category, side_effects, emergency, position) VALUES (?, ?, ?, ?, ?, ?)`,
			m.Name, m.Uses, m.Category, m.SideEffects, m.Emergency, i); err != nil {
			return fmt.Errorf("insert medicine %s: %w", m.Name, err)
		}
	}

	for _, p := range c.Pharmacies() {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO pharmacies (name, lat, lng, address, is_open, open_time, close_time, rating, phone) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Location.Lat, p.Location.Lng, p.Address, p.IsOpen, p.OpenTime, p.CloseTime, p.Rating, p.Phone); err != nil {
			return fmt.Errorf("insert pharmacy %s: %w", p.Name, err)
		}
		var id int64
		if err := tx.Get(&id, `SELECT id FROM pharmacies WHERE name = ?`, p.Name); err != nil {
			return fmt.Errorf("lookup pharmacy %s: %w", p.Name, err)
		}
		for medicine, qty := range p.Stock {
			if _, err := tx.Exec(`INSERT OR IGNORE INTO stock (pharmacy_id, medicine_name, quantity) VALUES (?, ?, ?)`, id, medicine, qty); err != nil {
				return fmt.Errorf("insert stock %s/%s: %w", p.Name, medicine, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog seed: %w", err)
	}
	return nil
}
