package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Run creates the catalog, stock, order and notification tables.
func Run(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS medicines (
            name TEXT PRIMARY KEY COLLATE NOCASE,
            uses TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            side_effects TEXT NOT NULL DEFAULT '',
            emergency INTEGER NOT NULL DEFAULT 0,
            position INTEGER NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS pharmacies (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL UNIQUE COLLATE NOCASE,
            lat REAL NOT NULL,
            lng REAL NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            is_open INTEGER NOT NULL DEFAULT 0,
            open_time TEXT NOT NULL DEFAULT '',
            close_time TEXT NOT NULL DEFAULT '',
            rating REAL NOT NULL DEFAULT 0,
            phone TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS stock (
            pharmacy_id INTEGER NOT NULL,
            medicine_name TEXT NOT NULL,
            quantity INTEGER NOT NULL CHECK (quantity >= 0),
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (pharmacy_id, medicine_name),
            FOREIGN KEY(pharmacy_id) REFERENCES pharmacies(id)
        );`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            pharmacy_name TEXT NOT NULL,
            pharmacy_phone TEXT NOT NULL DEFAULT '',
            medicine_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            customer_name TEXT NOT NULL,
            customer_phone TEXT NOT NULL,
            customer_address TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS notify_requests (
            id TEXT PRIMARY KEY,
            medicine_name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
