package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// LoadMedicines ingests extra catalog entries from a CSV with the header
// name,uses,category,side_effects,emergency, ignoring duplicates. It
// returns the number of rows inserted.
func LoadMedicines(db *sqlx.DB, csvPath string, log logrus.FieldLogger) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open medicine catalog %s: %w", csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("read medicine header: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("start medicine transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO medicines (name, uses, category, side_effects, emergency, position)
                VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM medicines))`)
	if err != nil {
		return 0, fmt.Errorf("prepare medicine insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("unable to read medicine row")
			continue
		}
		if len(record) < 5 {
			log.WithField("line", line).Warn("skipping short medicine row")
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		emergency, err := strconv.ParseBool(strings.TrimSpace(record[4]))
		if err != nil {
			log.WithField("line", line).Warnf("invalid emergency flag %q", record[4])
			continue
		}

		res, err := stmt.Exec(name, strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), strings.TrimSpace(record[3]), emergency)
		if err != nil {
			log.WithError(err).WithField("medicine", name).Warn("unable to insert medicine")
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit medicine seed: %w", err)
	}
	log.WithField("rows", rows).Info("seeded medicine catalog")
	return rows, nil
}
