package cmd

import (
	"errors"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pharmanear/m/internal/catalog"
	"pharmanear/m/internal/config"
	"pharmanear/m/internal/database"
	"pharmanear/m/internal/locator"
	"pharmanear/m/internal/logger"
	"pharmanear/m/internal/migrations"
	"pharmanear/m/internal/seed"
	"pharmanear/m/internal/store"
)

type app struct {
	cfg config.Config
	log *logrus.Entry
	db  *sqlx.DB
	svc *locator.Service
}

// newApp loads configuration, prepares the database and builds the locator
// service shared by every subcommand.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("loglevel"); level != "" {
		cfg.LogLevel = level
	}
	log := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := seed.Catalog(db, catalog.Default()); err != nil {
		_ = db.Close()
		return nil, err
	}
	if cfg.MedicineCSV != "" {
		if _, err := seed.LoadMedicines(db, cfg.MedicineCSV, log); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.WithField("path", cfg.MedicineCSV).Debug("no extra medicine catalog")
			} else {
				log.WithError(err).Warn("unable to load medicine catalog")
			}
		}
	}

	svc := locator.NewService(store.New(db), locator.Config{
		DefaultLocation: cfg.DefaultLocation,
		DefaultRadiusKm: cfg.DefaultRadiusKm,
	}, log)
	return &app{cfg: cfg, log: log, db: db, svc: svc}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
