package main

import (
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/fidc/receivables-core/internal/config"
	"github.com/fidc/receivables-core/pkg/logger"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	l := logger.NewZapLogger()
	l.Info("Starting Receivables Core migrations ...")

	cfg, err := config.InitConfig()
	if err != nil {
		l.Error("failed to load config: " + err.Error())
		panic(err)
	}

	db, err := gorm.Open(gormpostgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	if err != nil {
		l.Error("failed to connect to database: " + err.Error())
		panic(err)
	}

	err = runMigrations(db, "./migrations")
	if err != nil {
		l.Error("failed to run migrations: " + err.Error())
		return
	}
}

func runMigrations(db *gorm.DB, migrationsPath string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	// Convert to absolute path and ensure proper formatting
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return err
	}

	sourceURL := "file://" + absPath

	m, err := migrate.NewWithDatabaseInstance(
		sourceURL,
		"postgres", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
