package config

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// RunMigrations applies pending schema migrations at startup.
func RunMigrations(config *koanf.Koanf, log *zap.Logger) {
	migrationsPath := config.String("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "file://db/migrations"
	}

	m, err := migrate.New(migrationsPath, config.String("POSTGRES_URL"))
	if err != nil {
		log.Fatal("failed to init migrations", zap.Error(err))
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("failed to apply migrations", zap.Error(err))
	}

	version, dirty, _ := m.Version()
	log.Info("database schema is up to date",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
}
