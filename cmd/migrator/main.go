package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/boekwinkel/order_service/internal/config"
	"github.com/boekwinkel/order_service/pkg/databases/postgres"
)

// The migrator reuses the service config for the database location, so the
// only knob of its own is where the migration files live.
func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "migrations-path", "", "path to migration files")

	cfg := config.InitConfig()

	if migrationsPath == "" {
		migrationsPath = os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "migrations"
		}
	}

	pgCfg := postgres.Config{
		Host:    cfg.Postgres.Host,
		Port:    cfg.Postgres.Port,
		User:    cfg.Postgres.User,
		Pwd:     cfg.Postgres.Pwd,
		DbName:  cfg.Postgres.DbName,
		SslMode: cfg.Postgres.SslMode,
	}

	m, err := migrate.New("file://"+migrationsPath, pgCfg.URL())
	if err != nil {
		panic(fmt.Sprintf("failed to create migrator: %v", err))
	}

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("schema already up to date")
			return
		}
		panic(fmt.Sprintf("failed to apply migrations: %v", err))
	}

	fmt.Println("migrations applied")
}
