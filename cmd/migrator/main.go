package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/pflag"

	"github.com/maxviazov/bookstore-service/internal/config"
	"github.com/maxviazov/bookstore-service/internal/repository"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.yaml", "path to the YAML config file")
	dir := pflag.String("dir", "migrations/goose_sql", "directory with goose SQL migrations")
	command := pflag.String("command", "up", "goose command: up, down or status")
	pflag.Parse()

	if err := run(*configPath, *dir, *command); err != nil {
		log.Printf("migrator: %v", err)
		os.Exit(1)
	}
}

func run(configPath, dir, command string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("storage.driver is %q, nothing to migrate", cfg.Storage.Driver)
	}

	db, err := sql.Open("pgx", repository.DSN(cfg.Postgres))
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
