// cmd/dbtools/migrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/CourtMaster/internal/config"
	"github.com/codr1/CourtMaster/internal/db"
)

func main() {
	var (
		configPath = flag.String("config", "config/app.yaml", "Path to the YAML config file")
		dbPath     = flag.String("db", "", "Path to SQLite database (overrides config)")
		command    = flag.String("command", "", "Command to run (up, down, steps, version, force)")
		steps      = flag.Int("n", 0, "Step count for steps, version for force")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	path := *dbPath
	if path == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
		}
		path = cfg.Database.Filename
	}

	m, err := db.OpenMigrator(path)
	if err != nil {
		log.Fatal().Err(err).Str("db", path).Msg("Migration init failed")
	}
	defer m.Close()

	if err := run(m, *command, *steps); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("Migration failed")
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("Version: none")
	case err != nil:
		log.Fatal().Err(err).Msg("Get version failed")
	default:
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
	}
}

func run(m *migrate.Migrate, command string, n int) error {
	var err error
	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if n == 0 {
			return fmt.Errorf("steps requires -n")
		}
		err = m.Steps(n)
	case "force":
		err = m.Force(n)
	case "version":
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
