package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/beadreader/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "BEADREADER_DB_DSN"

var databaseEnv = &database.Env{
	Host:     "BEADREADER_DB_HOST",
	Port:     "BEADREADER_DB_PORT",
	Name:     "BEADREADER_DB_NAME",
	User:     "BEADREADER_DB_USER",
	Password: "BEADREADER_DB_PASSWORD",
	SSLMode:  "BEADREADER_DB_SSL_MODE",
}

func main() {
	var (
		dsn     = flag.String("dsn", "", "Database connection URL (default: $BEADREADER_DB_DSN or BEADREADER_DB_* settings)")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	url, err := resolveDSN(*dsn)
	if err != nil {
		log.Fatalf("resolve database url: %v", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		log.Fatalf("failed to create migration source: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("failed to force version: %v", err)
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		check(m.Up(), "up")
		fmt.Println("migrations applied successfully")
	case *down:
		check(m.Down(), "down")
		fmt.Println("migrations reverted successfully")
	case *steps != 0:
		check(m.Steps(*steps), "step")
		fmt.Printf("applied %d migration steps\n", *steps)
	default:
		fmt.Println("usage: migrate [-dsn <url>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}

// resolveDSN prefers the flag, then BEADREADER_DB_DSN, then a URL assembled
// from the same BEADREADER_DB_* variables the server reads.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	cfg := &database.Config{Password: "beadreader"}
	if err := cfg.Finalize(databaseEnv); err != nil {
		return "", err
	}
	return cfg.URL(), nil
}

func check(err error, direction string) {
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("failed to run %s migrations: %v", direction, err)
	}
}
