package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/calvinwijaya/go-fish-be/internal/db"
	"github.com/calvinwijaya/go-fish-be/internal/session"
)

// DriverMemory keeps games in a plain map instead of a SQL database
const DriverMemory = "memory"

type Config struct {
	Port          string
	Driver        string
	DSN           string
	FrontendURL   string
	ComputerDelay time.Duration
}

// env returns the value of key, or def when it is unset
func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// Load parses server flags. Environment variables provide the defaults so
// a flag always wins.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	delayDefault := session.DefaultComputerDelay
	if v, ok := os.LookupEnv("GOFISH_COMPUTER_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GOFISH_COMPUTER_DELAY: %w", err)
		}
		delayDefault = d
	}

	cfg := &Config{}
	fs.StringVar(&cfg.Port, "port", env("GOFISH_PORT", "8080"), "Server port")
	fs.StringVar(&cfg.Driver, "driver", env("GOFISH_DB_DRIVER", DriverMemory), "Game storage: memory, sqlite3 or postgres")
	fs.StringVar(&cfg.DSN, "dsn", env("GOFISH_DB_DSN", ""), "Database DSN (sqlite3 defaults to in-memory)")
	fs.StringVar(&cfg.FrontendURL, "frontend", env("GOFISH_FRONTEND", "http://localhost:5173"), "Frontend URL for CORS")
	fs.DurationVar(&cfg.ComputerDelay, "computer-delay", delayDefault, "Pause before the computer replies")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case DriverMemory, db.DriverSQLite, db.DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if cfg.Driver == db.DriverPostgres && cfg.DSN == "" {
		return nil, fmt.Errorf("driver %s requires -dsn", cfg.Driver)
	}
	if cfg.ComputerDelay < 0 {
		return nil, fmt.Errorf("computer delay must not be negative, got %s", cfg.ComputerDelay)
	}

	return cfg, nil
}
