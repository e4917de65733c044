package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port                int
	StoreBackend        string
	DatabaseURL         string
	FirebaseCredentials string
	FirebaseDatabaseURL string
	UserKeySalt         string
	BaseURL             string
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("tribedates", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "s", "", "Store backend (memory, sqlite, postgres or firebase)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite or postgres backends)")
	fs.StringVar(&cfg.FirebaseCredentials, "firebase-credentials", "", "Service account credentials file (firebase backend)")
	fs.StringVar(&cfg.FirebaseDatabaseURL, "firebase-db", "", "Realtime Database URL (firebase backend)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in vote links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.UserKeySalt, "user-salt", "", "User key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3419 // default
		}
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("STORE_BACKEND")
		if cfg.StoreBackend == "" {
			cfg.StoreBackend = "sqlite"
		}
	}

	switch cfg.StoreBackend {
	case "memory":
	case "sqlite", "postgres":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			if cfg.StoreBackend == "postgres" {
				return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
			}
			cfg.DatabaseURL = "file:tribedates.db"
		}
	case "firebase":
		if cfg.FirebaseCredentials == "" {
			cfg.FirebaseCredentials = os.Getenv("FIREBASE_CREDENTIALS")
		}
		if cfg.FirebaseDatabaseURL == "" {
			cfg.FirebaseDatabaseURL = os.Getenv("FIREBASE_DATABASE_URL")
		}
		if cfg.FirebaseDatabaseURL == "" {
			return Config{}, errors.New("FIREBASE_DATABASE_URL required for the firebase backend")
		}
	default:
		return Config{}, errors.New("store backend must be memory, sqlite, postgres or firebase")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}

	// Secrets - MUST be provided
	if cfg.UserKeySalt == "" {
		cfg.UserKeySalt = os.Getenv("USER_KEY_SALT")
	}
	if cfg.UserKeySalt == "" {
		return Config{}, errors.New("USER_KEY_SALT required")
	}

	return cfg, nil
}
