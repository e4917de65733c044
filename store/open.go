// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/tribedates/cliparse"
)

// Open builds the Store selected by cfg.StoreBackend. SQL drivers are
// registered by the importing binary (main blank-imports sqlite and pq).
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return NewMemory(), nil

	case "sqlite", "postgres":
		driver := cfg.StoreBackend
		dbConn, err := sql.Open(driver, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := dbConn.PingContext(ctx); err != nil {
			dbConn.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		if driver == "sqlite" {
			// One writer at a time keeps in-memory databases coherent
			// and sidesteps SQLITE_BUSY under concurrent handlers.
			dbConn.SetMaxOpenConns(1)
		}
		st, err := NewSQL(dbConn)
		if err != nil {
			dbConn.Close()
			return nil, err
		}
		return st, nil

	case "firebase":
		return NewFirebase(ctx, cfg.FirebaseCredentials, cfg.FirebaseDatabaseURL)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
