package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Options struct {
	// pgx, postgres or sqlite
	Driver             string
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	SkipMigrations     bool
}

// Open connects, applies the pool settings, pings and runs the migrations.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	if _, err := dialectFor(opts.Driver); err != nil {
		return nil, err
	}

	db, err := sql.Open(opts.Driver, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Apply Pool Settings
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetimeMin > 0 {
		db.SetConnMaxLifetime(time.Duration(opts.ConnMaxLifetimeMin) * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if !opts.SkipMigrations {
		if err := RunMigrations(ctx, db, opts.Driver); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}
