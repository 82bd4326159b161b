// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Rudenko

package store

import (
	"context"
	"fmt"

	"github.com/vrudenko/calendar-keeper/internal/config"
	"github.com/vrudenko/calendar-keeper/internal/logger"
)

// Storages aggregates every repository backed by the shared database
// connection. It is the single storage-layer dependency handed to the
// service layer.
type Storages struct {
	UserRepository  UserRepository
	EventRepository EventRepository
}

// NewStorages connects to the database selected by cfg.DB.Driver, applies
// pending migrations, and returns the repository set.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		EventRepository: NewEventRepository(db, log),
	}, nil
}
