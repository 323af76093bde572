// Package database owns the PostgreSQL pool and ties its open/close to the
// process lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pulse-works/pulse/pkg/lifecycle"
)

// System exposes the connection pool and hooks it into the lifecycle.
type System interface {
	// Connection returns the shared connection pool.
	Connection() *sql.DB
	// Start registers the startup ping and shutdown close.
	Start(lc *lifecycle.Coordinator) error
}

type pool struct {
	db          *sql.DB
	logger      *slog.Logger
	pingTimeout time.Duration
}

// New opens the pool from cfg. sql.Open validates the DSN and sets pool
// limits; no connection is made until the startup ping.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &pool{
		db:          db,
		logger:      logger.With("system", "database"),
		pingTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (p *pool) Connection() *sql.DB {
	return p.db
}

func (p *pool) Start(lc *lifecycle.Coordinator) error {
	p.logger.Info("starting database pool")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), p.pingTimeout)
		defer cancel()

		if err := p.db.PingContext(ctx); err != nil {
			p.logger.Error("database ping failed", "error", err)
			return
		}

		p.logger.Info("database reachable")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := p.db.Close(); err != nil {
			p.logger.Error("database close failed", "error", err)
			return
		}

		p.logger.Info("database pool closed")
	})

	return nil
}
