package database

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type PoolParams struct {
	DBUrl          string
	TracingEnabled bool
	MaxConns       int32
	MinConns       int32
}

// NewPool parses the connection string, applies the pool bounds and pings once.
func NewPool(ctx context.Context, params PoolParams) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(params.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	if params.MaxConns > 0 {
		config.MaxConns = params.MaxConns
	}
	if params.MinConns > 0 {
		config.MinConns = params.MinConns
	}
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	if params.TracingEnabled {
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.WithFields(log.Fields{
		"max_conns": config.MaxConns,
		"min_conns": config.MinConns,
		"tracing":   params.TracingEnabled,
	}).Info("connected to postgres")
	return pool, nil
}

// NewPoolCollector exposes pool statistics to prometheus.
func NewPoolCollector(pool *pgxpool.Pool, dbName string) prometheus.Collector {
	return pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": dbName})
}
