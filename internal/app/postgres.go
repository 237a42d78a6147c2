package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-kanban/internal/config"
)

func MustConnectPostgres(cfg *config.Config, logger zerolog.Logger) *pgxpool.Pool {
	pgCfg := cfg.Postgres
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pgCfg.Username, pgCfg.Password, pgCfg.Host,
		pgCfg.Port, pgCfg.Database, pgCfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = pgCfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgCfg.PingTimeout)
	defer cancel()

	err = pool.Ping(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	logger.Info().
		Str("host", pgCfg.Host).
		Int("port", pgCfg.Port).
		Msg("connected to postgres")

	return pool
}

func DisconnectPostgres(pool *pgxpool.Pool, logger zerolog.Logger) {
	pool.Close()
	logger.Info().Msg("disconnected from postgres")
}
