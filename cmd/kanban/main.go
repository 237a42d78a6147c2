package main

import "github.com/adanyl0v/go-kanban/internal/app"

func main() {
	logger := app.NewDefaultLogger()
	cfg := app.MustReadEnv(logger)
	logger = app.MustInitApplicationLogger(cfg, logger)

	pgPool := app.MustConnectPostgres(cfg, logger)
	defer app.DisconnectPostgres(pgPool, logger)

	app.MustListenAndServeHTTP(cfg, logger, pgPool)
}
