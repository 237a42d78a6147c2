package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-kanban/internal/config"
	v1 "github.com/adanyl0v/go-kanban/internal/delivery/http/v1"
	"github.com/adanyl0v/go-kanban/internal/repository"
	"github.com/adanyl0v/go-kanban/internal/services"
)

func MustListenAndServeHTTP(cfg *config.Config, logger zerolog.Logger, pgPool *pgxpool.Pool) {
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router, cfg, logger, pgPool)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	logger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter, cfg *config.Config, logger zerolog.Logger, pgPool *pgxpool.Pool) {
	repo := repository.NewPostgres(logger, pgPool)

	jwtCfg := cfg.JWT
	authService := services.NewAuthService(
		logger,
		repo,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.AccessTokenTTL,
	)
	boardService := services.NewBoardService(logger, repo)
	handler := v1.New(logger, authService, boardService)

	v1.RegisterRoutes(router, handler)
}
