package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openenergydashboard/oed-server/internal/config"
	"github.com/openenergydashboard/oed-server/internal/database"
	"github.com/openenergydashboard/oed-server/internal/handler"
	"github.com/openenergydashboard/oed-server/internal/logger"
	"github.com/openenergydashboard/oed-server/internal/middleware"
	"github.com/openenergydashboard/oed-server/internal/repository"
	"github.com/openenergydashboard/oed-server/internal/router"
	"github.com/openenergydashboard/oed-server/internal/server"
	"github.com/openenergydashboard/oed-server/internal/service"
)

const (
	shutdownTimeout = 30 * time.Second
	migrateTimeout  = time.Minute
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
		err := database.Migrate(ctx, &log, database.DSN(cfg.Database))
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)
	r := router.NewRouter(srv, handlers, middlewares)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-serveErr:
		log.Error().Err(err).Msg("server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
