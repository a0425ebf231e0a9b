package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/maskpaint/inpaint-api/internal/config"
	"github.com/maskpaint/inpaint-api/internal/handler"
	"github.com/maskpaint/inpaint-api/internal/inference"
	"github.com/maskpaint/inpaint-api/internal/logging"
	"github.com/maskpaint/inpaint-api/internal/service"
	"github.com/rs/zerolog"

	_ "github.com/maskpaint/inpaint-api/docs"
)

// @title       inpaint-api
// @version     1.0
// @description Proxy that forwards masked images to a hosted inpainting model.
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "json")
		bootLogger.Fatal().Err(err).Msg("config error")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	runner, err := inference.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("inference runner error")
	}

	inpaintService := service.NewInpaintService(logger, runner, cfg)
	h := handler.NewInpaintHandler(inpaintService, cfg.Server.MaxBodyBytes)

	r := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Logger:         logger,
	}, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Server.Port).
			Str("provider", cfg.Provider).
			Str("model", cfg.Model()).
			Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen error")
		}
	}()

	<-ctx.Done()
	shutdown(srv, cfg.Server, logger)
}

func shutdown(srv *http.Server, cfg config.ServerConfig, logger zerolog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("server stopped")
}
