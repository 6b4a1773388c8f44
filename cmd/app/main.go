package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/weather-widget/internal/api"
	"github.com/alexivanou/weather-widget/internal/config"
	"github.com/alexivanou/weather-widget/internal/geocoding"
	"github.com/alexivanou/weather-widget/internal/service"
	"github.com/alexivanou/weather-widget/internal/stats"
	"github.com/alexivanou/weather-widget/internal/theme"
	"github.com/alexivanou/weather-widget/internal/weather"
	"github.com/alexivanou/weather-widget/internal/widget"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Provider.HasAPIKey() {
		logger.Warn("WEATHER_API_KEY is not set; suggestions will be empty and weather lookups will fail")
	}

	table := theme.Default()
	if cfg.Widget.ThemeFile != "" {
		table, err = theme.Load(cfg.Widget.ThemeFile)
		if err != nil {
			logger.Fatal("Failed to load theme", zap.String("path", cfg.Widget.ThemeFile), zap.Error(err))
		}
		logger.Info("Loaded theme", zap.String("path", cfg.Widget.ThemeFile))
	}

	statsCollector := stats.NewCollector()
	geocoder := geocoding.NewClient(cfg.Provider, geocoding.WithLogger(logger.Named("geocoding")))
	fetcher := weather.NewClient(cfg.Provider, weather.WithLogger(logger.Named("weather")))
	svc := service.NewService(geocoder, fetcher, statsCollector)

	sessions := api.NewSessionStore(svc, widget.Options{
		DefaultLocation: cfg.Widget.DefaultLocation,
		DebounceDelay:   cfg.Widget.DebounceDelay,
		MinChars:        cfg.Provider.MinChars,
		Theme:           table,
		Logger:          logger.Named("widget"),
	}, cfg.Server.SessionIdleTimeout, statsCollector, logger)
	router := api.NewRouter(svc, sessions, statsCollector, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	sessions.CloseAll()

	logger.Info("Server exited")
}
