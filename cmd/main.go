package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"co2watch/internal/handlers"
	"co2watch/internal/logger"
	"co2watch/internal/notify"
	"co2watch/internal/repository"
	"co2watch/internal/repository/db"
	"co2watch/internal/sensor"
	"co2watch/internal/server"
	"co2watch/internal/service"

	"github.com/spf13/viper"
)

const defaultWatcherTick = 15 * time.Minute

func main() {
	log := logger.Get(logger.InfoLevel)

	// configs/config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(sqlDB)
	fetcher := sensor.NewMeshClient(
		viper.GetString("sensor.url"),
		viper.GetDuration("sensor.timeout"),
		log,
	)
	notifier := notify.NewWhatsAppClient(
		viper.GetString("notifier.url"),
		viper.GetString("notifier.api_key"),
		viper.GetDuration("notifier.timeout"),
		log,
	)
	services := service.NewService(service.Deps{
		Repos:      repos,
		Fetcher:    fetcher,
		Notifier:   notifier,
		SigningKey: viper.GetString("auth.signing_key"),
		Log:        log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context shared by background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// periodic checks are opt-in; manual POST /api/v1/checks always works
	if viper.GetBool("watcher.enabled") {
		tick := viper.GetDuration("watcher.interval")
		if tick <= 0 {
			tick = defaultWatcherTick
		}
		go services.Watcher.Run(ctx, tick)
	}

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "co2watch.db")
		dbPath = "co2watch.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
