package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"food-ordering/internal/catalog"
	"food-ordering/internal/config"
	"food-ordering/internal/database"
	"food-ordering/internal/logger"
	"food-ordering/internal/messaging"
	"food-ordering/internal/orderbook"
	"food-ordering/internal/shell"
)

const serviceName = "food-ordering"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	catalogSource := flag.String("catalog", "", "Override app.catalog_source (builtin, postgres)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *catalogSource != "" {
		cfg.App.CatalogSource = *catalogSource
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	level, _ := logger.ParseLevel(cfg.App.LogLevel)
	log := logger.New(serviceName, os.Stderr, level)
	requestID := logger.GenerateRequestID()

	// No signal handling: the shell blocks on stdin reads, so SIGINT keeps
	// its default behaviour and ends the process.
	ctx := context.Background()

	log.Info("service_started", "Starting food ordering shell", requestID, map[string]any{
		"catalog_source":   cfg.App.CatalogSource,
		"rabbitmq_enabled": cfg.RabbitMQ.Enabled,
	})

	if err := run(ctx, cfg, log, requestID); err != nil {
		log.Error("service_failed", "Food ordering shell failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Shell exited", requestID, nil)
}

// loadConfig falls back to defaults when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, requestID string) error {
	cat, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("catalog_loaded", "Catalog ready", requestID, map[string]any{
		"restaurants": cat.Len(),
		"source":      cfg.App.CatalogSource,
	})

	var notifier orderbook.Notifier
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		publisher := messaging.NewPublisher(conn, log)
		defer publisher.Close()

		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)
		notifier = publisher
	}

	book := orderbook.New(notifier, log)
	sh := shell.New(cat, book, os.Stdin, os.Stdout, log, requestID)

	return sh.Run(ctx)
}

func loadCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) (*catalog.Catalog, error) {
	if cfg.App.CatalogSource != config.CatalogPostgres {
		return catalog.Sample(), nil
	}

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	migrations := database.Migrations()
	if cfg.Database.MigrationsPath != "" {
		migrations = os.DirFS(cfg.Database.MigrationsPath)
	}
	if err := db.RunMigrations(ctx, migrations); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cat, err := catalog.LoadPostgres(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}
