package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"food-ordering/internal/logger"
)

const (
	CatalogBuiltin  = "builtin"
	CatalogPostgres = "postgres"
)

// Config holds all configuration for the food ordering app
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

type AppConfig struct {
	LogLevel      string `yaml:"log_level"`
	CatalogSource string `yaml:"catalog_source"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	MigrationsPath string `yaml:"migrations_path"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Default returns a config that needs no external services.
func Default() *Config {
	return &Config{
		App: AppConfig{
			LogLevel:      "info",
			CatalogSource: CatalogBuiltin,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "restaurant_user",
			Password: "restaurant_pass",
			Database: "restaurant_db",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
	}
}

// Load reads configuration from a YAML file on top of Default.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, ok := logger.ParseLevel(c.App.LogLevel); !ok {
		return fmt.Errorf("invalid app.log_level: %q", c.App.LogLevel)
	}
	switch c.App.CatalogSource {
	case CatalogBuiltin, CatalogPostgres:
	default:
		return fmt.Errorf("invalid app.catalog_source: %q", c.App.CatalogSource)
	}
	if c.App.CatalogSource == CatalogPostgres && c.Database.Host == "" {
		return fmt.Errorf("database.host is required for postgres catalog")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq.host is required when rabbitmq is enabled")
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
