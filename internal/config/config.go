package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all pipeline settings. Defaults are overridden first by an
// optional YAML file (CONFIG_FILE, default config.yaml), then by
// environment variables.
type Config struct {
	TicketsPath   string `yaml:"tickets_path"`
	GeographyPath string `yaml:"geography_path"`
	OutputPath    string `yaml:"output_path"`

	// Workers caps the transform fan-out; 0 means one worker per CPU.
	Workers int `yaml:"workers"`

	// HTTPAddr enables the health/metrics listener when non-empty.
	HTTPAddr string `yaml:"http_addr"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Kafka    KafkaConfig    `yaml:"kafka"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// KafkaConfig controls the optional dashboard-feed publisher.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// PostgresConfig controls the optional warehouse sink.
type PostgresConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// Load builds the configuration from defaults, the optional YAML file, and
// environment overrides, then validates it.
func Load() (*Config, error) {
	cfg := &Config{
		TicketsPath:   "data/bangkok_traffy.csv",
		GeographyPath: "data/thailand_geography.csv",
		OutputPath:    "data/cleansed/bangkok_traffy_clean.csv",
		LogLevel:      "info",
		LogFormat:     "json",
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "clean-traffy-tickets",
		},
	}

	path := envOrDefault("CONFIG_FILE", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("invalid config file " + path + ": " + err.Error())
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TICKETS_PATH"); v != "" {
		cfg.TicketsPath = v
	}
	if v := os.Getenv("GEOGRAPHY_PATH"); v != "" {
		cfg.GeographyPath = v
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		cfg.Kafka.Enabled = v == "true"
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = parseBrokers(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("POSTGRES_ENABLED"); v != "" {
		cfg.Postgres.Enabled = v == "true"
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}

func validate(cfg *Config) error {
	if cfg.TicketsPath == "" {
		return errors.New("TICKETS_PATH is required")
	}
	if cfg.GeographyPath == "" {
		return errors.New("GEOGRAPHY_PATH is required")
	}
	if cfg.OutputPath == "" {
		return errors.New("OUTPUT_PATH is required")
	}
	if cfg.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 {
			return errors.New("KAFKA_ENABLED is true but no brokers are configured")
		}
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
		}
	}
	if cfg.Postgres.Enabled && cfg.Postgres.DSN == "" {
		return errors.New("POSTGRES_ENABLED is true but POSTGRES_DSN is not set")
	}
	return nil
}

func parseBrokers(v string) []string {
	parts := strings.Split(v, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
