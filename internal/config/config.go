package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backend selectors, read once at startup.
const (
	BackendSQL = "sql"
	BackendORM = "orm"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	APITimeout   time.Duration `yaml:"timeout"`
	DatabasePath string        `yaml:"database_path"`
	LogLevel     string        `yaml:"log_level"`
	Storage      StorageConfig `yaml:"storage"`
	Queue        QueueConfig   `yaml:"queue"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
}

type QueueConfig struct {
	Enabled     bool `yaml:"enabled"`
	Workers     int  `yaml:"workers"`
	MaxAttempts int  `yaml:"max_attempts"`
}

// LoadConfig builds the configuration from defaults, environment variables
// and an optional YAML file, in that order. A .env file in the working
// directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:         getEnv("EMP_ADDR", ":8080"),
		APITimeout:   15 * time.Second,
		DatabasePath: getEnv("EMP_DATABASE_PATH", "employees.db"),
		LogLevel:     getEnv("EMP_LOG_LEVEL", "info"),
		Storage: StorageConfig{
			Backend: getEnv("EMP_STORAGE_BACKEND", BackendSQL),
		},
		Queue: QueueConfig{
			Enabled:     getEnv("EMP_QUEUE_ENABLED", "true") == "true",
			Workers:     getEnvInt("EMP_QUEUE_WORKERS", 2),
			MaxAttempts: getEnvInt("EMP_QUEUE_MAX_ATTEMPTS", 5),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Storage.Backend != BackendSQL && cfg.Storage.Backend != BackendORM {
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", cfg.Storage.Backend, BackendSQL, BackendORM)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}
