package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed limits.yaml
var limitsYAML []byte

type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	Limits   LimitsConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type StorageConfig struct {
	Dir string // Directory for photo blobs (default ./data/images)
}

type LimitsConfig struct {
	MaxImageBytes int64 `yaml:"max_image_bytes"` // decoded photo size cap
	MaxBodyBytes  int64 `yaml:"max_body_bytes"`  // request body cap
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func Load() *Config {
	var limits LimitsConfig
	if err := yaml.Unmarshal(limitsYAML, &limits); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded limits.yaml: " + err.Error())
	}

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "./data/images"
	}

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Storage: StorageConfig{
			Dir: storageDir,
		},
		Limits: limits,
	}
}
