package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults for every setting; nothing here is sensitive.
const (
	defaultConfigPath  = "config.yaml"
	defaultPort        = "3000"
	defaultStorageRoot = "/opt/logapi_data"
	defaultBodyLimitMB = 1024
)

// AppConfig is the centralized configuration struct for the application.
// Values come from defaults, then an optional YAML file, then environment
// variables; later sources win.
type AppConfig struct {
	// Port is the TCP port the server listens on, on all interfaces.
	Port string
	// StorageRoot is the directory under which all uploaded logs live.
	StorageRoot string
	// BodyLimitMB caps the request body size. Fiber requires some cap;
	// the default is deliberately generous.
	BodyLimitMB int
	// MetricsEnabled controls the Prometheus middleware and /metrics.
	MetricsEnabled bool
}

// fileConfig mirrors AppConfig for the YAML file. Pointer fields separate
// "absent" from zero values.
type fileConfig struct {
	Port           string `yaml:"port"`
	StorageRoot    string `yaml:"storage_root"`
	BodyLimitMB    int    `yaml:"body_limit_mb"`
	MetricsEnabled *bool  `yaml:"metrics_enabled"`
}

// Load reads configuration from the YAML file named by CONFIG_PATH (default
// ./config.yaml, silently skipped when absent) and then from environment
// variables. A .env file can be auto-loaded by importing
// _ "github.com/joho/godotenv/autoload"; real environment variables take
// precedence over it.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:           defaultPort,
		StorageRoot:    defaultStorageRoot,
		BodyLimitMB:    defaultBodyLimitMB,
		MetricsEnabled: true,
	}

	path := getEnv("CONFIG_PATH", defaultConfigPath)
	if b, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if fc.Port != "" {
			cfg.Port = fc.Port
		}
		if fc.StorageRoot != "" {
			cfg.StorageRoot = fc.StorageRoot
		}
		if fc.BodyLimitMB > 0 {
			cfg.BodyLimitMB = fc.BodyLimitMB
		}
		if fc.MetricsEnabled != nil {
			cfg.MetricsEnabled = *fc.MetricsEnabled
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.StorageRoot = getEnv("STORAGE_ROOT", cfg.StorageRoot)
	cfg.BodyLimitMB = getEnvInt("BODY_LIMIT_MB", cfg.BodyLimitMB)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)

	if cfg.BodyLimitMB <= 0 {
		cfg.BodyLimitMB = defaultBodyLimitMB
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
