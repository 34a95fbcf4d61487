// Package config loads server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
// Environment overrides are applied either way.
func LoadConfig(path string, logger *logrus.Logger) (*AppConfig, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warnf("Configuration file %s not found, using defaults", path)
		applyEnvironmentOverrides(config)
		if err := validateConfig(config); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvironmentOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig checks if the configuration is valid
func validateConfig(config *AppConfig) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if config.HTTP.Enabled && config.HTTP.Port <= 0 {
		return fmt.Errorf("http port must be positive when the gateway is enabled")
	}

	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the
// configuration
func applyEnvironmentOverrides(config *AppConfig) {
	if name := os.Getenv("MCP_SERVER_NAME"); name != "" {
		config.Server.Name = name
	}

	if url := os.Getenv("FINERACT_BASE_URL"); url != "" {
		config.Fineract.BaseURL = url
	}
	if token := os.Getenv("FINERACT_BASIC_TOKEN"); token != "" {
		config.Fineract.BasicToken = token
	}
	if tenant := os.Getenv("FINERACT_TENANT_ID"); tenant != "" {
		config.Fineract.TenantID = tenant
	}
	if timeout := os.Getenv("FINERACT_TIMEOUT_SEC"); timeout != "" {
		if v, err := strconv.Atoi(timeout); err != nil {
			logrus.Warnf("Invalid FINERACT_TIMEOUT_SEC: %s", timeout)
		} else {
			config.Fineract.TimeoutSec = v
		}
	}

	if enabled := os.Getenv("HTTP_ENABLED"); enabled != "" {
		config.HTTP.Enabled = enabled == "true" || enabled == "1"
	}
	if portStr := os.Getenv("HTTP_PORT"); portStr != "" {
		if v, err := strconv.Atoi(portStr); err != nil {
			logrus.Warnf("Invalid HTTP_PORT: %s", portStr)
		} else {
			config.HTTP.Port = v
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// NewLogger builds a logrus logger from the logging configuration.
func NewLogger(cfg LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
