package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the settings that do not belong in the store configuration,
// currently just email delivery.
type Config struct {
	Email struct {
		Enabled bool   `yaml:"enabled"`
		Region  string `yaml:"region"`
		Sender  string `yaml:"sender"`
	} `yaml:"email"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// defaultConfig falls back to environment variables when no config file exists
func defaultConfig() *Config {
	var config Config
	config.Email.Enabled = getEnv("EMAIL_ENABLED", "false") == "true"
	config.Email.Region = getEnv("SES_REGION", getEnv("AWS_REGION", "us-east-1"))
	config.Email.Sender = getEnv("SES_SENDER", "")
	return &config
}
