package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/cesargomez89/episodarr/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port       string
	DataDir    string
	LogLevel   string
	LogFormat  string
	Mattermost Mattermost
}

// Mattermost holds the chat webhook notifier settings
type Mattermost struct {
	Enabled                bool
	WebhookURL             string
	BaseURL                string
	Username               string
	NotifySnatch           bool
	NotifyDownload         bool
	NotifySubtitleDownload bool
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", constants.DefaultPort),
		DataDir:   getEnv("DATA_DIR", constants.DefaultDataDir),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Mattermost: Mattermost{
			Enabled:                getEnvBool("USE_MATTERMOST", false),
			WebhookURL:             getEnv("MATTERMOST_WEBHOOK", ""),
			BaseURL:                getEnv("MATTERMOST_WEBHOOK_BASE", ""),
			Username:               getEnv("MATTERMOST_USERNAME", constants.DefaultBotName),
			NotifySnatch:           getEnvBool("MATTERMOST_NOTIFY_SNATCH", false),
			NotifyDownload:         getEnvBool("MATTERMOST_NOTIFY_DOWNLOAD", false),
			NotifySubtitleDownload: getEnvBool("MATTERMOST_NOTIFY_SUBTITLEDOWNLOAD", false),
		},
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DataDir == "" {
		errors = append(errors, "DATA_DIR cannot be empty")
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	// The webhook is only required once the notifier is switched on
	if c.Mattermost.Enabled {
		if c.Mattermost.WebhookURL == "" && c.Mattermost.BaseURL == "" {
			errors = append(errors, "MATTERMOST_WEBHOOK cannot be empty when USE_MATTERMOST is set")
		}
	}
	if c.Mattermost.WebhookURL != "" {
		if _, err := url.Parse(c.Mattermost.WebhookURL); err != nil {
			errors = append(errors, fmt.Sprintf("MATTERMOST_WEBHOOK is not a valid URL: %s", c.Mattermost.WebhookURL))
		}
	}
	if c.Mattermost.Username == "" {
		errors = append(errors, "MATTERMOST_USERNAME cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvBool parses a boolean environment variable, accepting 1/0 as well as true/false
func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}
