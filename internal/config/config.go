package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Content store settings. Token, RepoOwner and RepoName are the required
	// deployment secrets; requests are rejected as misconfigured without them.
	Token      string
	RepoOwner  string
	RepoName   string
	Branch     string
	OrdersPath string
	APIBaseURL string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		Token:           os.Getenv("GITHUB_TOKEN"),
		RepoOwner:       os.Getenv("REPO_OWNER"),
		RepoName:        os.Getenv("REPO_NAME"),
		Branch:          envOrDefault("REPO_BRANCH", "main"),
		OrdersPath:      envOrDefault("ORDERS_PATH", "data/orders.json"),
		APIBaseURL:      envOrDefault("GITHUB_API_URL", "https://api.github.com"),
	}
}

// StoreConfigured reports whether the deployment secrets required to reach
// the content store are all present.
func (c Config) StoreConfigured() bool {
	return c.Token != "" && c.RepoOwner != "" && c.RepoName != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
