package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// DefaultMaxVideos is how many top videos feed the prompt when
// MAX_VIDEOS is not set.
const DefaultMaxVideos = 10

var (
	ErrMissingYouTubeKey = errors.New("YouTube API key is not configured")
	ErrMissingClaudeKey  = errors.New("Claude API key is not configured")
)

// Config holds the application configuration
type Config struct {
	YouTubeAPIKey string
	ClaudeAPIKey  string
	MaxVideos     int
	Port          string
}

// Load loads the configuration from environment variables. Missing API
// keys are not an error here: the server still starts and reports them
// per request through Validate, so a misconfigured deployment answers
// with a JSON error instead of crash-looping.
func Load() (*Config, error) {
	cfg := &Config{
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		ClaudeAPIKey:  os.Getenv("CLAUDE_API_KEY"),
		MaxVideos:     DefaultMaxVideos,
		Port:          os.Getenv("PORT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if raw := os.Getenv("MAX_VIDEOS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_VIDEOS must be a positive integer, got %q", raw)
		}
		cfg.MaxVideos = n
	}

	return cfg, nil
}

// Validate checks that both required credentials are present.
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return ErrMissingYouTubeKey
	}
	if c.ClaudeAPIKey == "" {
		return ErrMissingClaudeKey
	}
	return nil
}
