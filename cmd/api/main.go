package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/yt-scriptsmith/internal/api"
	"github.com/yt-scriptsmith/internal/claude"
	"github.com/yt-scriptsmith/internal/config"
	"github.com/yt-scriptsmith/internal/youtube"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		// Not fatal: requests answer with a configuration error until
		// the keys are provided.
		log.Printf("Warning: %v", err)
	}

	// Initialize the YouTube client
	ytClient, err := youtube.NewClient(context.Background(), cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize YouTube client: %v", err)
	}

	// Initialize the Claude client
	claudeClient := claude.NewClient(cfg.ClaudeAPIKey)

	server := api.NewServer(cfg, ytClient, claudeClient)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.Start(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
