package api

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yt-scriptsmith/internal/claude"
	"github.com/yt-scriptsmith/internal/config"
	"github.com/yt-scriptsmith/internal/models"
	"github.com/yt-scriptsmith/internal/youtube"
)

// Server represents the API server
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	youtube *youtube.Client
	claude  *claude.Client
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, yt *youtube.Client, cl *claude.Client) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server := &Server{
		router:  router,
		cfg:     cfg,
		youtube: yt,
		claude:  cl,
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.POST("/api/analyze", s.analyzeChannel)
	s.router.POST("/api/channel", s.previewChannel)
}

type analyzeRequest struct {
	ChannelURL string `json:"channelUrl"`
}

// analyzeChannel runs the full pipeline: resolve the channel, fetch its
// top videos, compose the prompt, and generate the script. Stages run
// strictly in order and the first failure ends the request; no partial
// envelope is ever returned.
func (s *Server) analyzeChannel(c *gin.Context) {
	// Credentials are checked before any work so a misconfigured
	// deployment fails before touching either upstream.
	if err := s.cfg.Validate(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ChannelURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channelUrl is required"})
		return
	}

	ctx := c.Request.Context()

	channel, err := s.youtube.ResolveChannel(ctx, req.ChannelURL)
	if err != nil {
		s.writeError(c, err)
		return
	}

	videos, err := s.youtube.TopVideos(ctx, channel.ID, s.cfg.MaxVideos)
	if err != nil {
		s.writeError(c, err)
		return
	}

	prompt := claude.BuildPrompt(channel, videos)

	script, err := s.claude.GenerateScript(ctx, prompt)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Channel:    *channel,
		VideoCount: len(videos),
		Script:     *script,
	})
}

// previewChannel resolves a channel and returns it with its top videos,
// without invoking the model. Only the YouTube credential is required.
func (s *Server) previewChannel(c *gin.Context) {
	if s.cfg.YouTubeAPIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": config.ErrMissingYouTubeKey.Error()})
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ChannelURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channelUrl is required"})
		return
	}

	ctx := c.Request.Context()

	channel, err := s.youtube.ResolveChannel(ctx, req.ChannelURL)
	if err != nil {
		s.writeError(c, err)
		return
	}

	videos, err := s.youtube.TopVideos(ctx, channel.ID, s.cfg.MaxVideos)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ChannelPreview{
		Channel: *channel,
		Videos:  videos,
	})
}

// writeError maps pipeline failures to status codes: 400 for bad input,
// 404 for resolution or aggregation misses, 500 for everything upstream.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, youtube.ErrInvalidURL):
		status = http.StatusBadRequest
	case errors.Is(err, youtube.ErrChannelNotFound), errors.Is(err, youtube.ErrNoVideos):
		status = http.StatusNotFound
	}

	log.Printf("request failed: %v", err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// Start starts the server on the specified port
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}
