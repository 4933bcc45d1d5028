package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"boardseq/internal/api/v1"
	"boardseq/internal/config"
	"boardseq/internal/sequencer"
	"boardseq/internal/store"
)

// Server HTTP server
type Server struct {
	router *gin.Engine
	store  *store.Store
	http   *http.Server
}

// NewServer wires the sequencer, store and API handlers from cfg.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	opts, err := cfg.Sequencing.Options()
	if err != nil {
		return nil, fmt.Errorf("sequencing config: %w", err)
	}
	seq, err := sequencer.New(opts)
	if err != nil {
		return nil, err
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = config.ResolveDataDir(cfg)
		log.Printf("create data dir %s: %v", dataDir, err)
	}

	st, err := store.New(filepath.Join(dataDir, "boardseq.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	handler := v1.NewHandler(seq, st, v1.Options{
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		ExportDir:      config.ExportDir(dataDir),
	})

	s := &Server{
		router: gin.Default(),
		store:  st,
	}
	s.setupRoutes(handler, cfg.Server)
	return s, nil
}

// setupRoutes middleware and API routes
func (s *Server) setupRoutes(handler *v1.Handler, cfg config.ServerConfig) {
	s.router.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	api.Use(RateLimit(cfg.RatePerSecond, cfg.RateBurst))
	{
		handler.RegisterRoutes(api)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Handler the underlying http.Handler (used by tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until Shutdown is called.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if cerr := s.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
