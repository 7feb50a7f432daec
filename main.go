package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/https-dhanesh/Classifieds-App-Base/agent"
	"github.com/https-dhanesh/Classifieds-App-Base/api"
	"github.com/https-dhanesh/Classifieds-App-Base/config"
	"github.com/https-dhanesh/Classifieds-App-Base/db"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
	"github.com/https-dhanesh/Classifieds-App-Base/vendors"
	"github.com/https-dhanesh/Classifieds-App-Base/workers/report"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Get()

	// Initialize database
	_ = db.GetDB()

	// Set Gin to release mode to disable its default debug logging;
	// requests are logged through zerolog instead
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinLogger())

	// CORS for development
	if cfg.IsDevelopment() {
		r.Use(corsMiddleware())
	}

	r.SetTrustedProxies(nil)

	// Wire the chat bridge: hosted model + search backend behind the
	// orchestrator, substitutable in tests
	orchestrator := agent.NewOrchestrator(
		agent.NewAnthropicModelClient(),
		vendors.GetSearchBackendClient(),
	)
	api.SetupRoutes(r, orchestrator)

	// Start background workers
	reportWorker := report.NewWorker()
	reportWorker.Start()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:     addr,
		Handler:  r,
		ErrorLog: log.StdLogger(zerolog.ErrorLevel),
	}

	go func() {
		log.Info().
			Str("addr", addr).
			Str("env", cfg.Env).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	reportWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("database close error")
	}

	log.Info().Msg("server stopped")
}

// corsMiddleware creates a permissive CORS middleware for development
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
