package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"wordraffle/internal/config"
	"wordraffle/internal/handlers"
	"wordraffle/internal/pages"
	"wordraffle/internal/random"
	"wordraffle/internal/services"
	"wordraffle/web"
)

func main() {
	// 1. Load configuration and set up logging
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	defer logger.Init("wordraffle", cfg.Verbose, false, io.Discard).Close()
	gin.SetMode(cfg.GinMode)

	// 2. Load the static page table
	table, err := pages.Default()
	if err != nil {
		logger.Fatalf("Failed to load page table: %v", err)
	}

	// 3. Initialize the random source and the Raffle Service
	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			logger.Fatalf("Failed to seed random source: %v", err)
		}
	} else {
		logger.Warningf("Using fixed random seed %d", seed)
	}
	raffleService := services.NewRaffleService(services.NewRaffleEngine(random.New(seed), table))

	// 4. Load HTML templates from the embedded filesystem.
	templates, err := web.ParseTemplates()
	if err != nil {
		logger.Fatalf("Failed to parse templates: %v", err)
	}

	// 5. Initialize the HTTP Handler
	httpHandler := handlers.NewHTTPHandler(raffleService, templates)

	// 6. Set up the Gin router
	r := gin.Default()

	// 7. Serve static files from the embedded filesystem.
	assets, err := web.Assets()
	if err != nil {
		logger.Fatalf("Failed to create assets sub-filesystem: %v", err)
	}
	r.StaticFS("/assets", http.FS(assets))

	// 8. Register public routes (before middleware)
	var apiMiddleware []gin.HandlerFunc
	if len(cfg.AllowedOrigins) > 0 {
		apiMiddleware = append(apiMiddleware, cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       12 * time.Hour,
		}))
	}
	httpHandler.RegisterPublicRoutes(r, apiMiddleware...)

	// 9. Group routes that require a form session and apply middleware
	sessionRoutes := r.Group("/")
	sessionRoutes.Use(httpHandler.SessionMiddleware())
	httpHandler.RegisterSessionRoutes(sessionRoutes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 10. Start the background janitor to clean up inactive sessions
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := raffleService.CleanUpInactiveSessions(cfg.SessionTTL)
				logger.Infof("Performed cleanup of inactive sessions, removed %d.", removed)
			}
		}
	}()

	// 11. Run the server
	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		logger.Infof("Server starting on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
