package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/fintrack/internal/app"
	"github.com/Dan9191/fintrack/internal/config"
	"github.com/Dan9191/fintrack/internal/handler"
	"github.com/Dan9191/fintrack/internal/middleware"
	"github.com/Dan9191/fintrack/internal/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize logger
	logger := app.NewLogger(os.Getenv("LOG_LEVEL"))

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger = app.NewLogger(cfg.LogLevel)

	// Initialize storage and layers
	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close(context.Background())

	if err := a.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to migrate: %v", err)
	}

	// Background jobs
	jobs := scheduler.New(a.Service, a.Service.Locker(), cfg.Scheduler, logger)
	if err := jobs.Register(); err != nil {
		logger.Fatalf("Failed to schedule jobs: %v", err)
	}
	jobs.Start()

	// Setup router
	h := handler.NewHandler(a.Service, cfg, logger)
	auth := middleware.AuthMiddleware(cfg)

	r := mux.NewRouter()
	r.Use(middleware.Logging(logger))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Use(middleware.APIVersion("v1"))
	h.Routes(v1, auth)
	h.Routes(r.PathPrefix("/api").Subrouter(), auth)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"module": "main"}).Errorf("Graceful shutdown failed: %v", err)
	}
	jobs.Stop(shutdownCtx)
}
