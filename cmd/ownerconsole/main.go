package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ownerconsole/internal/config"
	"ownerconsole/internal/database"
	"ownerconsole/internal/handler"
	"ownerconsole/internal/live"
	"ownerconsole/internal/logger"
	"ownerconsole/internal/orders"
	"ownerconsole/internal/service"
	"ownerconsole/internal/session"
	"ownerconsole/internal/view"
	"ownerconsole/internal/worker"
)

func main() {
	cfg := config.New()

	if _, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: "stderr"}); err != nil {
		slog.Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(context.Background(), db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	// Session
	sessions := session.NewStore(db, "default")
	if err := sessions.Init(context.Background()); err != nil {
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	}

	// Services
	client := service.NewClient(cfg.APIBaseURL, cfg.APITimeout, sessions)
	ctrl := orders.NewController(client)

	pages, err := view.NewRenderer()
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	// Worker
	hub := live.NewHub(cfg.AllowedOrigins)
	countdownWorker := worker.NewCountdownWorker(ctrl, hub)

	r := handler.NewRouter(handler.Deps{
		Auth:           client,
		Sessions:       sessions,
		Orders:         ctrl,
		Owner:          client,
		Admin:          client,
		Pages:          pages,
		Hub:            hub,
		PasscodeHash:   cfg.PasscodeHash,
		CSRFKey:        cfg.CSRFKeyBytes(),
		SecureCookies:  cfg.SecureCookies,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// leaves room for a slow upstream behind a form post
		WriteTimeout: cfg.APITimeout + 10*time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go countdownWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting console", "addr", cfg.RunAddress, "api", cfg.APIBaseURL, "store", database.Driver(cfg.DatabaseURI))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("console stopped")
}
