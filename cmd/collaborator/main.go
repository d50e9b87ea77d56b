package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sahanarao-sps/sps-team30-project/internal/collaborator"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", ":9090", "listen address")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logging.InitLogger(*logLevel, "text")

	srv := &http.Server{
		Addr:              *addr,
		Handler:           collaborator.NewHandler(collaborator.NewVaderScorer()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Collaborator shutdown error", "error", err)
		}
	}()

	slog.Info("Collaborator listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Collaborator error", "error", err)
		os.Exit(1)
	}
}
