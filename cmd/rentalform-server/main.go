package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	rentalform "github.com/ezhumalaisanjay/go-rentalform"
	"github.com/ezhumalaisanjay/go-rentalform/internal/config"
	"github.com/ezhumalaisanjay/go-rentalform/internal/logger"
	"github.com/ezhumalaisanjay/go-rentalform/internal/server"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zlog.Sync()

	srv := server.New(
		storage.NewMemory(),
		rentalform.DefaultRegistry(),
		server.WithFiles(storage.NewMemoryFiles()),
		server.WithLetterhead(cfg.Letterhead),
		server.WithFormat(cfg.Server.DefaultFormat),
		server.WithMaxUpload(cfg.Server.MaxUploadMB<<20),
		server.WithLogger(zlog),
	)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	case sig := <-stop:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			zlog.Error("shutdown", zap.Error(err))
		}
	}
}
