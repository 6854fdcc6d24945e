package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ushigai/LuckyDefense-tools/internal/engine"
	"github.com/ushigai/LuckyDefense-tools/internal/gamedata"
	"github.com/ushigai/LuckyDefense-tools/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to server config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	db, err := gamedata.Load(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}

	pub, err := url.Parse(cfg.PublicURL)
	if err != nil {
		return fmt.Errorf("parse publicUrl: %w", err)
	}

	srv := server.New(log, db, engine.New(cfg.EngineURL), *pub, cfg.DataDir)
	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("engine", cfg.EngineURL))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
