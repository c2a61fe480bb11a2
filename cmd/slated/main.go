package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/daemon"
	"slate/internal/ipc"
	"slate/internal/ledger"
	"slate/internal/logging"
	"slate/internal/roles"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := catalog.Open(cfg, logger)
	if err != nil {
		logger.Error("open catalog", logging.Error(err))
		os.Exit(1)
	}

	policy, err := roles.NewPolicy(cfg)
	if err != nil {
		logger.Error("build role policy", logging.Error(err))
		os.Exit(1)
	}

	led, err := ledger.Open(cfg, logger)
	if err != nil {
		logger.Error("open publish ledger", logging.Error(err))
		os.Exit(1)
	}

	d, err := daemon.New(cfg, store, policy, led, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		os.Exit(1)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, buildSocketPath(cfg), d, logger)
	if err != nil {
		logger.Error("start ipc server", logging.Error(err))
		os.Exit(1)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Error("start daemon", logging.Error(err))
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("slated shutting down")
}

func buildSocketPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "slate.sock")
}
