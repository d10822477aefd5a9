package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"orghub_backend/internal/reconciler"
	"orghub_backend/platform/config"
	"orghub_backend/platform/db"
	"orghub_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting reconciler", "env", cfg.Env, "interval", cfg.GetReconcileInterval())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	dispatcher, err := reconciler.NewDispatcher(cfg, log)
	if err != nil {
		log.Error("failed to initialize dispatcher", "error", err)
		panic("failed to initialize dispatcher: " + err.Error())
	}
	defer dispatcher.Close()

	worker, err := reconciler.NewWorker(cfg, pool, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	go dispatcher.Run(ctx)
	worker.Run(ctx)

	log.Info("reconciler stopped")
}
