package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brainrot-academy/academy-client/internal/app"
	"github.com/brainrot-academy/academy-client/internal/config"
	"github.com/brainrot-academy/academy-client/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "academyctl: %v\n", err)
		if errors.Is(err, app.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("academyctl starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, os.Stderr)
	if err != nil {
		logger.ErrorObj("failed to initialize client", "error", err)
		return err
	}
	defer func() {
		// a cancelled ctx must not stop pending notifications from being hidden
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorObj("shutdown failed", "error", err)
		}
	}()

	return app.Dispatch(ctx, a, app.Streams{In: os.Stdin, Out: os.Stdout}, args)
}
