// Package main is the entry point for the taskboard CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/backend/googletasks"
	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// The store lives for the whole process. Its logger follows the default
	// config dir; a broken config is reported later by the command itself.
	level := logging.LevelWarn
	if cfg, err := config.New(""); err == nil {
		level = cfg.LogLevel()
	}
	tasks := store.New(store.WithLogger(logging.NewLogger(os.Stderr, level)))

	// Create exporter factory
	factory := func(ctx context.Context, cfg *config.Config, log *logging.Logger) (service.Exporter, error) {
		return googletasks.New(ctx, cfg, log)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, tasks, factory)
	dispatcher.Stdin = os.Stdin

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
