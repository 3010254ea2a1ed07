package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwantia/sectorfs"
	"github.com/mwantia/sectorfs/cmd"
	"github.com/mwantia/sectorfs/cmd/builtin"
	"github.com/mwantia/sectorfs/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code, err := run(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "sectorctl: %v\n", err)
	}

	os.Exit(code)
}

func run(ctx context.Context, args []string) (int, error) {
	flags := flag.NewFlagSet("sectorctl", flag.ContinueOnError)
	configPath := flags.String("config", os.Getenv("SECTORFS_CONFIG"), "path to the YAML config file")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0, nil
		}
		return 2, err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return 1, err
		}
		cfg = loaded
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return 1, err
	}

	store, err := cfg.NewBackend(ctx)
	if err != nil {
		return 1, fmt.Errorf("failed to create backend '%s': %w", cfg.Backend.Type, err)
	}

	vfs, err := sectorfs.NewVfs(store, cfg.Options(logger)...)
	if err != nil {
		return 1, err
	}

	if err := vfs.Init(ctx); err != nil {
		return 1, err
	}
	defer vfs.Close(ctx)

	manager := cmd.NewManager(vfs)
	if err := builtin.Register(manager); err != nil {
		return 1, err
	}

	command := flags.Args()
	if len(command) == 0 {
		command = []string{"help"}
	}

	return manager.Execute(ctx, os.Stdout, command...)
}
