package main

import (
	"fmt"
	"os"

	"github.com/tony816/dailyslot/internal/cli"
	"github.com/tony816/dailyslot/internal/config"
	"github.com/tony816/dailyslot/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	app := cli.NewApp(st, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
