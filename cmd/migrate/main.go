package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/taskman-io/taskman/internal/config"
	"github.com/taskman-io/taskman/internal/migrate"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	runner, err := migrate.New(cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		slog.Error("failed to configure migration runner", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	switch *command {
	case "up":
		err = runner.Up(ctx)
	case "status":
		err = runner.Status(ctx)
	case "down":
		err = runner.Down(ctx)
	default:
		slog.Error("unknown command", "command", *command)
		os.Exit(1)
	}

	if err != nil {
		slog.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}
}
