// Command devtool bundles operator tasks for a TheDigger deployment: store
// setup and migrations, leaderboard seeding, token minting and smoke checks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := defaultRegistry()
	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args[2:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		os.Exit(1)
	}
}
