package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"mdtoc/internal/config"
	"mdtoc/internal/logging"
	"mdtoc/internal/prompt"
)

// Interactive entry point: `go run .` asks for the file and options and
// updates it in place. The full CLI lives in cmd/mdtoc.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ failed to load config: %v\n", err)
		stop()
		os.Exit(1)
	}

	if _, err := prompt.Run(ctx, cfg, os.Stdin, os.Stdout, logging.New(os.Stderr, false), nil); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}
