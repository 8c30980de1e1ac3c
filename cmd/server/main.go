// Package main implements the entry point for the calculator API server,
// which hosts calculator sessions over HTTP and WebSocket.
package main

import (
	"context"
	"log"
	"log/slog"
)

func main() {
	cfg, err := loadAppConfig()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("Failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}
