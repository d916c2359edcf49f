// Package main implements the entry point for the taskboard API server,
// a multi-user task tracker with JWT authentication, filtered task listings,
// and per-user productivity analytics.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	if err := run(*migrateOnly); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires the application together and starts the HTTP server. Split from
// main so the exit path goes through a single log.Fatalf.
func run(migrateOnly bool) error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.cleanup()

	if err := app.runMigrations(context.Background()); err != nil {
		return err
	}
	if migrateOnly {
		slog.Info("migrations applied, exiting")
		return nil
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}

func init() {
	// Fall back to a plain JSON logger until configuration is loaded
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}
