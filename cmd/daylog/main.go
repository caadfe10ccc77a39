package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/daylog"
)

// version is set at build time via ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve", "build", "schedule":
		if err := run(os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: daylog new <dir>")
			os.Exit(1)
		}
		if err := runNew(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("daylog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(cmd string) error {
	cfg, err := daylog.LoadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := daylog.New(cfg, daylog.WithLogger(log))
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("Failed to close app", "error", err)
		}
	}()

	switch cmd {
	case "build":
		return app.Export(ctx, cfg.OutDir)
	case "schedule":
		return runSchedule(ctx, app, cfg.OutDir, log)
	default:
		return runServe(ctx, app, log)
	}
}

func runServe(ctx context.Context, app *daylog.App, log *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		errc <- app.Start()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errc
}

func runSchedule(ctx context.Context, app *daylog.App, outDir string, log *slog.Logger) error {
	sched, err := daylog.NewScheduler(ctx, app, outDir)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	log.Info("Scheduler is started",
		"outDir", outDir,
		"schedule", app.Config.RebuildSchedule)

	<-ctx.Done()
	sched.Stop()
	log.Info("Scheduler is stopped")
	return nil
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func printUsage() {
	fmt.Println(`daylog - render a personal log page from settings and entries documents

Usage:
  daylog <command> [arguments]

Commands:
  serve         Serve the log page over HTTP
  build         Export the page as static files into OUT_DIR
  schedule      Export now and again on REBUILD_SCHEDULE
  new <dir>     Create a new site with starter documents
  version       Print the daylog version
  help          Show this help message

Configuration is read from the environment (SITE_NAME, DATA_DIR,
ORIGIN_URL, SHELL_PATH, CHOICE_STORE, TIMEZONE, OUT_DIR, ...).

Examples:
  daylog new mylog
  DATA_DIR=mylog daylog serve
  DATA_DIR=mylog CHOICE_STORE=sqlite daylog build`)
}
