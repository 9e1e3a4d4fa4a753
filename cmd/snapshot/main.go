// Command snapshot computes a league's quarter trophy report once and prints
// it as JSON. It reads the same configuration as the server; flags override it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	app "github.com/okian/quarterly/internal/app"
	"github.com/okian/quarterly/internal/config"
	"github.com/okian/quarterly/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Stderr.WriteString("snapshot failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

type flags struct {
	league  string
	at      string
	quarter string
	top     int
	baseURL string
	workers int
	timeout time.Duration
	output  string
	verbose bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.StringVar(&f.league, "league", "", "classic league id (default: configured league)")
	fs.StringVar(&f.at, "at", "", "evaluation instant, RFC3339 (default: now)")
	fs.StringVar(&f.quarter, "quarter", "", "print only this quarter's top list, e.g. Q3")
	fs.IntVar(&f.top, "top", 0, "top list length with -quarter (default: configured top_n)")
	fs.StringVar(&f.baseURL, "url", "", "fantasy API base URL (default: configured fpl_base_url)")
	fs.IntVar(&f.workers, "workers", 0, "concurrent history fetches (default: configured history_workers)")
	fs.DurationVar(&f.timeout, "timeout", 0, "overall deadline (default: configured request_timeout_ms)")
	fs.StringVar(&f.output, "output", "", "write JSON to this file instead of stdout")
	fs.BoolVar(&f.verbose, "verbose", false, "debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func run(args []string, stdout io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	var at time.Time
	if f.at != "" {
		if at, err = time.Parse(time.RFC3339, f.at); err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(os.Stderr)); err != nil {
		return err
	}
	level := "warn"
	if f.verbose {
		level = "debug"
	}
	_ = logger.SetLevelString(level)

	svc, err := app.FromConfig(cfg, logger.Named("snapshot"))
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	var result any
	if f.quarter != "" {
		result, err = svc.Top(ctx, f.league, f.quarter, f.top, at)
	} else {
		result, err = svc.Summary(ctx, f.league, at)
	}
	if err != nil {
		return err
	}
	return writeResult(stdout, f.output, result)
}

func applyFlags(cfg *config.Config, f flags) {
	if f.baseURL != "" {
		cfg.FPLBaseURL = f.baseURL
	}
	if f.workers > 0 {
		cfg.HistoryWorkers = f.workers
	}
	if f.timeout > 0 {
		cfg.RequestTimeoutMS = int(f.timeout.Milliseconds())
	}
}

func writeResult(stdout io.Writer, path string, v any) (err error) {
	w := stdout
	if path != "" {
		file, ferr := os.Create(path)
		if ferr != nil {
			return ferr
		}
		defer func() { err = errors.Join(err, file.Close()) }()
		w = file
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
