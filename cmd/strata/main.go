// # cmd/strata/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"strata/internal/config"
	"strata/internal/observability"
	"strata/internal/report"
	"strata/internal/scanner"
)

var (
	configPath  = flag.String("config", "./strata.toml", "Path to config file")
	once        = flag.Bool("once", false, "Run single scan and exit (default unless -watch or -ui)")
	watch       = flag.Bool("watch", false, "Keep running and rescan on file changes")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode (implies -watch)")
	color       = flag.Bool("color", false, "Colorize the level report")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
	metricsAddr = flag.String("metrics-addr", "", "Serve /metrics and /health on this address")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("strata v%s\n", VERSION)
		os.Exit(0)
	}

	interactive := *ui || *watch

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err == nil {
			output = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config; a missing default config file just means defaults.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && *configPath == "./strata.toml" {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.ScanPaths = []string{flag.Arg(0)}
	}

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing.Endpoint)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	if *metricsAddr != "" {
		obs := observability.NewServer(*metricsAddr)
		obs.Start()
		defer obs.Stop(ctx)
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// Initial scan
	result, err := app.RunScan(ctx)
	if err != nil {
		if !interactive {
			printFatal(err)
			app.Close()
			shutdownTracing(ctx)
			os.Exit(1)
		}
		slog.Error("initial scan failed", "error", err)
	} else if !*ui {
		printScan(result)
	}

	if *once || !interactive {
		return
	}

	// Watch mode
	onScan := func(res *ScanResult, err error) {
		if *ui {
			app.sendUI(updateMsg{result: res, err: err})
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return
		}
		printScan(res)
	}
	if err := app.StartWatcher(ctx, onScan); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(result, err); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

// printScan emits the nested-declaration notices and the level report in the
// plain bottom-up format (or colorized with -color).
func printScan(res *ScanResult) {
	for _, notice := range res.Notices {
		fmt.Println(notice.String())
	}

	gen := report.New(res.Table, res.Levels)
	if *color {
		fmt.Print(gen.Styled())
	} else {
		fmt.Print(gen.Text())
	}
}

func printFatal(err error) {
	var scanErr *scanner.ScanError
	if errors.As(err, &scanErr) {
		fmt.Fprintln(os.Stderr, scanErr.Error())
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "strata", "strata.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "strata", "strata.log")
	}

	return "strata.log"
}
