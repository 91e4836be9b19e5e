// # cmd/strata/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"strata/internal/config"
	"strata/internal/graph"
	"strata/internal/history"
	"strata/internal/observability"
	"strata/internal/report"
	"strata/internal/scanner"
	"strata/internal/util"
	"strata/internal/watcher"
)

type App struct {
	Config *config.Config

	history *history.Store
	limiter *util.Limiter
	watcher *watcher.Watcher

	uiMu       sync.Mutex
	teaProgram *tea.Program
}

func (a *App) setProgram(p *tea.Program) {
	a.uiMu.Lock()
	a.teaProgram = p
	a.uiMu.Unlock()
}

// sendUI forwards msg to the terminal UI. The watcher can deliver a batch
// before RunUI has assigned the program; messages in that window are dropped.
func (a *App) sendUI(msg tea.Msg) {
	a.uiMu.Lock()
	p := a.teaProgram
	a.uiMu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

// ScanResult is one full analysis pass. Levels is nil when the scan failed;
// Cycles is populated when the failure was a dependency cycle so interactive
// modes can display it.
type ScanResult struct {
	Table    *graph.Table
	Levels   map[string]int
	Cycles   [][]string
	Files    int
	Notices  []scanner.Notice
	Duration time.Duration
	Trend    *history.TrendPoint
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		Config:  cfg,
		limiter: util.NewLimiter(cfg.Watch.RescanRate, cfg.Watch.RescanBurst),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		app.history = store
	}

	return app, nil
}

// RunScan walks every scan path, runs the per-file scanner, assembles the
// global table, filters dependencies, and computes levels. The first file
// error aborts the pass.
func (a *App) RunScan(ctx context.Context) (*ScanResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.RunScan")
	defer span.End()

	start := time.Now()

	files, err := a.collectFiles()
	if err != nil {
		observability.ScanErrorsTotal.Inc()
		return nil, err
	}

	table := graph.NewTable()
	result := &ScanResult{Table: table, Files: len(files)}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := scanner.ScanFile(path)
		if err != nil {
			observability.ScanErrorsTotal.Inc()
			return nil, err
		}
		table.AddFile(res)
		result.Notices = append(result.Notices, res.Notices...)
	}

	table.FilterDependencies()

	levels, err := table.ComputeLevels()
	if err != nil {
		var cycleErr *graph.CycleError
		if errors.As(err, &cycleErr) {
			result.Cycles = table.DetectCycles()
		}
		observability.ScanErrorsTotal.Inc()
		return result, err
	}
	result.Levels = levels
	result.Duration = time.Since(start)

	a.recordMetrics(result)

	if err := a.writeOutputs(result); err != nil {
		slog.Error("failed to write outputs", "error", err)
	}
	if err := a.saveSnapshot(result); err != nil {
		slog.Error("failed to save history snapshot", "error", err)
	} else if trend, err := a.latestTrend(); err != nil {
		slog.Warn("failed to load history trend", "error", err)
	} else {
		result.Trend = trend
	}

	return result, nil
}

// collectFiles enumerates candidate files under every scan path in walk
// order. All regular files count regardless of extension; excludes match
// basenames.
func (a *App) collectFiles() ([]string, error) {
	dirGlobs, err := util.CompileGlobs(a.Config.Exclude.Dirs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	fileGlobs, err := util.CompileGlobs(a.Config.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}

	var files []string
	for _, root := range a.Config.ScanPaths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				if util.MatchAny(dirGlobs, base) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if util.MatchAny(fileGlobs, base) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func (a *App) recordMetrics(res *ScanResult) {
	observability.ScanDuration.Observe(res.Duration.Seconds())
	observability.FilesScanned.Set(float64(res.Files))
	observability.FunctionsDiscovered.Set(float64(res.Table.Len()))
	observability.DependencyEdges.Set(float64(res.Table.EdgeCount()))
	observability.LevelCount.Set(float64(graph.MaxLevel(res.Levels) + 1))
	observability.NestedNoticesTotal.Add(float64(len(res.Notices)))
}

func (a *App) writeOutputs(res *ScanResult) error {
	if a.Config.Output.TSV == "" && a.Config.Output.DOT == "" && a.Config.Output.Mermaid == "" {
		return nil
	}

	gen := report.New(res.Table, res.Levels)

	if path := a.Config.Output.TSV; path != "" {
		if err := util.WriteStringWithDirs(path, gen.TSV(), 0o644); err != nil {
			return fmt.Errorf("write TSV %s: %w", path, err)
		}
	}
	if path := a.Config.Output.DOT; path != "" {
		if err := util.WriteStringWithDirs(path, gen.DOT(), 0o644); err != nil {
			return fmt.Errorf("write DOT %s: %w", path, err)
		}
	}
	if path := a.Config.Output.Mermaid; path != "" {
		if err := util.WriteStringWithDirs(path, gen.Mermaid(), 0o644); err != nil {
			return fmt.Errorf("write mermaid %s: %w", path, err)
		}
	}
	return nil
}

func (a *App) saveSnapshot(res *ScanResult) error {
	if a.history == nil {
		return nil
	}

	leaves := 0
	for _, level := range res.Levels {
		if level == 0 {
			leaves++
		}
	}

	return a.history.SaveSnapshot(history.Snapshot{
		FileCount:     res.Files,
		FunctionCount: res.Table.Len(),
		EdgeCount:     res.Table.EdgeCount(),
		LeafCount:     leaves,
		MaxLevel:      graph.MaxLevel(res.Levels),
		NoticeCount:   len(res.Notices),
		DurationMS:    res.Duration.Milliseconds(),
	})
}

// latestTrend returns the newest snapshot's deltas against its predecessor,
// or nil when history is off or holds fewer than two snapshots.
func (a *App) latestTrend() (*history.TrendPoint, error) {
	if a.history == nil {
		return nil, nil
	}

	snaps, err := a.history.RecentSnapshots(2)
	if err != nil {
		return nil, err
	}
	if len(snaps) < 2 {
		return nil, nil
	}

	points := history.BuildTrend(snaps)
	return &points[len(points)-1], nil
}

// StartWatcher begins rescanning on debounced file changes. Each completed
// pass (or failure) is handed to onScan. Rescans are rate limited so event
// storms cannot stack scans.
func (a *App) StartWatcher(ctx context.Context, onScan func(*ScanResult, error)) error {
	w, err := watcher.New(a.Config.Watch.Debounce, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}
	if err := w.Watch(a.Config.ScanPaths); err != nil {
		w.Close()
		return err
	}
	a.watcher = w

	go func() {
		for batch := range w.Changes() {
			observability.WatcherEventsTotal.Inc()
			slog.Debug("change batch received", "paths", len(batch))

			if err := a.limiter.Wait(ctx); err != nil {
				return
			}
			result, err := a.RunScan(ctx)
			onScan(result, err)
		}
	}()

	return nil
}

func (a *App) Close() error {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}
