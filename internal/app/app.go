// Package app wires together the adapters and domain logic behind the
// secframe commands: load a corpus, score it against the dictionary,
// persist the run, and slice stored runs into reports and exports.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/corey/secframe/dictionaries"
	"github.com/corey/secframe/internal/adapters/bbolt"
	"github.com/corey/secframe/internal/adapters/corpus"
	"github.com/corey/secframe/internal/adapters/export"
	fsw "github.com/corey/secframe/internal/adapters/fsnotify"
	"github.com/corey/secframe/internal/domain/aggregate"
	"github.com/corey/secframe/internal/domain/dictionary"
	"github.com/corey/secframe/internal/domain/score"
	"github.com/corey/secframe/internal/ports"
)

// Config holds initialization parameters for the App.
type Config struct {
	DBPath  string // path to bbolt file (default: .secframe/secframe.db)
	DictDir string // custom taxonomy directory (default: embedded Spanish set)
	Workers int    // scoring goroutines (default: one per CPU)
}

// App is the top-level container wiring all components together.
type App struct {
	Store  *bbolt.Store
	Dict   *dictionary.Store
	Scorer *score.Scorer

	workers int
	watcher *fsw.Watcher
}

// New creates an App with all dependencies wired. The dictionary is loaded
// and validated before the store is touched, so a broken taxonomy fails
// fast without leaving data files behind.
func New(cfg Config) (*App, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(".secframe", "secframe.db")
	}

	var dict *dictionary.Store
	var err error
	if cfg.DictDir != "" {
		dict, err = dictionary.LoadFromFS(os.DirFS(cfg.DictDir), ".")
	} else {
		dict, err = dictionary.LoadFromFS(dictionaries.FS, "es")
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &App{
		Store:   store,
		Dict:    dict,
		Scorer:  score.NewScorer(dict),
		workers: cfg.Workers,
	}, nil
}

// Close stops any running watcher and releases the store.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	return a.Store.Close()
}

// AnalyzeResult is what one analyze run produces.
type AnalyzeResult struct {
	Meta    ports.RunMeta
	Records []ports.ScoredRecord
	Summary Summary
}

// AnalyzeFile loads a corpus file, scores every record against the
// dictionary, persists the run, and returns it with its summary.
func (a *App) AnalyzeFile(path string) (*AnalyzeResult, error) {
	records, err := corpus.LoadFile(path)
	if err != nil {
		return nil, err
	}

	scored := scoreConcurrent(a.Scorer, records, a.workers)
	sum := Summarize(a.Dict, scored)

	meta := ports.RunMeta{
		ID:        uuid.NewString(),
		Source:    path,
		CreatedAt: time.Now().UTC(),
		Records:   len(scored),
		From:      sum.From,
		To:        sum.To,
	}
	if err := a.Store.SaveRun(meta, scored); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}

	return &AnalyzeResult{Meta: meta, Records: scored, Summary: sum}, nil
}

// loadRun fetches a stored run; an empty id means the most recent run.
func (a *App) loadRun(id string) (ports.RunMeta, []ports.ScoredRecord, error) {
	if id == "" {
		return a.Store.LatestRun()
	}
	return a.Store.LoadRun(id)
}

// Report summarizes a stored run. An empty runID selects the latest run.
func (a *App) Report(runID string) (ports.RunMeta, Summary, error) {
	meta, records, err := a.loadRun(runID)
	if err != nil {
		return ports.RunMeta{}, Summary{}, err
	}
	return meta, Summarize(a.Dict, records), nil
}

// PeriodReport groups a stored run's records by calendar period ("quarter",
// "month", or "year") and returns the buckets in period order.
func (a *App) PeriodReport(runID, period string) (ports.RunMeta, []*aggregate.Bucket, error) {
	key, err := aggregate.PeriodKey(period)
	if err != nil {
		return ports.RunMeta{}, nil, err
	}
	meta, records, err := a.loadRun(runID)
	if err != nil {
		return ports.RunMeta{}, nil, err
	}
	buckets, err := aggregate.GroupBy(records, key)
	if err != nil {
		return ports.RunMeta{}, nil, err
	}
	return meta, aggregate.Sorted(buckets), nil
}

// EventReport is the slice of a run covering one named event window.
type EventReport struct {
	Meta     ports.RunMeta
	Name     string
	From, To time.Time
	Bucket   *aggregate.Bucket
	Summary  Summary
}

// EventWindow slices a stored run to the inclusive [from, to] window and
// summarizes what falls inside.
func (a *App) EventWindow(runID, name string, from, to time.Time) (*EventReport, error) {
	meta, records, err := a.loadRun(runID)
	if err != nil {
		return nil, err
	}
	window := aggregate.Window(records, from, to)
	return &EventReport{
		Meta:    meta,
		Name:    name,
		From:    from,
		To:      to,
		Bucket:  aggregate.Collect(name, window),
		Summary: Summarize(a.Dict, window),
	}, nil
}

// ExportHighIntensity writes a stored run's records scoring at or above
// threshold to a CSV file, strongest first. Returns the number exported.
func (a *App) ExportHighIntensity(runID, path string, threshold int) (int, ports.RunMeta, error) {
	meta, records, err := a.loadRun(runID)
	if err != nil {
		return 0, ports.RunMeta{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, meta, fmt.Errorf("create export: %w", err)
	}
	n, err := export.WriteHighIntensityCSV(f, a.Dict, records, threshold)
	if err != nil {
		f.Close()
		return 0, meta, fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, meta, err
	}
	return n, meta, nil
}

// ExportScored writes a full scored record set to a CSV file.
func (a *App) ExportScored(path string, records []ports.ScoredRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := export.WriteScoredCSV(f, a.Dict, records); err != nil {
		f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	return f.Close()
}

// Runs lists stored runs, newest first.
func (a *App) Runs() ([]ports.RunMeta, error) {
	return a.Store.ListRuns()
}

// Watch analyzes every corpus file dropped into dir until StopWatch or
// Close. onRun receives each completed (or failed) analysis.
func (a *App) Watch(dir string, onRun func(*AnalyzeResult, error)) error {
	w, err := fsw.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	a.watcher = w
	return w.Watch(dir, func(path string) {
		onRun(a.AnalyzeFile(path))
	})
}

// StopWatch stops a running watch loop. Safe to call when none is running.
func (a *App) StopWatch() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Stop()
}
