// This file ties the pipeline together: resolve the series cover, build
// the batch plan, then either stop (preview) or execute it. Every
// action streams its progress through a line sink and stays silent on
// stdout.

package organizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mangabatch/internal/cover"
	"mangabatch/internal/models"
	"mangabatch/internal/series"
)

// Action selects what to do with a series folder.
type Action string

const (
	ActionShowCover Action = "cover"
	ActionPreview   Action = "preview"
	ActionProcess   Action = "process"
)

// Result carries what an action produced beyond its log lines. Plan is
// set by preview and process actions.
type Result struct {
	Action    Action
	CoverPath string
	Plan      *models.Plan
}

// Organizer runs actions against series folders.
type Organizer struct {
	Resolver  *cover.Resolver
	Writer    *cover.Writer
	BatchSize int

	// Confirm, when set, is asked after the plan is printed and before
	// anything is moved. Returning false aborts the process action.
	Confirm func(*models.Plan) bool
}

// New creates an Organizer. batchSize 0 falls back to the default.
func New(resolver *cover.Resolver, writer *cover.Writer, batchSize int) *Organizer {
	return &Organizer{Resolver: resolver, Writer: writer, BatchSize: batchSize}
}

// Run executes one action against seriesDir, reporting progress through
// sink.
func (o *Organizer) Run(action Action, seriesDir string, sink func(string)) (*Result, error) {
	if sink == nil {
		sink = func(string) {}
	}

	info, err := os.Stat(seriesDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", seriesDir)
	}

	switch action {
	case ActionShowCover:
		return o.showCover(seriesDir, sink)
	case ActionPreview:
		return o.preview(seriesDir, sink)
	case ActionProcess:
		return o.process(seriesDir, sink)
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}

func (o *Organizer) showCover(seriesDir string, sink func(string)) (*Result, error) {
	resolved, err := o.Resolver.Ensure(seriesDir, filepath.Base(seriesDir), sink)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, errors.New("[COVER-CHECK] No cover found from local files or remote providers.")
	}

	coverJPG, err := cover.EnsureCoverJPG(seriesDir, resolved.Path, o.Resolver.Quality)
	if err != nil {
		return nil, err
	}
	sink(coverJPG)
	return &Result{Action: ActionShowCover, CoverPath: coverJPG}, nil
}

func (o *Organizer) preview(seriesDir string, sink func(string)) (*Result, error) {
	plan, err := o.resolveAndPlan(seriesDir, sink)
	if err != nil {
		return nil, err
	}

	emitPlan(plan, sink)
	sink("[DRY-RUN] Plan printed only. No changes were made.")
	return &Result{Action: ActionPreview, Plan: plan}, nil
}

func (o *Organizer) process(seriesDir string, sink func(string)) (*Result, error) {
	release, err := AcquireSeriesLock(seriesDir)
	if err != nil {
		return nil, err
	}
	defer release()

	plan, err := o.resolveAndPlan(seriesDir, sink)
	if err != nil {
		return nil, err
	}

	emitPlan(plan, sink)
	if o.Confirm != nil && !o.Confirm(plan) {
		sink("[SKIP] Aborted by user.")
		return &Result{Action: ActionProcess, Plan: plan}, nil
	}
	if err := series.Execute(plan, o.Writer, sink); err != nil {
		return nil, err
	}
	return &Result{Action: ActionProcess, Plan: plan}, nil
}

// resolveAndPlan runs cover resolution and batch planning, the shared
// front half of preview and process.
func (o *Organizer) resolveAndPlan(seriesDir string, sink func(string)) (*models.Plan, error) {
	resolved, err := o.Resolver.Ensure(seriesDir, filepath.Base(seriesDir), sink)
	if err != nil {
		return nil, err
	}

	coverPath := ""
	if resolved != nil {
		coverPath = resolved.Path
	}
	return series.BuildPlan(seriesDir, o.BatchSize, coverPath)
}

func emitPlan(plan *models.Plan, sink func(string)) {
	text := strings.TrimSuffix(series.FormatPlan(plan), "\n")
	for _, line := range strings.Split(text, "\n") {
		sink(line)
	}
}
