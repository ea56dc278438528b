// Package ioload implements the Loader interface. Catalog statements run
// one at a time on a single warehouse session, and every statement is
// committed before the next one starts.
package ioload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	dwhetl "github.com/gnames/dwhetl/pkg"
	"github.com/gnames/dwhetl/pkg/catalog"
	"github.com/gnames/dwhetl/pkg/config"
	"github.com/gnames/dwhetl/pkg/mode"
	"github.com/gnames/dwhetl/pkg/warehouse"
	"github.com/gnames/gnfmt"
)

const (
	bannerStagingFull = "* Loading staging tables (all data)"
	bannerStagingTest = "* Loading staging tables (test data)"
	bannerPopulate    = "* Populating star schema"
)

// loader implements the Loader interface.
type loader struct {
	cfg      *config.Config
	wh       warehouse.Warehouse
	cat      *catalog.Catalog
	out      io.Writer
	progress bool
	state    dwhetl.State
}

// Option configures the loader.
type Option func(*loader)

// OptOutput sets where phase banners are printed. Default is stdout.
func OptOutput(w io.Writer) Option {
	return func(l *loader) {
		if w != nil {
			l.out = w
		}
	}
}

// OptProgress turns the progress bar on or off.
func OptProgress(b bool) Option {
	return func(l *loader) {
		l.progress = b
	}
}

// New creates a new Loader.
func New(
	cfg *config.Config,
	wh warehouse.Warehouse,
	cat *catalog.Catalog,
	opts ...Option,
) dwhetl.Loader {
	res := &loader{cfg: cfg, wh: wh, cat: cat, out: os.Stdout}
	if cfg != nil {
		res.progress = cfg.Progress
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// State returns the state reached by the latest run.
func (l *loader) State() dwhetl.State {
	return l.state
}

// Plan returns staging statements in reverse of their declared order
// followed by populate statements in declared order. Abort mode plans
// nothing.
func (l *loader) Plan(m mode.RunMode) ([]catalog.Step, error) {
	staging, populate, err := l.phases(m)
	if err != nil {
		return nil, err
	}
	return catalog.Sequence(staging, populate), nil
}

// Load runs the staging phase and then the populate phase.
// The first failed statement stops the run, statements committed
// before it stay in the warehouse.
func (l *loader) Load(ctx context.Context, m mode.RunMode) error {
	if m != mode.Full && m != mode.Test {
		slog.Info("Load aborted, nothing to do", "mode", m.String())
		return nil
	}

	l.state = dwhetl.Idle
	staging, populate, err := l.phases(m)
	if err != nil {
		return err
	}
	steps := catalog.Sequence(staging, populate)
	staging, populate = steps[:len(staging)], steps[len(staging):]

	conn, err := l.wh.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("Cannot close warehouse connection", "error", err)
		}
	}()

	cur, err := conn.Cursor(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := cur.Close(); err != nil {
			slog.Warn("Cannot close warehouse cursor", "error", err)
		}
	}()

	startTime := time.Now()
	slog.Info("Starting load",
		"mode", m.String(),
		"statements", len(steps),
	)

	var bar *pb.ProgressBar
	if l.progress && len(steps) > 0 {
		bar = newProgressBar(len(steps), "Statements: ")
		defer bar.Finish()
	}

	l.state = dwhetl.StagingInProgress
	fmt.Fprintln(l.out, stagingBanner(m))
	if err = l.runPhase(ctx, conn, cur, staging, bar); err != nil {
		l.state = dwhetl.Failed
		return err
	}
	l.state = dwhetl.StagingDone
	slog.Info("Staging tables loaded", "statements", len(staging))

	l.state = dwhetl.PopulatingInProgress
	fmt.Fprintln(l.out, bannerPopulate)
	if err = l.runPhase(ctx, conn, cur, populate, bar); err != nil {
		l.state = dwhetl.Failed
		return err
	}
	l.state = dwhetl.Done

	duration := time.Since(startTime)
	slog.Info("Load completed",
		"mode", m.String(),
		"statements", humanize.Comma(int64(len(steps))),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	return nil
}

func (l *loader) phases(m mode.RunMode) (
	staging []catalog.Step,
	populate []catalog.Step,
	err error,
) {
	if l.cat == nil {
		return nil, nil, NoCatalogError()
	}

	list, ok := l.cat.Staging(m)
	if !ok {
		return nil, nil, nil
	}
	return catalog.Reversed(list), catalog.Forward(l.cat.Populate), nil
}

func (l *loader) runPhase(
	ctx context.Context,
	conn warehouse.Conn,
	cur warehouse.Cursor,
	steps []catalog.Step,
	bar *pb.ProgressBar,
) error {
	for _, st := range steps {
		stepStart := time.Now()
		slog.Debug("Executing statement",
			"step", st.Seq,
			"list", st.List,
			"index", st.Index,
			"name", st.Name,
		)

		if err := cur.Execute(ctx, st.SQL); err != nil {
			return statementError(st, OpExecute, err)
		}
		if err := conn.Commit(ctx); err != nil {
			return statementError(st, OpCommit, err)
		}

		slog.Info("Statement committed",
			"step", st.Seq,
			"list", st.List,
			"name", st.Name,
			"duration", gnfmt.TimeString(time.Since(stepStart).Seconds()),
		)
		if bar != nil {
			bar.Increment()
		}
	}
	return nil
}

func stagingBanner(m mode.RunMode) string {
	if m == mode.Test {
		return bannerStagingTest
	}
	return bannerStagingFull
}
