package check

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/bamsammich/chunkcheck/internal/chunk"
	"github.com/bamsammich/chunkcheck/internal/event"
)

// Runner checks one chunk directory. Run returns nil on success, a
// CheckError verdict on failure, or ctx.Err() if the run was abandoned.
type Runner interface {
	Run(ctx context.Context) error
}

// Executor schedules the single task of an asynchronous run.
type Executor interface {
	Go(task func())
}

// GoExecutor runs each task on a new goroutine.
type GoExecutor struct{}

// Go implements Executor.
func (GoExecutor) Go(task func()) { go task() }

type options struct {
	fs       afero.Fs
	logger   *slog.Logger
	events   chan<- event.Event
	executor Executor
}

// Option configures a runner.
type Option func(*options)

// WithFs reads chunks from fs instead of the host filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEvents sends progress events to ch. Sends never block; events are
// dropped when ch is full.
func WithEvents(ch chan<- event.Event) Option {
	return func(o *options) { o.events = ch }
}

// WithExecutor sets the scheduler used by AsyncRunner. Defaults to GoExecutor.
func WithExecutor(e Executor) Option {
	return func(o *options) { o.executor = e }
}

func buildOptions(opts []Option) options {
	o := options{
		fs:       afero.NewOsFs(),
		logger:   slog.Default(),
		executor: GoExecutor{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.executor == nil {
		o.executor = GoExecutor{}
	}
	return o
}

// SyncRunner scans and reconciles on the calling goroutine.
type SyncRunner struct {
	cfg  Config
	opts options
}

// NewSyncRunner creates a blocking runner for cfg.
func NewSyncRunner(cfg Config, opts ...Option) *SyncRunner {
	return &SyncRunner{cfg: cfg, opts: buildOptions(opts)}
}

// Run implements Runner.
func (r *SyncRunner) Run(ctx context.Context) error {
	return execute(ctx, r.cfg, r.opts)
}

// AsyncRunner performs the check as one task on an Executor so the caller's
// goroutine is free while the directory is read. The task never fans out.
type AsyncRunner struct {
	cfg  Config
	opts options
}

// NewAsyncRunner creates a non-blocking runner for cfg.
func NewAsyncRunner(cfg Config, opts ...Option) *AsyncRunner {
	return &AsyncRunner{cfg: cfg, opts: buildOptions(opts)}
}

// Start schedules the check and returns a channel that receives exactly one
// verdict (nil on success) and is then closed. If ctx is cancelled before a
// verdict is reached the channel is closed without a value.
func (r *AsyncRunner) Start(ctx context.Context) <-chan error {
	out := make(chan error, 1)
	r.opts.executor.Go(func() {
		defer close(out)
		err := execute(ctx, r.cfg, r.opts)
		if ctx.Err() != nil {
			return
		}
		out <- err
	})
	return out
}

// Run implements Runner by waiting for the task started by Start.
func (r *AsyncRunner) Run(ctx context.Context) error {
	verdict, ok := <-r.Start(ctx)
	if !ok {
		return ctx.Err()
	}
	return verdict
}

// execute is the one check procedure shared by both runners.
func execute(ctx context.Context, cfg Config, o options) error {
	runID := uuid.NewString()
	logger := o.logger.With("run_id", runID, "dir", cfg.dir, "total_chunks", cfg.totalChunks)

	if cfg.totalChunks <= 0 || cfg.totalChunks > MaxTotalChunks || cfg.dir == "" {
		return &ConfigError{Field: "config", Reason: "was not produced by Builder.Build"}
	}

	scanner := chunk.NewScanner(chunk.ScannerConfig{
		Fs:     o.fs,
		Logger: logger,
		Events: o.events,
		RunID:  runID,
	})
	entries, err := scanner.Scan(ctx, cfg.dir)
	if err != nil {
		var se *chunk.ScanError
		if !errors.As(err, &se) {
			logger.Debug("check abandoned", "error", err)
			return err
		}
		return fail(logger, o.events, runID, &IOError{Op: se.Op, Path: se.Path, Err: se.Err})
	}

	if err := Reconcile(cfg, entries); err != nil {
		return fail(logger, o.events, runID, err)
	}

	logger.Info("check passed", "chunks", cfg.totalChunks, "file_size", cfg.fileSize)
	event.Emit(o.events, event.Event{Type: event.CheckPassed, RunID: runID, Path: cfg.dir})
	return nil
}

func fail(logger *slog.Logger, events chan<- event.Event, runID string, err error) error {
	attrs := []any{"error", err}
	if ce, ok := AsCheckError(err); ok {
		attrs = append(attrs, "code", ce.Code())
	}
	logger.Warn("check failed", attrs...)
	event.Emit(events, event.Event{Type: event.CheckFailed, RunID: runID, Error: err})
	return err
}
