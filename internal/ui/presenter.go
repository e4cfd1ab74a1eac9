package ui

import (
	"fmt"
	"io"

	"github.com/bamsammich/chunkcheck/internal/event"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan event.Event) error
}

// Config configures a Presenter.
type Config struct {
	Writer  io.Writer
	Quiet   bool
	Verbose bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet || !cfg.Verbose {
		return quietPresenter{}
	}
	return &plainPresenter{w: cfg.Writer}
}

// quietPresenter consumes events but produces no output.
type quietPresenter struct{}

func (quietPresenter) Run(events <-chan event.Event) error {
	for range events {
	}
	return nil
}

// plainPresenter writes one line per scan event.
type plainPresenter struct {
	w io.Writer
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.ScanStarted:
		fmt.Fprintf(p.w, "scanning %s (%s entries)\n", ev.Path, FormatCount(ev.Total))
	case event.ChunkFound:
		fmt.Fprintf(p.w, "chunk %d  %s  %s\n", ev.Index, FormatBytes(ev.Size), ev.Path)
	case event.EntryIgnored:
		fmt.Fprintf(p.w, "ignored  %s\n", ev.Path)
	case event.ScanComplete:
		fmt.Fprintf(p.w, "found %s chunks, %s\n", FormatCount(ev.Total), FormatBytes(ev.TotalSize))
	case event.CheckPassed, event.CheckFailed:
		// The verdict is rendered separately.
	}
}
