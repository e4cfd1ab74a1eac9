package chunk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bamsammich/chunkcheck/internal/event"
)

var (
	// ErrNotFound is the cause attached when the chunk directory does not exist.
	ErrNotFound = errors.New("directory not found")
	// ErrNotDirectory is the cause attached when the chunk directory is a file.
	ErrNotDirectory = errors.New("not a directory")
)

// Entry is one chunk file observed during a scan.
type Entry struct {
	Index int
	Size  int64
	Path  string
}

// ScanError reports a filesystem failure during a scan.
type ScanError struct {
	Op   string
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// ScannerConfig controls scanner behavior. RunID is copied onto every
// emitted event.
type ScannerConfig struct {
	Fs     afero.Fs
	Logger *slog.Logger
	Events chan<- event.Event
	RunID  string
}

// Scanner lists a chunk directory and reads the size of each chunk file.
// It holds no state between scans and is safe for concurrent use.
type Scanner struct {
	fs     afero.Fs
	logger *slog.Logger
	events chan<- event.Event
	runID  string
}

// NewScanner creates a scanner with the given config. A nil Fs means the
// host filesystem.
func NewScanner(cfg ScannerConfig) *Scanner {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Scanner{fs: cfg.Fs, logger: cfg.Logger, events: cfg.Events, runID: cfg.RunID}
}

// Scan returns every chunk entry in dir, in no particular order. Either all
// entries are returned or none: any filesystem failure yields a *ScanError.
// Cancellation is observed before the listing and before each metadata read;
// a cancelled scan returns ctx.Err().
func (s *Scanner) Scan(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ScanError{Op: "stat", Path: dir, Err: ErrNotFound}
		}
		return nil, &ScanError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &ScanError{Op: "stat", Path: dir, Err: ErrNotDirectory}
	}

	names, err := s.list(dir)
	if err != nil {
		return nil, err
	}

	s.emit(event.Event{Type: event.ScanStarted, Path: dir, Total: int64(len(names))})
	s.logger.Debug("listed chunk directory", "dir", dir, "entries", len(names))

	var (
		entries   []Entry
		totalSize int64
	)
	for _, name := range names {
		idx, ok := ParseIndex(name)
		if !ok {
			s.ignore(filepath.Join(dir, name), "name is not a chunk index")
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, name)
		fi, err := s.fs.Stat(path)
		if err != nil {
			return nil, &ScanError{Op: "stat", Path: path, Err: err}
		}
		if !fi.Mode().IsRegular() {
			s.ignore(path, "not a regular file")
			continue
		}

		entry := Entry{Index: idx, Size: fi.Size(), Path: path}
		entries = append(entries, entry)
		totalSize += entry.Size
		s.emit(event.Event{
			Type:  event.ChunkFound,
			Path:  path,
			Index: idx,
			Size:  entry.Size,
		})
	}

	s.emit(event.Event{
		Type:      event.ScanComplete,
		Path:      dir,
		Total:     int64(len(entries)),
		TotalSize: totalSize,
	})
	s.logger.Debug("scan complete", "dir", dir, "chunks", len(entries), "bytes", totalSize)

	return entries, nil
}

// list reads the entry names of dir and releases the handle before returning.
func (s *Scanner) list(dir string) ([]string, error) {
	f, err := s.fs.Open(dir)
	if err != nil {
		return nil, &ScanError{Op: "open", Path: dir, Err: err}
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, &ScanError{Op: "readdir", Path: dir, Err: err}
	}
	return names, nil
}

func (s *Scanner) ignore(path, reason string) {
	s.logger.Debug("ignoring entry", "path", path, "reason", reason)
	s.emit(event.Event{Type: event.EntryIgnored, Path: path})
}

func (s *Scanner) emit(e event.Event) {
	e.RunID = s.runID
	event.Emit(s.events, e)
}
