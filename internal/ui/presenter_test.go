package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/chunkcheck/internal/event"
)

func TestPlainPresenter_ScanEvents(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(Config{Writer: &out, Verbose: true})

	events := make(chan event.Event, 10)
	events <- event.Event{Type: event.ScanStarted, Path: "/c", Total: 3}
	events <- event.Event{Type: event.ChunkFound, Path: "/c/0", Index: 0, Size: 2048}
	events <- event.Event{Type: event.EntryIgnored, Path: "/c/notes.txt"}
	events <- event.Event{Type: event.ScanComplete, Path: "/c", Total: 1, TotalSize: 2048}
	events <- event.Event{Type: event.CheckPassed, Path: "/c"}
	close(events)

	require.NoError(t, p.Run(events))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "scanning /c")
	assert.Contains(t, lines[1], "chunk 0")
	assert.Contains(t, lines[1], "2.0 KiB")
	assert.Contains(t, lines[2], "/c/notes.txt")
	assert.Contains(t, lines[3], "found 1 chunks")
}

func TestQuietPresenter_DrainsSilently(t *testing.T) {
	var out bytes.Buffer
	for _, cfg := range []Config{
		{Writer: &out},
		{Writer: &out, Quiet: true, Verbose: true},
	} {
		p := NewPresenter(cfg)
		events := make(chan event.Event, 2)
		events <- event.Event{Type: event.ChunkFound, Path: "/c/0"}
		close(events)

		require.NoError(t, p.Run(events))
		assert.Empty(t, events)
	}
	assert.Empty(t, out.String())
}
