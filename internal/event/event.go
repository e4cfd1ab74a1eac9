package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ChunkFound
	EntryIgnored
	ScanComplete
	CheckPassed
	CheckFailed
)

var typeNames = [...]string{
	ScanStarted:  "ScanStarted",
	ChunkFound:   "ChunkFound",
	EntryIgnored: "EntryIgnored",
	ScanComplete: "ScanComplete",
	CheckPassed:  "CheckPassed",
	CheckFailed:  "CheckFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from a check run.
type Event struct {
	Type      Type
	Timestamp time.Time
	RunID     string
	Path      string
	Index     int   // chunk index (ChunkFound)
	Size      int64 // chunk size (ChunkFound)
	Total     int64 // directory entries (ScanStarted) or chunks found (ScanComplete)
	TotalSize int64 // bytes across chunks found (ScanComplete)
	Error     error
}

// Emit stamps e and sends it on ch without blocking. Events are dropped when
// ch is nil or full.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}
