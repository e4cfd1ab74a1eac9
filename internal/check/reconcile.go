package check

import "github.com/bamsammich/chunkcheck/internal/chunk"

// Reconcile derives the verdict for cfg from the entries found by a scan.
// Missing chunks take priority over size. Entries whose index is outside
// 0..TotalChunks-1 are ignored for both presence and size. Duplicate indices
// count once. The result is nil, *MissingChunksError or *SizeMismatchError.
func Reconcile(cfg Config, entries []chunk.Entry) error {
	present := make([]bool, cfg.totalChunks)
	var observed int64
	for _, e := range entries {
		if e.Index < 0 || e.Index >= cfg.totalChunks || present[e.Index] {
			continue
		}
		present[e.Index] = true
		observed += e.Size
	}

	var missing []int
	for i, ok := range present {
		if !ok {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		return &MissingChunksError{Indices: missing}
	}

	if !cfg.skipSize && observed != cfg.fileSize {
		return &SizeMismatchError{Expected: cfg.fileSize, Observed: observed}
	}
	return nil
}
