package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatBytes formats a byte count using binary units, e.g. "1.5 MiB".
// Negative counts keep their sign, including math.MinInt64.
func FormatBytes(b int64) string {
	if b < 0 {
		// -(b+1) cannot overflow; add the one back as unsigned.
		return "-" + humanize.IBytes(uint64(-(b+1))+1)
	}
	return humanize.IBytes(uint64(b))
}

// ParseBytes parses a size such as "4096", "10MB" or "1.5 GiB".
func ParseBytes(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > uint64(1<<63-1) {
		return 0, fmt.Errorf("invalid size %q: too large", s)
	}
	return int64(n), nil
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatIndices collapses ascending indices into ranges, e.g. "0-2, 5, 7-9".
func FormatIndices(indices []int) string {
	var b strings.Builder
	for i := 0; i < len(indices); {
		j := i
		for j+1 < len(indices) && indices[j+1] == indices[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(indices[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(indices[j]))
		}
		i = j + 1
	}
	return b.String()
}
