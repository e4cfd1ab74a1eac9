package check

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CheckError is the failure verdict of a check run. The set of
// implementations is closed:
//
//	*ConfigError        the builder was misused
//	*IOError            the filesystem could not be read
//	*MissingChunksError the chunk set is incomplete
//	*SizeMismatchError  the chunk set is complete but its size is wrong
//
//nolint:revive // exported: CheckError reads better than check.Error at call sites
type CheckError interface {
	error
	// Code is a stable machine-readable identifier for the variant.
	Code() string
	// Message is a short human-readable description of the variant.
	Message() string

	checkError()
}

// Error codes returned by CheckError.Code.
const (
	CodeConfig        = "config"
	CodeIO            = "io"
	CodeMissingChunks = "missing_chunks"
	CodeSizeMismatch  = "size_mismatch"
)

// AsCheckError extracts the CheckError from err, if any.
//
//nolint:ireturn // returns the sealed interface so callers can type-switch
func AsCheckError(err error) (CheckError, bool) {
	var ce CheckError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ConfigError reports an invalid check configuration. It is produced before
// the filesystem is touched.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid check config: %s %s", e.Field, e.Reason)
}

func (*ConfigError) Code() string    { return CodeConfig }
func (*ConfigError) Message() string { return "The check configuration is invalid." }
func (*ConfigError) checkError()     {}

// IOError reports a filesystem failure while scanning the chunk directory.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (*IOError) Code() string    { return CodeIO }
func (*IOError) Message() string { return "The chunk directory could not be read." }
func (*IOError) checkError()     {}

// MissingChunksError lists, in ascending order, the expected chunk indices
// that are not present.
type MissingChunksError struct {
	Indices []int
}

func (e *MissingChunksError) Error() string {
	return fmt.Sprintf("missing %d chunk(s): %s", len(e.Indices), formatIndices(e.Indices, 10))
}

func (*MissingChunksError) Code() string { return CodeMissingChunks }
func (*MissingChunksError) Message() string {
	return "Some of the chunks are missing."
}
func (*MissingChunksError) checkError() {}

// SizeMismatchError reports that a complete chunk set does not add up to
// the expected number of bytes.
type SizeMismatchError struct {
	Expected int64
	Observed int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("chunk size mismatch: expected %d bytes, found %d", e.Expected, e.Observed)
}

func (*SizeMismatchError) Code() string { return CodeSizeMismatch }
func (*SizeMismatchError) Message() string {
	return "The total size of the chunks does not equal the expected file size."
}
func (*SizeMismatchError) checkError() {}

// formatIndices renders up to limit indices and summarizes the rest.
func formatIndices(indices []int, limit int) string {
	var b strings.Builder
	for i, idx := range indices {
		if i == limit {
			fmt.Fprintf(&b, " (+%d more)", len(indices)-limit)
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}
