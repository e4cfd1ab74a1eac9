package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bamsammich/chunkcheck/internal/check"
)

// Report is the machine-readable form of a verdict.
type Report struct {
	OK       bool   `json:"ok"`
	Dir      string `json:"dir"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Missing  []int  `json:"missing,omitempty"`
	Expected *int64 `json:"expected,omitempty"`
	Observed *int64 `json:"observed,omitempty"`
}

// NewReport describes the verdict err for the check of cfg.
func NewReport(cfg check.Config, err error) Report {
	r := Report{OK: err == nil, Dir: cfg.Dir()}
	if err == nil {
		return r
	}
	r.Error = err.Error()
	ce, ok := check.AsCheckError(err)
	if !ok {
		return r
	}
	r.Code = ce.Code()
	r.Message = ce.Message()
	switch e := ce.(type) {
	case *check.MissingChunksError:
		r.Missing = e.Indices
	case *check.SizeMismatchError:
		r.Expected = &e.Expected
		r.Observed = &e.Observed
	case *check.ConfigError, *check.IOError:
	}
	return r
}

// WriteJSON writes r as a single JSON line.
func WriteJSON(w io.Writer, r Report) error {
	return json.NewEncoder(w).Encode(r)
}

// WriteVerdict writes a human-readable verdict. Styled output uses the theme
// colors and should only be requested for terminals.
func WriteVerdict(w io.Writer, cfg check.Config, err error, styled bool) {
	paint := func(s string, st func(...string) string) string {
		if styled {
			return st(s)
		}
		return s
	}

	if err == nil {
		size := FormatBytes(cfg.FileSize())
		if cfg.SkipSize() {
			size = "size not checked"
		}
		fmt.Fprintf(w, "%s  %s  %s chunks, %s\n",
			paint("OK", stylePass.Render),
			paint(cfg.Dir(), styleLabel.Render),
			FormatCount(int64(cfg.TotalChunks())),
			size,
		)
		return
	}

	ce, ok := check.AsCheckError(err)
	if !ok {
		fmt.Fprintf(w, "%s  %s  %v\n", paint("ERROR", styleFail.Render), cfg.Dir(), err)
		return
	}

	switch e := ce.(type) {
	case *check.MissingChunksError:
		fmt.Fprintf(w, "%s  %s  %s\n", paint("MISSING", styleFail.Render), paint(cfg.Dir(), styleLabel.Render), e.Message())
		fmt.Fprintf(w, "  %s of %s chunks missing: %s\n",
			FormatCount(int64(len(e.Indices))),
			FormatCount(int64(cfg.TotalChunks())),
			paint(FormatIndices(e.Indices), styleDetail.Render),
		)
	case *check.SizeMismatchError:
		fmt.Fprintf(w, "%s  %s  %s\n", paint("SIZE", styleWarn.Render), paint(cfg.Dir(), styleLabel.Render), e.Message())
		fmt.Fprintf(w, "  expected %s (%s bytes), found %s (%s bytes)\n",
			FormatBytes(e.Expected), FormatCount(e.Expected),
			FormatBytes(e.Observed), FormatCount(e.Observed),
		)
	case *check.IOError:
		fmt.Fprintf(w, "%s  %s  %s\n", paint("IO", styleFail.Render), paint(cfg.Dir(), styleLabel.Render), e.Message())
		fmt.Fprintf(w, "  %s\n", paint(e.Error(), styleDetail.Render))
	case *check.ConfigError:
		fmt.Fprintf(w, "%s  %s\n", paint("CONFIG", styleFail.Render), e.Error())
	}
}
