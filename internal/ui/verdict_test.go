package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/chunkcheck/internal/check"
)

func testConfig(t *testing.T) check.Config {
	t.Helper()
	cfg, err := check.New().InDir("/c").FileSize(3072).TotalChunks(3).Build()
	require.NoError(t, err)
	return cfg
}

func TestWriteVerdict_Plain(t *testing.T) {
	cfg := testConfig(t)
	tests := []struct {
		name  string
		err   error
		wants []string
	}{
		{
			name:  "ok",
			err:   nil,
			wants: []string{"OK", "/c", "3 chunks", "3.0 KiB"},
		},
		{
			name:  "missing",
			err:   &check.MissingChunksError{Indices: []int{0, 1, 2}},
			wants: []string{"MISSING", "3 of 3 chunks missing: 0-2"},
		},
		{
			name:  "size",
			err:   &check.SizeMismatchError{Expected: 3072, Observed: 3000},
			wants: []string{"SIZE", "expected 3.0 KiB (3,072 bytes)", "(3,000 bytes)"},
		},
		{
			name:  "io",
			err:   &check.IOError{Op: "open", Path: "/c", Err: errors.New("permission denied")},
			wants: []string{"IO", "open /c: permission denied"},
		},
		{
			name:  "config",
			err:   &check.ConfigError{Field: "dir", Reason: "is not set"},
			wants: []string{"CONFIG", "dir is not set"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteVerdict(&buf, cfg, tt.err, false)
			for _, want := range tt.wants {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWriteVerdict_SkipSize(t *testing.T) {
	cfg, err := check.New().InDir("/c").TotalChunks(2).SkipSizeCheck().Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteVerdict(&buf, cfg, nil, false)
	assert.Contains(t, buf.String(), "size not checked")
}

func TestNewReport(t *testing.T) {
	cfg := testConfig(t)

	ok := NewReport(cfg, nil)
	assert.True(t, ok.OK)
	assert.Empty(t, ok.Code)

	missing := NewReport(cfg, &check.MissingChunksError{Indices: []int{2}})
	assert.False(t, missing.OK)
	assert.Equal(t, check.CodeMissingChunks, missing.Code)
	assert.Equal(t, []int{2}, missing.Missing)
	assert.Nil(t, missing.Expected)

	size := NewReport(cfg, &check.SizeMismatchError{Expected: 10, Observed: 0})
	require.NotNil(t, size.Expected)
	require.NotNil(t, size.Observed)
	assert.Equal(t, int64(10), *size.Expected)
	assert.Equal(t, int64(0), *size.Observed)

	plain := NewReport(cfg, errors.New("context canceled"))
	assert.False(t, plain.OK)
	assert.Empty(t, plain.Code)
	assert.Equal(t, "context canceled", plain.Error)
}

func TestWriteJSON(t *testing.T) {
	cfg := testConfig(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewReport(cfg, &check.SizeMismatchError{Expected: 3072, Observed: 0})))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, false, rec["ok"])
	assert.Equal(t, "size_mismatch", rec["code"])
	assert.InDelta(t, 3072, rec["expected"], 0)
	assert.InDelta(t, 0, rec["observed"], 0)
	assert.NotContains(t, rec, "missing")
}
