package ui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
		{-1024, "-1.0 KiB"},
		{-1, "-1 B"},
		{math.MinInt64, "-8.0 EiB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.input))
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"4096", 4096},
		{"10MB", 10_000_000},
		{"1 KiB", 1024},
		{"2GiB", 2 << 30},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBytes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBytes_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "12QB"} {
		_, err := ParseBytes(input)
		assert.Error(t, err, input)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1000, "-1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCount(tt.input))
		})
	}
}

func TestFormatIndices(t *testing.T) {
	tests := []struct {
		input []int
		want  string
	}{
		{nil, ""},
		{[]int{4}, "4"},
		{[]int{0, 1, 2}, "0-2"},
		{[]int{0, 1, 2, 5, 7, 8, 9}, "0-2, 5, 7-9"},
		{[]int{1, 3, 5}, "1, 3, 5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIndices(tt.input))
		})
	}
}
