package casenumber

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		suffix int
		want   string
	}{
		{"zero suffix pads to four digits", 2026, 0, "IMM-2026-0000"},
		{"small suffix pads", 2026, 7, "IMM-2026-0007"},
		{"mid suffix", 2025, 123, "IMM-2025-0123"},
		{"max suffix", 2024, 9999, "IMM-2024-9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.year, tt.suffix))
		})
	}
}

func TestGenerate(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^IMM-2026-\d{4}$`)

	for i := 0; i < 200; i++ {
		got := Generate(now)
		require.Regexp(t, pattern, got)
	}
}

func TestGenerateUsesCalendarYear(t *testing.T) {
	for _, year := range []int{2023, 2026, 2031} {
		now := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		assert.Contains(t, Generate(now), fmt.Sprintf("-%04d-", year))
	}
}
