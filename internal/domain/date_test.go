package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid date", "2025-01-15", false},
		{"leap day", "2024-02-29", false},
		{"invalid leap day", "2025-02-29", true},
		{"wrong layout", "15/01/2025", true},
		{"month out of range", "2025-13-01", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, d.String())
		})
	}
}

func TestNewDate(t *testing.T) {
	t.Parallel()
	instant := time.Date(2025, time.January, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Date("2025-01-15"), NewDate(instant))
}

func TestDate_Comparisons(t *testing.T) {
	t.Parallel()
	a := Date("2025-01-15")
	b := Date("2025-02-01")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))

	// Lexicographic order on the ISO layout is chronological order across
	// month and year boundaries.
	assert.True(t, Date("2024-12-31").Before(Date("2025-01-01")))
	assert.True(t, Date("2025-09-30").Before(Date("2025-10-01")))
}

func TestDate_Weekday(t *testing.T) {
	t.Parallel()
	d := Date("2025-01-15")
	name, err := d.Weekday()
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", name)

	_, err = Date("not-a-date").Weekday()
	require.Error(t, err)
}

func TestDate_WithinRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name             string
		date, start, end Date
		want             bool
	}{
		{"inside bounded range", "2025-01-15", "2025-01-01", "2025-01-31", true},
		{"on start boundary", "2025-01-01", "2025-01-01", "2025-01-31", true},
		{"on end boundary", "2025-01-31", "2025-01-01", "2025-01-31", true},
		{"day after end", "2025-02-01", "2025-01-01", "2025-01-31", false},
		{"day before start", "2024-12-31", "2025-01-01", "2025-01-31", false},
		{"open-ended after start", "2030-06-01", "2025-01-01", "", true},
		{"open-ended on start", "2025-01-01", "2025-01-01", "", true},
		{"open-ended before start", "2024-06-01", "2025-01-01", "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.date.WithinRange(tt.start, tt.end))
		})
	}
}
