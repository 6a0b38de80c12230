package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{
			name: "slash date with 24h time",
			text: "SUPERMART\n01/15/2024 14:30\nTOTAL: $5.50",
			want: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "date only anchors midnight",
			text: "Date: 01/15/2024",
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "dashed date",
			text: "1-5-2024",
			want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso date with seconds",
			text: "2024/1/5 09:05:30",
			want: time.Date(2024, 1, 5, 9, 5, 30, 0, time.UTC),
			ok:   true,
		},
		{
			name: "zero padded iso date",
			text: "2024-01-15",
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			// No layout accepts a two-digit year, so the match degrades
			// to absent instead of fabricating year 24.
			name: "two digit year degrades",
			text: "24-01-15",
			ok:   false,
		},
		{
			name: "day month year words",
			text: "15 January 2024",
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "month day comma year",
			text: "January 15, 2024 2:30 PM",
			want: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "lowercase meridiem",
			text: "01/15/2024 2:30 pm",
			want: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "time alone cannot anchor",
			text: "checkout at 14:30",
			ok:   false,
		},
		{
			name: "no date at all",
			text: "MILK 3.50\nBREAD 2.00",
			ok:   false,
		},
		{
			name: "empty text",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDateTime(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestExtractDateTimePriority(t *testing.T) {
	// When both a numeric and a written date are present, the numeric
	// family is earlier in the scan order and wins.
	got, ok := ExtractDateTime("March 3, 2023 somewhere\n01/15/2024 14:30")
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
}

func TestExtractDateTimeBadClockFallsBackToDate(t *testing.T) {
	// An unparseable clock string leaves the date-only anchor intact.
	got, ok := ExtractDateTime("01/15/2024 99:99")
	require.True(t, ok)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
}
