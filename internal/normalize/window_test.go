package normalize

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/adreport-proxy/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func januaryRecords() []models.RawRecord {
	var out []models.RawRecord
	for d := 1; d <= 10; d++ {
		out = append(out, models.RawRecord{ShortDate: fmt.Sprintf("01/%02d/2024", d), CampaignName: "C"})
	}
	return out
}

func TestFilterWindowInclusive(t *testing.T) {
	now := day("2024-02-01")
	w := NewWindow(day("2024-01-03"), ptr(day("2024-01-05")), now)

	got := FilterWindow(januaryRecords(), &w)

	require.Len(t, got, 3)
	assert.Equal(t, "01/03/2024", got[0].ShortDate)
	assert.Equal(t, "01/04/2024", got[1].ShortDate)
	assert.Equal(t, "01/05/2024", got[2].ShortDate)
}

func TestFilterWindowNilKeepsAll(t *testing.T) {
	recs := append(januaryRecords(), models.RawRecord{ShortDate: "bad"})
	assert.Len(t, FilterWindow(recs, nil), 11)
}

func TestFilterWindowDropsUnparsable(t *testing.T) {
	now := day("2024-02-01")
	w := NewWindow(day("2024-01-01"), nil, now)
	recs := []models.RawRecord{
		{ShortDate: ""},
		{ShortDate: "x/y/z"},
		{ShortDate: "1/2"},
		{ShortDate: "2024-01-05"},
		{ShortDate: "1/15/2024"},
	}

	got := FilterWindow(recs, &w)

	require.Len(t, got, 1)
	assert.Equal(t, "1/15/2024", got[0].ShortDate)
}

func TestNewWindowDefaultsEndToNow(t *testing.T) {
	now := time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC)
	w := NewWindow(day("2024-01-05"), nil, now)

	assert.Equal(t, day("2024-01-05"), w.Start)
	assert.Equal(t, time.Date(2024, 1, 7, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)

	got := FilterWindow(januaryRecords(), &w)
	require.Len(t, got, 3)
	assert.Equal(t, "01/07/2024", got[2].ShortDate)
}

func TestResolveRangeDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		fallback int
		want     int
	}{
		{name: "no start uses fallback", fallback: 7, want: 7},
		{name: "no start passes fallback untouched", fallback: 120, want: 120},
		{name: "start and end", start: ptr(day("2024-01-01")), end: ptr(day("2024-01-10")), want: 10},
		{name: "same day", start: ptr(day("2024-01-01")), end: ptr(day("2024-01-01")), want: 1},
		{name: "end before start", start: ptr(day("2024-01-10")), end: ptr(day("2024-01-01")), want: 10},
		{name: "clamped to 90", start: ptr(now.AddDate(0, 0, -95)), want: 90},
		{name: "open end counts up to now", start: ptr(day("2024-06-10")), want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRangeDays(tt.start, tt.end, tt.fallback, now))
		})
	}
}

func TestWindowCovered(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, WindowCovered(7, day("2024-01-04"), now))
	assert.False(t, WindowCovered(7, day("2024-01-03"), now))
	assert.False(t, WindowCovered(0, day("2024-01-10"), now))
}

// A closed window in the past resolves to a day count measured between its own
// bounds, but upstream counts days back from today, so the data is short.
func TestResolvedDaysMayNotCoverPastWindow(t *testing.T) {
	now := day("2024-03-01")
	start, end := day("2024-01-01"), day("2024-01-10")

	days := ResolveRangeDays(&start, &end, 7, now)

	assert.Equal(t, 10, days)
	assert.False(t, WindowCovered(days, start, now))
}

func TestOpenWindowIsCovered(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	for back := 0; back < MaxRangeDays-1; back++ {
		start := day("2024-03-01").AddDate(0, 0, -back)
		days := ResolveRangeDays(&start, nil, 7, now)
		assert.True(t, WindowCovered(days, start, now), "start %s days %d", start.Format("2006-01-02"), days)
	}
}
