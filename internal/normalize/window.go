package normalize

import (
	"math"
	"time"

	"github.com/AngelCh415/adreport-proxy/internal/models"
)

const (
	MinRangeDays = 1
	MaxRangeDays = 90
)

// Window is an inclusive instant range, already widened to whole days.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds [start 00:00:00.000, end 23:59:59.999] in UTC.
// A nil end means today (as given by now).
func NewWindow(start time.Time, end *time.Time, now time.Time) Window {
	e := now
	if end != nil {
		e = *end
	}
	return Window{Start: startOfDay(start), End: endOfDay(e)}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveRangeDays returns the number of days to request upstream. Without a
// start the fallback is returned as is. With one, it is the whole number of
// days between start and end (or now), plus one, clamped to 1..90.
func ResolveRangeDays(start, end *time.Time, fallback int, now time.Time) int {
	if start == nil {
		return fallback
	}
	e := now
	if end != nil {
		e = *end
	}
	diff := e.Sub(*start)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours()/24)) + 1
	if days < MinRangeDays {
		return MinRangeDays
	}
	if days > MaxRangeDays {
		return MaxRangeDays
	}
	return days
}

// WindowCovered reports whether an upstream report of the last days days,
// today included, reaches back to start. When it does not, the local window
// filter runs on incomplete data.
func WindowCovered(days int, start, now time.Time) bool {
	if days < 1 {
		return false
	}
	earliest := startOfDay(now).AddDate(0, 0, -(days - 1))
	return !startOfDay(start).Before(earliest)
}

// FilterWindow keeps records whose ShortDate falls inside w. Records with a
// missing or unparsable date are dropped. A nil window keeps everything.
func FilterWindow(records []models.RawRecord, w *Window) []models.RawRecord {
	if w == nil {
		return records
	}
	out := make([]models.RawRecord, 0, len(records))
	for _, r := range records {
		t, ok := parseShortDate(r.ShortDate)
		if !ok || !w.Contains(t) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Millisecond)
}
