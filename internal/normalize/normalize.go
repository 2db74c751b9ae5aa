// Package normalize turns raw upstream report rows into sorted, strictly typed
// records suitable for incremental sync. Nothing here does I/O.
package normalize

import "github.com/AngelCh415/adreport-proxy/internal/models"

type Result struct {
	Records  []models.NormalizedRecord
	Total    int
	Filtered int
}

// Normalize filters raw by w (nil keeps everything), transforms the survivors
// and sorts them by date.
func Normalize(raw []models.RawRecord, w *Window) Result {
	kept := FilterWindow(raw, w)
	recs := make([]models.NormalizedRecord, 0, len(kept))
	for _, r := range kept {
		recs = append(recs, Transform(r))
	}
	SortRecords(recs)
	return Result{Records: recs, Total: len(raw), Filtered: len(kept)}
}
