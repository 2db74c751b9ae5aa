package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/AngelCh415/adreport-proxy/internal/metrics"
	"github.com/AngelCh415/adreport-proxy/internal/models"
	"github.com/AngelCh415/adreport-proxy/internal/normalize"
)

const fetchedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Fetcher is the upstream side of the ETL; *Client satisfies it.
type Fetcher interface {
	FetchReport(ctx context.Context, advertiserID string, days int) ([]models.RawRecord, error)
}

type ETL struct {
	src Fetcher
	log *slog.Logger
	rec *metrics.Recorder
	now func() time.Time
}

func NewETL(src Fetcher, log *slog.Logger, rec *metrics.Recorder) *ETL {
	return &ETL{src: src, log: log, rec: rec, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (e *ETL) WithClock(now func() time.Time) *ETL {
	e.now = now
	return e
}

// Run fetches one advertiser report and normalizes it. The upstream day range
// is resolved from the query's window so that it is never narrower than the
// local filter, except when the window lies too far in the past (logged).
func (e *ETL) Run(ctx context.Context, q models.Query) (*models.Report, error) {
	now := e.now().UTC()
	days := normalize.ResolveRangeDays(q.StartDate, q.EndDate, q.RangeDays, now)

	var win *normalize.Window
	if q.StartDate != nil {
		w := normalize.NewWindow(*q.StartDate, q.EndDate, now)
		win = &w
		if !normalize.WindowCovered(days, *q.StartDate, now) {
			e.rec.WindowUncovered()
			e.log.WarnContext(ctx, "upstream range does not cover start_date",
				slog.String("advertiser_id", q.AdvertiserID),
				slog.Int("days", days),
				slog.String("start_date", q.StartDate.Format("2006-01-02")))
		}
	}

	start := time.Now()
	raw, err := e.src.FetchReport(ctx, q.AdvertiserID, days)
	if err != nil {
		e.rec.ObserveFetch(metrics.OutcomeFailure, time.Since(start))
		e.log.ErrorContext(ctx, "upstream fetch failed",
			slog.String("advertiser_id", q.AdvertiserID),
			slog.String("err", err.Error()))
		return nil, err
	}
	e.rec.ObserveFetch(metrics.OutcomeSuccess, time.Since(start))

	res := normalize.Normalize(raw, win)
	e.rec.ObserveRecords(res.Total, res.Filtered)
	e.log.InfoContext(ctx, "report normalized",
		slog.String("advertiser_id", q.AdvertiserID),
		slog.Int("days", days),
		slog.Int("total", res.Total),
		slog.Int("filtered", res.Filtered))

	return &models.Report{
		Success: true,
		Metadata: models.Metadata{
			AdvertiserID:    q.AdvertiserID,
			RangeDays:       days,
			FetchedAt:       e.now().UTC().Format(fetchedAtLayout),
			TotalRecords:    res.Total,
			FilteredRecords: res.Filtered,
			DateRange: models.DateRange{
				Start:         q.StartRaw,
				End:           q.EndRaw,
				RequestedDays: days,
			},
		},
		Records: res.Records,
	}, nil
}
