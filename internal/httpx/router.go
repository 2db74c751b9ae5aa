package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/adreport-proxy/internal/apperrors"
	"github.com/AngelCh415/adreport-proxy/internal/ingest"
	"github.com/AngelCh415/adreport-proxy/internal/metrics"
	"github.com/AngelCh415/adreport-proxy/internal/utils"
)

type Options struct {
	APIKey           string
	AllowOrigin      string
	DefaultRangeDays int
	Gatherer         prometheus.Gatherer
}

func NewRouter(log *slog.Logger, etl *ingest.ETL, rec *metrics.Recorder, opts Options) http.Handler {
	binder := newParamBinder(opts.DefaultRangeDays)

	mux := chi.NewRouter()
	mux.Use(middlewares(log, rec, opts.AllowOrigin)...)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	if opts.Gatherer != nil {
		mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.With(utils.APIKey(opts.APIKey)).Get("/api/report", func(w http.ResponseWriter, r *http.Request) {
		q, err := binder.bindReport(r)
		if err != nil {
			apperrors.WriteError(w, err)
			return
		}
		rep, err := etl.Run(r.Context(), q)
		if err != nil {
			var ue *ingest.UpstreamError
			if errors.As(err, &ue) {
				err = apperrors.Upstream(ue)
			}
			apperrors.WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	})

	return mux
}

// middlewares is the chain every route runs through. Metrics sits outside
// Recovery so recovered panics are counted as 500s.
func middlewares(log *slog.Logger, rec *metrics.Recorder, allowOrigin string) chi.Middlewares {
	return chi.Middlewares{
		utils.RequestID,
		utils.Logger(log),
		utils.Metrics(rec),
		utils.Recovery(log),
		utils.CORS(allowOrigin),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
