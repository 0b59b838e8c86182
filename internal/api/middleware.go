package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/harrylevesque/tododemo/internal/metrics"
	"github.com/harrylevesque/tododemo/internal/utils"
	"github.com/rs/zerolog"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument logs every routed request and, when m is non-nil, records it
// in the request metrics under its route template.
func Instrument(logger zerolog.Logger, m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			if m != nil {
				m.Observe(route, r.Method, rec.status, elapsed)
			}
			logger.Info().
				Str(utils.FieldMethod, r.Method).
				Str(utils.FieldPath, r.URL.Path).
				Int(utils.FieldStatus, rec.status).
				Dur(utils.FieldDuration, elapsed).
				Msg("request")
		})
	}
}
