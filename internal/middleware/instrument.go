package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/yahtzee-go/internal/metrics"
)

// Instrument records request counts and latency per route template, so
// /table/players/alice/roll and /table/players/bob/roll share a series
func Instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := WrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			m.ObserveRequest(r.Method, routeTemplate(r), wrapped.status, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}
