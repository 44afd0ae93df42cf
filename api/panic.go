package api

import (
	"net/http"

	"github.com/kilianp07/skejul/core/monitoring"
)

// ReportPanics sends handler panics to the monitor and re-panics so an
// outer recoverer can answer the request.
func ReportPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v != http.ErrAbortHandler {
					monitoring.CapturePanic(v, map[string]string{"method": r.Method, "path": r.URL.Path})
				}
				panic(v)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
