package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shard-legends/loadout-service/pkg/metrics"
)

// Metrics records request counts and durations labelled by the chi route
// pattern, so session ids never become label values. Unmatched routes are
// recorded as "unmatched".
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				duration := time.Since(start).Seconds()
				code := ww.Status()
				if code == 0 {
					code = http.StatusOK
				}

				metrics.RecordHTTPRequest(r.Method, routePattern(r), strconv.Itoa(code), duration)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return "unmatched"
}
