package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// withMetrics records request count and latency labelled with the chi route
// pattern, so /api/items/{id} is one series no matter the id.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrapResponseWriter(w)

		next.ServeHTTP(rw, r)

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		h.metrics.observe(r.Method, route, rw.statusCode(), time.Since(start))
	})
}
