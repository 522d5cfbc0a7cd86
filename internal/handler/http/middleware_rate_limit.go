package http

import (
	"net/http"
	"time"
)

// rateLimit rejects callers over their request budget with a 429 envelope.
// It is mounted ahead of auth so that rejected tokens count against the
// budget too.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.limiter.Check(r.Context(), h.clientIdentifier(r)); err != nil {
			h.metrics.rateLimited.Inc()
			h.fail(w, r, err, time.Now())
			return
		}
		next.ServeHTTP(w, r)
	})
}
