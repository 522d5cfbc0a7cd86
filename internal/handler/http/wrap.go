package http

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
)

// unknownClient identifies callers whose address cannot be determined.
// They all share one rate-limit bucket.
const unknownClient = "unknown"

// Result is what a business handler produces on success. A zero Status
// means 200.
type Result struct {
	Status  int
	Data    any
	Message string
}

type handlerFunc func(r *http.Request) (Result, error)

// wrap turns fn into an [http.HandlerFunc] that invokes fn and writes the
// response envelope. fn never writes to the response itself; every error it
// returns, and any panic, ends up as an error envelope.
func (h *Handler) wrap(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		result, err := invoke(fn, r)
		if err != nil {
			h.fail(w, r, err, start)
			return
		}

		status := result.Status
		if status == 0 {
			status = http.StatusOK
		}
		if _, err = utils.WriteSuccess(w, status, result.Data, result.Message); err != nil {
			logger.FromRequest(r).Err(err).Msg("error writing response")
			return
		}

		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// invoke runs fn and converts a panic into an internal error.
func invoke(fn handlerFunc, r *http.Request) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = apierr.Internal(fmt.Errorf("%w: %v", ErrHandlerPanicked, rec))
		}
	}()
	return fn(r)
}

// fail logs err with everything needed to debug it and writes the error
// envelope the client is allowed to see.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	apiErr := h.publicError(toAPIError(err))

	log := logger.FromRequest(r)
	event := log.Warn()
	if apiErr.Status() >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", apiErr.Status()).
		Str("code", apiErr.Code()).
		Dur("duration", time.Since(start)).
		Msg("request failed")

	if _, writeErr := utils.WriteError(w, apiErr); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}

// publicError hides the text of unanticipated failures in production.
func (h *Handler) publicError(e *apierr.Error) *apierr.Error {
	if h.production && e.Kind() == apierr.KindInternal && e.Unwrap() != nil {
		return apierr.New(apierr.MsgInternal, e.Status(), e.Code())
	}
	return e
}

// clientIdentifier keys the rate limiter: the first X-Forwarded-For entry
// when the proxy is trusted, then the remote host, then [unknownClient].
func (h *Handler) clientIdentifier(r *http.Request) string {
	if h.trustForwardedFor {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}

	if r.RemoteAddr != "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "" {
			return host
		}
	}

	return unknownClient
}
