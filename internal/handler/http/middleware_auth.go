package http

import (
	"net/http"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/utils"
)

// auth is an HTTP middleware that enforces JWT bearer authentication.
//
// It reads the "Authorization: Bearer <token>" header, validates the token
// via [service.AuthService.ParseToken] and stores the subject's id and email
// in the request context (see [utils.WithUser]) before delegating to next.
//
// Requests without a header, with a malformed header, or with a token that
// fails verification are answered with a 401 envelope.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			h.writeError(w, r, apierr.Authentication(MsgNoToken))
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			h.writeError(w, r, apierr.Authentication(MsgInvalidToken))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("error occurred during parsing token")
			h.writeError(w, r, toAPIError(err))
			return
		}

		ctx = utils.WithUser(ctx, token.UserID, token.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeError writes an error envelope from middleware, outside [Handler.wrap].
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, e *apierr.Error) {
	if _, err := utils.WriteError(w, h.publicError(e)); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}
