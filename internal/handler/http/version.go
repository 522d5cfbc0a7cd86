package http

import (
	"net/http"
)

func (h *Handler) getServerVersion(r *http.Request) (Result, error) {
	return Result{Data: h.services.AppInfoService.GetAppVersion(r.Context())}, nil
}
