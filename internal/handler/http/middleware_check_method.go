// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/zero-waste-market/internal/apierr"
)

// routeNotFound answers both unknown paths and known paths requested with
// an unsupported method. Registering it as the router's NotFound and
// MethodNotAllowed handler means a caller cannot tell which routes exist
// by probing methods: everything unmatched is a 404 NOT_FOUND_ERROR
// envelope.
func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, apierr.NotFound(MsgRouteNotFound))
}
