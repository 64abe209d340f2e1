// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	service "github.com/techSaswata/mentiby-admin/internal/app"
)

// UpdateHandler handles XP recomputation requests.
type UpdateHandler struct {
	deps Dependencies
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(deps Dependencies) *UpdateHandler {
	return &UpdateHandler{deps: deps}
}

// HandleUpdate handles POST /update requests. Duplicate triggers while
// an update is running are rejected so the UI can disable the button.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.TriggerUpdate(r.Context()); err != nil {
		switch {
		case errors.Is(err, service.ErrUpdateInFlight):
			writeError(w, http.StatusConflict, "update_in_flight", err)
		case errors.Is(err, service.ErrNoUpdateJob):
			writeError(w, http.StatusNotImplemented, "update_unconfigured", err)
		default:
			writeError(w, http.StatusBadGateway, "update_failed", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Status())
}
