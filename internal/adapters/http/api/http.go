// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
	"github.com/techSaswata/mentiby-admin/internal/domain/view"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the coordinator.
type Dependencies interface {
	// Read operations expose the canonical sequence and the derived view.
	Snapshot() []model.RankedEntry
	View() []model.RankedEntry
	Criteria() view.Criteria

	// SetCriteria replaces the active criteria and returns the
	// recomputed view.
	SetCriteria(criteria view.Criteria) []model.RankedEntry

	// Refresh forces a canonical refetch; concurrent calls coalesce.
	Refresh(ctx context.Context) error

	// TriggerUpdate runs the external XP recomputation, then refetches.
	TriggerUpdate(ctx context.Context) error

	// Status reports coordinator state for the UI.
	Status() model.Status
}

// Server wires HTTP routes for the leaderboard API.
type Server struct {
	healthHandler      *HealthHandler
	statusHandler      *StatusHandler
	leaderboardHandler *LeaderboardHandler
	refreshHandler     *RefreshHandler
	updateHandler      *UpdateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statusHandler:      NewStatusHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		refreshHandler:     NewRefreshHandler(deps),
		updateHandler:      NewUpdateHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleStatus, "status"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/leaderboard/full", MetricsMiddleware(s.leaderboardHandler.HandleGetFull, "leaderboard_full"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
	mux.HandleFunc("/update", MetricsMiddleware(s.updateHandler.HandleUpdate, "update"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
