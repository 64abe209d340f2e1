// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
	"github.com/techSaswata/mentiby-admin/internal/domain/view"
)

// LeaderboardHandler handles leaderboard view requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// leaderboardResponse carries the view plus the criteria that produced it.
type leaderboardResponse struct {
	Criteria view.Criteria       `json:"criteria"`
	Entries  []model.RankedEntry `json:"entries"`
	Total    int                 `json:"total"`
}

// HandleGetLeaderboard handles GET /leaderboard requests. Query
// parameters replace the active criteria; a request without any
// parameter clears them. cohort_type must be one of the enumerated
// cohort types the filter UI offers.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	if ct := q.Get("cohort_type"); ct != "" && !model.IsKnownCohortType(ct) {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: unknown cohort_type %q", ErrBadRequest, ct))
		return
	}
	criteria := view.Criteria{
		CohortType:      q.Get("cohort_type"),
		CohortSubstring: q.Get("cohort_substr"),
		Search:          q.Get("q"),
	}

	entries := h.deps.SetCriteria(criteria)
	writeJSON(w, http.StatusOK, leaderboardResponse{
		Criteria: criteria,
		Entries:  entries,
		Total:    h.deps.Status().TotalEntries,
	})
}

// HandleGetFull handles GET /leaderboard/full requests, returning the
// canonical ranked sequence regardless of the active criteria.
func (h *LeaderboardHandler) HandleGetFull(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Snapshot())
}
