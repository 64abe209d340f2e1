// Package model contains the core data shapes shared across the application.
package model

import (
	"strings"
	"time"
)

// Known cohort types. CohortType on a record is free-form so that new
// cohorts flow through display without a deploy; these are the values
// the admin UI offers as filters.
const (
	CohortBasic     = "Basic"
	CohortPlacement = "Placement"
	CohortMERN      = "MERN"
	CohortFullstack = "Fullstack"
)

// KnownCohortTypes lists the cohort types the filter UI exposes.
func KnownCohortTypes() []string {
	return []string{CohortBasic, CohortPlacement, CohortMERN, CohortFullstack}
}

// IsKnownCohortType reports whether t is one of the enumerated cohort types.
func IsKnownCohortType(t string) bool {
	switch t {
	case CohortBasic, CohortPlacement, CohortMERN, CohortFullstack:
		return true
	}
	return false
}

// ScoreRecord is one participant's XP row as fetched from the store.
type ScoreRecord struct {
	ParticipantID string    `json:"participant_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	CohortType    string    `json:"cohort_type"`
	CohortNumber  string    `json:"cohort_number"`
	XP            int       `json:"xp"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RankedEntry is a ScoreRecord with its dense 1-based rank attached.
type RankedEntry struct {
	ScoreRecord
	Rank int `json:"rank"`
}

// Status is the coordinator state exposed to the presentation layer.
type Status struct {
	State          string    `json:"state"`
	LastError      string    `json:"last_error,omitempty"`
	LastFetchAt    time.Time `json:"last_fetch_at"`
	TotalEntries   int       `json:"total_entries"`
	VisibleEntries int       `json:"visible_entries"`
}

// Normalize drops records the ranking layer must never see: missing
// participant id or negative XP. The store should not produce either,
// but it is an external collaborator and its guarantees are not ours.
func Normalize(records []ScoreRecord) []ScoreRecord {
	out := make([]ScoreRecord, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.ParticipantID) == "" {
			continue
		}
		if r.XP < 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}
