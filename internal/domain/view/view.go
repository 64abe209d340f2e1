// Package view derives the displayed subset of a ranked leaderboard.
//
// A view is a pure function of the canonical ranked sequence and the
// active criteria. It never re-sorts and never touches rank values:
// the output is always a subsequence of the input.
package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
)

// Criteria narrows the displayed set. Empty fields match everything;
// non-empty fields are combined conjunctively.
type Criteria struct {
	// CohortType filters by exact cohort type equality, e.g. "MERN".
	CohortType string `json:"cohort_type,omitempty"`

	// CohortSubstring filters by case-sensitive substring containment
	// on the cohort number, e.g. "2.0".
	CohortSubstring string `json:"cohort_substring,omitempty"`

	// Search matches case-insensitively against the string form of any
	// field on an entry; a hit on a single field includes the entry.
	Search string `json:"search,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.CohortType == "" && c.CohortSubstring == "" && c.Search == ""
}

// Merge returns c with every criterion set on o replacing the
// corresponding one on c. Unset fields on o leave c's values intact;
// to clear a criterion, replace the whole Criteria instead.
func (c Criteria) Merge(o Criteria) Criteria {
	if o.CohortType != "" {
		c.CohortType = o.CohortType
	}
	if o.CohortSubstring != "" {
		c.CohortSubstring = o.CohortSubstring
	}
	if o.Search != "" {
		c.Search = o.Search
	}
	return c
}

// Apply returns the entries matching every set criterion, preserving
// the input's relative order and rank values. The input is not mutated.
func Apply(entries []model.RankedEntry, c Criteria) []model.RankedEntry {
	if c.IsZero() {
		out := make([]model.RankedEntry, len(entries))
		copy(out, entries)
		return out
	}

	search := strings.ToLower(c.Search)
	out := make([]model.RankedEntry, 0, len(entries))
	for _, e := range entries {
		if c.CohortType != "" && e.CohortType != c.CohortType {
			continue
		}
		if c.CohortSubstring != "" && !strings.Contains(e.CohortNumber, c.CohortSubstring) {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesSearch reports whether the lowered term is contained in the
// string form of any single field. Every field participates, rank, XP
// and timestamp included; a term never matches across field boundaries.
func matchesSearch(e model.RankedEntry, term string) bool {
	fields := [...]string{
		strconv.Itoa(e.Rank),
		e.ParticipantID,
		e.FullName,
		e.Email,
		e.CohortType,
		e.CohortNumber,
		strconv.Itoa(e.XP),
		e.UpdatedAt.Format(time.RFC3339),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
