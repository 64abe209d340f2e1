// Package ranking assigns dense leaderboard ranks to score records.
//
// Ranking is a pure function of its input: no I/O, no hidden state.
// Callers are expected to normalize records first (see model.Normalize).
package ranking

import (
	"sort"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
)

// Rank sorts records by XP descending, ties broken by UpdatedAt
// ascending, and assigns dense 1-based ranks. Equal XP still yields
// distinct successive ranks; the earlier update wins the better rank.
// The input slice is not mutated.
func Rank(records []model.ScoreRecord) []model.RankedEntry {
	sorted := make([]model.ScoreRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].XP != sorted[j].XP {
			return sorted[i].XP > sorted[j].XP
		}
		return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
	})

	entries := make([]model.RankedEntry, len(sorted))
	for i, r := range sorted {
		entries[i] = model.RankedEntry{ScoreRecord: r, Rank: i + 1}
	}
	return entries
}
