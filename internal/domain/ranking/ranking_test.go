package ranking_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
	"github.com/techSaswata/mentiby-admin/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRank(t *testing.T) {
	Convey("Given a set of score records", t, func() {
		t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		t1 := t0.Add(time.Hour)
		t2 := t0.Add(2 * time.Hour)

		Convey("When ranking an empty input", func() {
			Convey("Then the output is empty", func() {
				So(ranking.Rank(nil), ShouldBeEmpty)
				So(ranking.Rank([]model.ScoreRecord{}), ShouldBeEmpty)
			})
		})

		Convey("When ranking records with distinct scores", func() {
			records := []model.ScoreRecord{
				{ParticipantID: "low", XP: 10, UpdatedAt: t0},
				{ParticipantID: "high", XP: 900, UpdatedAt: t1},
				{ParticipantID: "mid", XP: 500, UpdatedAt: t2},
			}

			got := ranking.Rank(records)

			Convey("Then ranks are dense, 1-based, descending by XP", func() {
				So(got, ShouldHaveLength, 3)
				So(got[0].ParticipantID, ShouldEqual, "high")
				So(got[0].Rank, ShouldEqual, 1)
				So(got[1].ParticipantID, ShouldEqual, "mid")
				So(got[1].Rank, ShouldEqual, 2)
				So(got[2].ParticipantID, ShouldEqual, "low")
				So(got[2].Rank, ShouldEqual, 3)
			})

			Convey("Then the input slice is not mutated", func() {
				So(records[0].ParticipantID, ShouldEqual, "low")
			})
		})

		Convey("When two records tie on XP", func() {
			records := []model.ScoreRecord{
				{ParticipantID: "later", XP: 500, UpdatedAt: t1},
				{ParticipantID: "earlier", XP: 500, UpdatedAt: t0},
				{ParticipantID: "top", XP: 900, UpdatedAt: t2},
			}

			got := ranking.Rank(records)

			Convey("Then the earlier update wins the better rank", func() {
				So(got[0].ParticipantID, ShouldEqual, "top")
				So(got[0].Rank, ShouldEqual, 1)
				So(got[1].ParticipantID, ShouldEqual, "earlier")
				So(got[1].Rank, ShouldEqual, 2)
				So(got[2].ParticipantID, ShouldEqual, "later")
				So(got[2].Rank, ShouldEqual, 3)
			})
		})

		Convey("When ranking a shuffled dataset twice", func() {
			rng := rand.New(rand.NewSource(42))
			records := make([]model.ScoreRecord, 100)
			for i := range records {
				records[i] = model.ScoreRecord{
					ParticipantID: string(rune('a'+i%26)) + string(rune('0'+i/26)),
					XP:            rng.Intn(50),
					UpdatedAt:     t0.Add(time.Duration(rng.Intn(1000)) * time.Minute),
				}
			}

			first := ranking.Rank(records)
			second := ranking.Rank(records)

			Convey("Then ranking is deterministic and idempotent", func() {
				So(second, ShouldResemble, first)
			})

			Convey("Then ranks are a permutation of 1..N", func() {
				seen := make(map[int]bool, len(first))
				for _, e := range first {
					seen[e.Rank] = true
				}
				So(len(seen), ShouldEqual, len(records))
				for i := 1; i <= len(records); i++ {
					So(seen[i], ShouldBeTrue)
				}
			})

			Convey("Then order is non-increasing by XP", func() {
				for i := 1; i < len(first); i++ {
					So(first[i].XP, ShouldBeLessThanOrEqualTo, first[i-1].XP)
					if first[i].XP == first[i-1].XP {
						So(first[i-1].UpdatedAt.After(first[i].UpdatedAt), ShouldBeFalse)
					}
				}
			})
		})
	})
}
