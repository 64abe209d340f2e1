package model_test

import (
	"testing"
	"time"

	"github.com/techSaswata/mentiby-admin/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCohortTypes(t *testing.T) {
	Convey("Given the enumerated cohort types", t, func() {
		Convey("Then the known set should be recognized", func() {
			for _, ct := range model.KnownCohortTypes() {
				So(model.IsKnownCohortType(ct), ShouldBeTrue)
			}
		})

		Convey("Then unknown values should not be recognized", func() {
			So(model.IsKnownCohortType("DevOps"), ShouldBeFalse)
			So(model.IsKnownCohortType(""), ShouldBeFalse)
			So(model.IsKnownCohortType("mern"), ShouldBeFalse)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given raw records from the store", t, func() {
		now := time.Now()
		records := []model.ScoreRecord{
			{ParticipantID: "p1", XP: 100, UpdatedAt: now},
			{ParticipantID: "  ", XP: 200, UpdatedAt: now},
			{ParticipantID: "p2", XP: -5, UpdatedAt: now},
			{ParticipantID: "p3", XP: 0, UpdatedAt: now},
		}

		Convey("When normalized", func() {
			got := model.Normalize(records)

			Convey("Then malformed records are dropped", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].ParticipantID, ShouldEqual, "p1")
				So(got[1].ParticipantID, ShouldEqual, "p3")
			})

			Convey("Then the input is not mutated", func() {
				So(records, ShouldHaveLength, 4)
			})
		})

		Convey("When normalizing an empty slice", func() {
			Convey("Then the result is empty, not nil-panicking", func() {
				So(model.Normalize(nil), ShouldBeEmpty)
			})
		})
	})
}
