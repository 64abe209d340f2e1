package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a new metrics manager", t, func() {
		Convey("When created with default options", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(WithPrometheusRegistry(reg))

			Convey("Then it should not be nil", func() {
				So(m, ShouldNotBeNil)
			})

			Convey("Then it should register metrics on the registry", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When created with a custom namespace", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace("custom"),
				WithSubsystem("board"),
			)
			m.refreshesTotal.WithLabelValues("manual").Inc()

			Convey("Then metric names should carry the namespace", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if strings.HasPrefix(f.GetName(), "custom_board_") {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When created with custom histogram buckets", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then it should not be nil", func() {
				So(m, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording refresh metrics", func() {
			So(func() {
				RecordRefresh("manual")
				RecordRefresh("notify")
				RecordRefresh("staleness")
				RecordRefresh("update")
				RecordRefreshCoalesced()
				RecordFetchFailure()
				RecordFetchDuration(12.5)
				UpdateLastFetchTime(1.7e9)
			}, ShouldNotPanic)
		})

		Convey("When recording notification metrics", func() {
			So(func() {
				RecordNotifySignal()
				RecordNotifyFire()
			}, ShouldNotPanic)
		})

		Convey("When recording staleness metrics", func() {
			So(func() {
				RecordStalenessProbe()
				RecordStalenessTrigger()
			}, ShouldNotPanic)
		})

		Convey("When recording update job metrics", func() {
			So(func() {
				RecordUpdateJob("success")
				RecordUpdateJob("failure")
				RecordUpdateJobDuration(420.0)
			}, ShouldNotPanic)
		})

		Convey("When updating state gauges", func() {
			So(func() {
				UpdateLeaderboardSize(120)
				UpdateViewSize(3)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("leaderboard", "GET", "200")
				RecordHTTPRequestDuration("leaderboard", "GET", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("Then the registry should be available for serving", func() {
			So(GetRegistry(), ShouldNotBeNil)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
