package notify_test

import (
	"errors"
	"testing"

	"github.com/techSaswata/mentiby-admin/internal/adapters/notify"
	"github.com/techSaswata/mentiby-admin/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestNewPGListenerValidation(t *testing.T) {
	Convey("Given the PGListener constructor", t, func() {
		Convey("When the DSN is empty", func() {
			_, err := notify.NewPGListener("  ", "onboarding_changes")

			Convey("Then it should reject it", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, notify.ErrInvalidDSN), ShouldBeTrue)
			})
		})

		Convey("When the channel is empty", func() {
			_, err := notify.NewPGListener("postgres://localhost/mentiby", "")

			Convey("Then it should reject it", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, notify.ErrInvalidChannel), ShouldBeTrue)
			})
		})
	})
}
