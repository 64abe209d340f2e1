package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewPostgres(t *testing.T) {
	Convey("Given the Postgres store constructor", t, func() {
		Convey("When the DSN is empty", func() {
			_, err := NewPostgres("   ")

			Convey("Then it should reject it", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrInvalidDSN), ShouldBeTrue)
			})
		})

		Convey("When created with defaults", func() {
			p, err := NewPostgres("postgres://localhost/mentiby")

			Convey("Then it should use the default table and timeout", func() {
				So(err, ShouldBeNil)
				So(p.table, ShouldEqual, "onboarding")
				So(p.timeout, ShouldEqual, 10*time.Second)
			})
		})

		Convey("When created with options", func() {
			p, err := NewPostgres("postgres://localhost/mentiby",
				WithTable("scores"),
				WithTimeout(2*time.Second),
			)

			Convey("Then the options should apply", func() {
				So(err, ShouldBeNil)
				So(p.table, ShouldEqual, "scores")
				So(p.timeout, ShouldEqual, 2*time.Second)
			})
		})
	})
}

func TestPostgresFetchAllConnectFailure(t *testing.T) {
	Convey("Given a store whose connection cannot be opened", t, func() {
		openErr := errors.New("no route to host")
		var opens int
		p, err := NewPostgres("postgres://localhost/mentiby",
			withOpenFunc(func(driver, dsn string) (*sql.DB, error) {
				opens++
				return nil, openErr
			}),
		)
		So(err, ShouldBeNil)

		Convey("When fetching", func() {
			_, err := p.FetchAll(context.Background())

			Convey("Then it should surface a connect error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrConnect), ShouldBeTrue)
			})

			Convey("And the next call should retry the connection", func() {
				_, err2 := p.FetchAll(context.Background())
				So(errors.Is(err2, ErrConnect), ShouldBeTrue)
				So(opens, ShouldEqual, 2)
			})
		})
	})
}

func TestQuoteIdentifier(t *testing.T) {
	Convey("Given table names", t, func() {
		Convey("Then plain names should be double-quoted", func() {
			So(quoteIdentifier("onboarding"), ShouldEqual, `"onboarding"`)
		})

		Convey("Then embedded quotes should be escaped", func() {
			So(quoteIdentifier(`bad"name`), ShouldEqual, `"bad""name"`)
		})
	})
}
