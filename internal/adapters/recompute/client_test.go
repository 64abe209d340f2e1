package recompute_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/techSaswata/mentiby-admin/internal/adapters/recompute"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewHTTPClient(t *testing.T) {
	Convey("Given the job client constructor", t, func() {
		Convey("When the endpoint is empty", func() {
			_, err := recompute.NewHTTPClient("  ")

			Convey("Then it should reject it", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, recompute.ErrInvalidEndpoint), ShouldBeTrue)
			})
		})

		Convey("When the endpoint is set", func() {
			c, err := recompute.NewHTTPClient("http://localhost:3000/api/update-xp")

			Convey("Then it should succeed", func() {
				So(err, ShouldBeNil)
				So(c, ShouldNotBeNil)
			})
		})
	})
}

func TestHTTPClientRun(t *testing.T) {
	Convey("Given a job endpoint", t, func() {
		Convey("When the job succeeds with a JSON body", func() {
			var gotMethod, gotContentType, gotCorrelation string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotContentType = r.Header.Get("Content-Type")
				gotCorrelation = r.Header.Get("X-Correlation-Id")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"success": true}`))
			}))
			defer srv.Close()

			c, err := recompute.NewHTTPClient(srv.URL)
			So(err, ShouldBeNil)

			err = c.Run(context.Background())

			Convey("Then it should report success", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should POST JSON with a correlation id", func() {
				So(gotMethod, ShouldEqual, http.MethodPost)
				So(gotContentType, ShouldEqual, "application/json")
				So(gotCorrelation, ShouldNotBeEmpty)
			})
		})

		Convey("When the job succeeds with an empty body", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			c, err := recompute.NewHTTPClient(srv.URL)
			So(err, ShouldBeNil)

			Convey("Then it should report success", func() {
				So(c.Run(context.Background()), ShouldBeNil)
			})
		})

		Convey("When the job succeeds with a JSON body lacking the success field", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			c, err := recompute.NewHTTPClient(srv.URL)
			So(err, ShouldBeNil)

			Convey("Then it should report success", func() {
				So(c.Run(context.Background()), ShouldBeNil)
			})
		})

		Convey("When the job reports failure without a reason", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"success": false}`))
			}))
			defer srv.Close()

			c, err := recompute.NewHTTPClient(srv.URL)
			So(err, ShouldBeNil)

			err = c.Run(context.Background())

			Convey("Then it should still surface a job failure", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, recompute.ErrJobFailed), ShouldBeTrue)
			})
		})

		Convey("When the job reports failure in the body", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"success": false, "error": "sheet export stalled"}`))
			}))
			defer srv.Close()

			c, err := recompute.NewHTTPClient(srv.URL)
			So(err, ShouldBeNil)

			err = c.Run(context.Background())

			Convey("Then it should surface the job error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, recompute.ErrJobFailed), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "sheet export stalled")
			})
		})

		Convey("When the endpoint returns a non-2xx status", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			}))
			defer srv.Close()

			c, err := recompute.NewHTTPClient(srv.URL)
			So(err, ShouldBeNil)

			err = c.Run(context.Background())

			Convey("Then it should surface a job failure with the status", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, recompute.ErrJobFailed), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "502")
			})
		})

		Convey("When the endpoint is unreachable", func() {
			c, err := recompute.NewHTTPClient("http://127.0.0.1:1/api/update-xp")
			So(err, ShouldBeNil)

			err = c.Run(context.Background())

			Convey("Then it should surface a transport error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, recompute.ErrRequest), ShouldBeTrue)
			})
		})

		Convey("When the context is already canceled", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			defer srv.Close()

			c, err := recompute.NewHTTPClient(srv.URL)
			So(err, ShouldBeNil)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Convey("Then Run should fail fast", func() {
				So(c.Run(ctx), ShouldNotBeNil)
			})
		})
	})
}
