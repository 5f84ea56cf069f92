package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ringthegong/gong/internal/adapters/kvstore"
	app "github.com/ringthegong/gong/internal/app"
	"github.com/ringthegong/gong/internal/config"
	"github.com/ringthegong/gong/internal/domain/render"
	"github.com/ringthegong/gong/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func fixedClock() time.Time {
	return time.Date(2026, time.September, 10, 9, 30, 0, 0, time.Local)
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service on the default memory backend", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithClock(fixedClock), app.WithVerifyToken("s3cret"))

		Convey("When starting it twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the second start is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And the verify token is exposed to the handler layer", func() {
				So(svc.VerifyToken(), ShouldEqual, "s3cret")
			})
		})
	})
}

func TestServiceDispatch(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithClock(fixedClock))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When recording and reading back", func() {
			msg, err := svc.Dispatch(ctx, "record arr Sarah 50000 Acme Corp")
			So(err, ShouldBeNil)
			So(msg.ResponseType, ShouldEqual, render.ResponseInChannel)

			board, err := svc.Dispatch(ctx, "leaderboard arr")
			So(err, ShouldBeNil)

			Convey("Then the leaderboard reflects the record", func() {
				So(board.Text, ShouldContainSubstring, "Sarah")
				So(board.Text, ShouldContainSubstring, "$50,000")
			})
		})

		Convey("When collecting stats", func() {
			_, err := svc.Dispatch(ctx, "record pilot James 2")
			So(err, ShouldBeNil)

			stats := svc.GetStats()

			Convey("Then the per-metric record counts show up", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["month"], ShouldEqual, "2026-09")
				So(stats["pilotRecords"], ShouldEqual, 1)
				So(stats["arrRecords"], ShouldEqual, 0)
			})
		})
	})
}

func TestServiceBackendSelection(t *testing.T) {
	Convey("Given a sqlite backend configuration", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "gong.db")
		svc := app.New(
			app.WithClock(fixedClock),
			app.WithStoreBackend(config.BackendSQLite, path),
		)

		Convey("When starting and writing through it", func() {
			So(svc.Start(ctx), ShouldBeNil)

			_, err := svc.Dispatch(ctx, "record time Maria 14")
			So(err, ShouldBeNil)
			svc.Stop()

			Convey("Then a second service over the same file sees the record", func() {
				again := app.New(
					app.WithClock(fixedClock),
					app.WithStoreBackend(config.BackendSQLite, path),
				)
				So(again.Start(ctx), ShouldBeNil)
				defer again.Stop()

				board, err := again.Dispatch(ctx, "time")
				So(err, ShouldBeNil)
				So(board.Text, ShouldContainSubstring, "Maria")
			})
		})
	})

	Convey("Given an injected store", t, func() {
		ctx := context.Background()
		backend := kvstore.NewMemoryStore()
		svc := app.New(app.WithStore(backend), app.WithClock(fixedClock))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When recording through the service", func() {
			_, err := svc.Dispatch(ctx, "record arr Ines 1000")
			So(err, ShouldBeNil)

			Convey("Then the injected backend holds the key", func() {
				So(backend.Len(), ShouldEqual, 1)
			})
		})
	})
}
