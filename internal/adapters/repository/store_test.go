package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ringthegong/gong/internal/adapters/kvstore"
	"github.com/ringthegong/gong/internal/adapters/repository"
	"github.com/ringthegong/gong/internal/domain/record"
	"github.com/ringthegong/gong/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestRecordStoreAddAndList(t *testing.T) {
	Convey("Given a record store over a memory backend", t, func() {
		ctx := context.Background()
		backend := kvstore.NewMemoryStore()
		store := repository.New(backend)
		asOf := time.Date(2026, time.September, 10, 9, 30, 0, 0, time.Local)

		Convey("When adding a record", func() {
			rec, err := store.Add(ctx, record.MetricARR, "Sarah", 50000, "Acme Corp", asOf)
			So(err, ShouldBeNil)
			So(rec.Month, ShouldEqual, "2026-09")

			Convey("Then listing the same month and metric returns it", func() {
				records, err := store.List(ctx, record.MetricARR, asOf)
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].Name, ShouldEqual, "Sarah")
				So(records[0].Value, ShouldEqual, 50000)
				So(records[0].Details, ShouldEqual, "Acme Corp")
			})

			Convey("And other metrics stay empty", func() {
				records, err := store.List(ctx, record.MetricPilot, asOf)
				So(err, ShouldBeNil)
				So(records, ShouldBeEmpty)
			})

			Convey("And other months stay empty", func() {
				records, err := store.List(ctx, record.MetricARR, asOf.AddDate(0, 1, 0))
				So(err, ShouldBeNil)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When two records land in the same millisecond", func() {
			_, err := store.Add(ctx, record.MetricPilot, "James", 1, "", asOf)
			So(err, ShouldBeNil)
			_, err = store.Add(ctx, record.MetricPilot, "James", 1, "", asOf)
			So(err, ShouldBeNil)

			Convey("Then both survive under distinct keys", func() {
				records, err := store.List(ctx, record.MetricPilot, asOf)
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
			})
		})
	})
}

func TestRecordStoreSkipsMalformedEntries(t *testing.T) {
	Convey("Given a backend holding a corrupt value", t, func() {
		ctx := context.Background()
		asOf := time.Date(2026, time.September, 10, 9, 30, 0, 0, time.Local)
		backend := kvstore.NewMemoryStore(kvstore.WithSeed(map[string]string{
			"2026-09:arr:1:deadbeef": "{{ not json",
		}))
		store := repository.New(backend)

		Convey("When listing after adding a good record", func() {
			_, err := store.Add(ctx, record.MetricARR, "Sarah", 50000, "", asOf)
			So(err, ShouldBeNil)

			records, err := store.List(ctx, record.MetricARR, asOf)

			Convey("Then the corrupt entry is dropped, not surfaced", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].Name, ShouldEqual, "Sarah")
			})
		})
	})
}

func TestRecordStorePropagatesScanFailures(t *testing.T) {
	Convey("Given a backend whose scan fails", t, func() {
		ctx := context.Background()
		store := repository.New(failingStore{})

		Convey("When listing", func() {
			_, err := store.List(ctx, record.MetricARR, time.Now())

			Convey("Then the error reaches the caller", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

// failingStore errors every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", kvstore.ErrClosed
}

func (failingStore) Set(context.Context, string, string) error {
	return kvstore.ErrClosed
}

func (failingStore) Keys(context.Context, string) ([]string, error) {
	return nil, kvstore.ErrClosed
}
