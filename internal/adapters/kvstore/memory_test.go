package kvstore_test

import (
	"context"
	"testing"

	"github.com/ringthegong/gong/internal/adapters/kvstore"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		store := kvstore.NewMemoryStore()

		Convey("When getting a missing key", func() {
			_, err := store.Get(ctx, "nope")
			So(err, ShouldEqual, kvstore.ErrKeyNotFound)
		})

		Convey("When setting and getting a key", func() {
			So(store.Set(ctx, "a", "1"), ShouldBeNil)
			v, err := store.Get(ctx, "a")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "1")

			Convey("And overwriting it", func() {
				So(store.Set(ctx, "a", "2"), ShouldBeNil)
				v, _ := store.Get(ctx, "a")
				So(v, ShouldEqual, "2")
			})
		})

		Convey("When scanning by prefix", func() {
			for k, v := range map[string]string{
				"2026-09:arr:2":   "b",
				"2026-09:arr:1":   "a",
				"2026-09:pilot:1": "c",
				"2026-08:arr:1":   "d",
			} {
				So(store.Set(ctx, k, v), ShouldBeNil)
			}

			keys, err := store.Keys(ctx, "2026-09:arr:")
			So(err, ShouldBeNil)

			Convey("Then only matching keys return, in order", func() {
				So(keys, ShouldResemble, []string{"2026-09:arr:1", "2026-09:arr:2"})
			})

			Convey("And an unmatched prefix returns an empty slice", func() {
				keys, err := store.Keys(ctx, "2027-")
				So(err, ShouldBeNil)
				So(keys, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a seeded memory store", t, func() {
		store := kvstore.NewMemoryStore(kvstore.WithSeed(map[string]string{"x": "y"}))
		v, err := store.Get(context.Background(), "x")
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "y")
		So(store.Len(), ShouldEqual, 1)
	})
}
