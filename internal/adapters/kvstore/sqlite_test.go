package kvstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ringthegong/gong/internal/adapters/kvstore"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSQLiteStore(t *testing.T) {
	Convey("Given a sqlite store in a temp directory", t, func() {
		ctx := context.Background()
		store, err := kvstore.NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "gong.db"))
		So(err, ShouldBeNil)
		defer func() { So(store.Close(), ShouldBeNil) }()

		Convey("When getting a missing key", func() {
			_, err := store.Get(ctx, "nope")
			So(err, ShouldEqual, kvstore.ErrKeyNotFound)
		})

		Convey("When setting, overwriting, and scanning", func() {
			So(store.Set(ctx, "2026-09:arr:2", "b"), ShouldBeNil)
			So(store.Set(ctx, "2026-09:arr:1", "a"), ShouldBeNil)
			So(store.Set(ctx, "2026-09:pilot:1", "c"), ShouldBeNil)
			So(store.Set(ctx, "2026-09:arr:1", "a2"), ShouldBeNil)

			v, err := store.Get(ctx, "2026-09:arr:1")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "a2")

			keys, err := store.Keys(ctx, "2026-09:arr:")
			So(err, ShouldBeNil)
			So(keys, ShouldResemble, []string{"2026-09:arr:1", "2026-09:arr:2"})
		})

		Convey("When keys contain LIKE metacharacters", func() {
			So(store.Set(ctx, "a%b:1", "x"), ShouldBeNil)
			So(store.Set(ctx, "axb:1", "y"), ShouldBeNil)

			keys, err := store.Keys(ctx, "a%b")
			So(err, ShouldBeNil)

			Convey("Then the prefix matches literally", func() {
				So(keys, ShouldResemble, []string{"a%b:1"})
			})
		})
	})
}
