package config_test

import (
	"testing"

	"github.com/ringthegong/gong/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigDefaults(t *testing.T) {
	convey.Convey("Given default configuration", t, func() {
		cfg := config.New()

		convey.Convey("Then it carries sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.VerifyToken, convey.ShouldBeEmpty)
			convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
			convey.So(cfg.StorePath, convey.ShouldEqual, "gong.db")
		})
	})
}
