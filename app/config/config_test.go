package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arisena/gopp/app/config"
)

func clearEnv() {
	for _, key := range []string{"GOPP_CONFIG", "GOPP_MODE", "GOPP_ACCURACY", "GOPP_DATABASE"} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoad(t *testing.T) {
	convey.Convey("Given the config loader", t, func() {
		clearEnv()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load()

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Mode, convey.ShouldEqual, "osu")
			convey.So(cfg.Accuracy, convey.ShouldEqual, 100)
			convey.So(cfg.Database, convey.ShouldBeEmpty)
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("GOPP_MODE", "taiko")
			_ = os.Setenv("GOPP_ACCURACY", "98.5")
			defer clearEnv()

			cfg, err := config.Load()

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Mode, convey.ShouldEqual, "taiko")
			convey.So(cfg.Accuracy, convey.ShouldEqual, 98.5)
		})

		convey.Convey("When a yaml file is given", func() {
			path := filepath.Join(t.TempDir(), "gopp.yaml")
			yaml := "mode: mania\ndatabase: results.db\n"

			convey.So(os.WriteFile(path, []byte(yaml), 0o644), convey.ShouldBeNil)

			_ = os.Setenv("GOPP_CONFIG", path)
			defer clearEnv()

			cfg, err := config.Load()

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Mode, convey.ShouldEqual, "mania")
			convey.So(cfg.Database, convey.ShouldEqual, "results.db")
			// untouched keys keep their defaults
			convey.So(cfg.Accuracy, convey.ShouldEqual, 100)
		})

		convey.Convey("When env overrides the file", func() {
			path := filepath.Join(t.TempDir(), "gopp.yaml")

			convey.So(os.WriteFile(path, []byte("mode: mania\n"), 0o644), convey.ShouldBeNil)

			_ = os.Setenv("GOPP_CONFIG", path)
			_ = os.Setenv("GOPP_MODE", "catch")
			defer clearEnv()

			cfg, err := config.Load()

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Mode, convey.ShouldEqual, "catch")
		})
	})
}
