package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Htr33ml/CS25-2CIA/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.BcryptCost, convey.ShouldEqual, 10)
			convey.So(cfg.HalfPoint, convey.ShouldEqual, 0.5)
			convey.So(cfg.MaxImportRows, convey.ShouldEqual, 1000)
		})
	})
}

func TestConfig_LoadDefaults(t *testing.T) {
	convey.Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then defaults are returned", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.BcryptCost, convey.ShouldEqual, 10)
		})
	})
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv("CS25_ADDR", ":7070")
	t.Setenv("CS25_BCRYPT_COST", "12")

	convey.Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then env values win over defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.BcryptCost, convey.ShouldEqual, 12)
			convey.So(cfg.HalfPoint, convey.ShouldEqual, 0.5)
		})
	})
}

func TestConfig_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "addr: \":6060\"\nlog_level: debug\nmention_weights:\n  Bom: 8\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CS25_CONFIG", path)
	t.Setenv("CS25_ADDR", ":7070")

	convey.Convey("Given a YAML file plus an env override", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then env beats file and file beats defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			convey.So(cfg.MentionWeights, convey.ShouldResemble, map[string]int{"Bom": 8})
		})
	})
}

func TestConfig_LoadMissingFile(t *testing.T) {
	t.Setenv("CS25_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	convey.Convey("Given a config path that does not exist", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then loading fails with a load error", func() {
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_LoadInvalidBcryptCost(t *testing.T) {
	t.Setenv("CS25_BCRYPT_COST", "99")

	convey.Convey("Given an out-of-range bcrypt cost", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then validation rejects it", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_LoadInvalidMaxImportRows(t *testing.T) {
	t.Setenv("CS25_MAX_IMPORT_ROWS", "0")

	convey.Convey("Given a non-positive import cap", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then validation rejects it", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_LoadInvalidHalfPoint(t *testing.T) {
	t.Setenv("CS25_HALF_POINT", "0")

	convey.Convey("Given a non-positive half point", t, func() {
		_, err := config.Load(context.Background())

		convey.Convey("Then validation rejects it", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
