package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/candidesk/candidesk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"CANDIDESK_CONFIG",
		"CANDIDESK_ADDR",
		"CANDIDESK_LOG_LEVEL",
		"CANDIDESK_SNAPSHOT_PATH",
		"CANDIDESK_PUSH_QUEUE_SIZE",
		"CANDIDESK_BUS_CAPACITY",
		"CANDIDESK_BUSINESS_OPEN_HOUR",
		"CANDIDESK_BUSINESS_CLOSE_HOUR",
		"CANDIDESK_SUGGEST_DEBOUNCE_MS",
		"CANDIDESK_REMINDER_INTERVAL_SECONDS",
		"CANDIDESK_OCR_ENDPOINT",
		"CANDIDESK_OCR_TIMEOUT_MS",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.SnapshotPath, convey.ShouldEqual, "data/candidates.json")
				convey.So(cfg.PushQueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.BusCapacity, convey.ShouldEqual, 64)
				convey.So(cfg.BusinessOpenHour, convey.ShouldEqual, 9)
				convey.So(cfg.BusinessCloseHour, convey.ShouldEqual, 18)
				convey.So(cfg.SuggestDebounceMS, convey.ShouldEqual, 150)
				convey.So(cfg.ReminderIntervalSeconds, convey.ShouldEqual, 60)
				convey.So(cfg.OCREndpoint, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("CANDIDESK_ADDR", ":8080")
			_ = os.Setenv("CANDIDESK_PUSH_QUEUE_SIZE", "512")
			_ = os.Setenv("CANDIDESK_BUSINESS_OPEN_HOUR", "8")
			_ = os.Setenv("CANDIDESK_BUSINESS_CLOSE_HOUR", "20")
			_ = os.Setenv("CANDIDESK_OCR_ENDPOINT", "http://ocr.internal/extract")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PushQueueSize, convey.ShouldEqual, 512)
				convey.So(cfg.BusinessOpenHour, convey.ShouldEqual, 8)
				convey.So(cfg.BusinessCloseHour, convey.ShouldEqual, 20)
				convey.So(cfg.OCREndpoint, convey.ShouldEqual, "http://ocr.internal/extract")

				convey.Convey("And untouched keys keep their defaults", func() {
					convey.So(cfg.SnapshotPath, convey.ShouldEqual, "data/candidates.json")
				})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()
			path := filepath.Join(t.TempDir(), "config.yaml")
			yaml := "addr: \":7070\"\nsnapshot_path: \"/tmp/records.json\"\nlog_level: debug\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("CANDIDESK_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.SnapshotPath, convey.ShouldEqual, "/tmp/records.json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})

			convey.Convey("And env vars still win over the file", func() {
				_ = os.Setenv("CANDIDESK_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file is missing", func() {
			clearConfigEnvVars()
			_ = os.Setenv("CANDIDESK_CONFIG", "/does/not/exist.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail with the load sentinel", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When validation fails", func() {
			clearConfigEnvVars()
			defer clearConfigEnvVars()

			convey.Convey("An empty addr is rejected", func() {
				_ = os.Setenv("CANDIDESK_ADDR", "")
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("An inverted business window is rejected", func() {
				_ = os.Setenv("CANDIDESK_BUSINESS_OPEN_HOUR", "19")
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
