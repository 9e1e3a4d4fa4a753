package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/quarterly/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LeagueID, convey.ShouldEqual, "831753")
				convey.So(cfg.HistoryWorkers, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("QUARTERLY_ADDR", ":8080")
			_ = os.Setenv("QUARTERLY_LEAGUE_ID", "12345")
			_ = os.Setenv("QUARTERLY_HISTORY_WORKERS", "12")
			_ = os.Setenv("QUARTERLY_PROVIDER_RATE_PER_SEC", "2.5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LeagueID, convey.ShouldEqual, "12345")
				convey.So(cfg.HistoryWorkers, convey.ShouldEqual, 12)
				convey.So(cfg.ProviderRatePerSec, convey.ShouldEqual, 2.5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
league_id: "777"
time_zone: "Europe/London"
history_workers: 3
top_n: 5
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("QUARTERLY_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LeagueID, convey.ShouldEqual, "777")
				convey.So(cfg.TimeZone, convey.ShouldEqual, "Europe/London")
				convey.So(cfg.HistoryWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.TopN, convey.ShouldEqual, 5)
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
history_workers: 3
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("QUARTERLY_CONFIG", tmpFile)
			_ = os.Setenv("QUARTERLY_HISTORY_WORKERS", "9")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.HistoryWorkers, convey.ShouldEqual, 9)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("QUARTERLY_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("QUARTERLY_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid number", func() {
			_ = os.Setenv("QUARTERLY_HISTORY_WORKERS", "many")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown time zone", func() {
			_ = os.Setenv("QUARTERLY_TIME_ZONE", "Nowhere/Special")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("QUARTERLY_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"QUARTERLY_CONFIG",
		"QUARTERLY_ADDR",
		"QUARTERLY_LEAGUE_ID",
		"QUARTERLY_TIME_ZONE",
		"QUARTERLY_HISTORY_WORKERS",
		"QUARTERLY_PROVIDER_RATE_PER_SEC",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "quarterly-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
