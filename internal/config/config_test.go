package config_test

import (
	"testing"

	"github.com/hzlparlak/Crm-Analytics/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.SourceDriver, convey.ShouldEqual, config.DriverCSV)
			convey.So(cfg.RecencyBins, convey.ShouldEqual, 5)
			convey.So(cfg.FrequencyBins, convey.ShouldEqual, 5)
			convey.So(cfg.MonetaryBins, convey.ShouldEqual, 5)
			convey.So(cfg.ChurnThresholdDays, convey.ShouldEqual, 90)
			convey.So(cfg.CLVHorizonMonths, convey.ShouldEqual, 12)
			convey.So(cfg.CLVDiscountRate, convey.ShouldAlmostEqual, 0.01, 0.0001)
			convey.So(cfg.OutputDir, convey.ShouldEqual, "reports")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8085")
			convey.So(cfg.ReferenceDate, convey.ShouldBeEmpty)
		})

		convey.Convey("Then the empty reference date parses to the zero time", func() {
			convey.So(cfg.Reference().IsZero(), convey.ShouldBeTrue)
		})
	})
}
