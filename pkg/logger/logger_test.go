package logger_test

import (
	"context"
	"testing"

	"github.com/hzlparlak/Crm-Analytics/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(logger.Init("text"), ShouldBeNil)

		Convey("When fetching it", func() {
			l := logger.Get()

			Convey("Then it is usable and nameable", func() {
				So(l, ShouldNotBeNil)
				named := l.Named("pipeline")
				So(named, ShouldNotBeNil)
				named.Info(context.Background(), "hello", logger.String("k", "v"), logger.Int("n", 1))
			})
		})

		Convey("When initializing with JSON format", func() {
			So(logger.Init("json"), ShouldBeNil)
			So(logger.Get(), ShouldNotBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		Convey("Then known levels parse", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("info"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString("ERROR"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
		})

		Convey("Then unknown levels are rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
