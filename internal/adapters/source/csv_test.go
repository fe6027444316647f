package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestCSVSource_Load(t *testing.T) {
	convey.Convey("Given a CSV transaction file", t, func() {
		ctx := context.Background()

		convey.Convey("When loading a well-formed file", func() {
			path := writeTempCSV(t, `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,6,2010-12-01 08:26:00,2.55,17850,United Kingdom
536366,71053,WHITE METAL LANTERN,3,2010-12-01 08:28:00,3.39,17850,United Kingdom
`)
			src := NewCSVSource(path, WithProgress(false))
			txs, err := src.Load(ctx)

			convey.Convey("Then every row is parsed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(txs, convey.ShouldHaveLength, 2)
				convey.So(txs[0].InvoiceNo, convey.ShouldEqual, "536365")
				convey.So(txs[0].Quantity, convey.ShouldEqual, 6)
				convey.So(txs[0].UnitPrice, convey.ShouldAlmostEqual, 2.55, 0.0001)
				convey.So(txs[0].CustomerID, convey.ShouldEqual, "17850")
				convey.So(txs[0].InvoiceDate.Equal(time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)), convey.ShouldBeTrue)
				convey.So(txs[1].StockCode, convey.ShouldEqual, "71053")
			})
		})

		convey.Convey("When the columns are in a different order", func() {
			path := writeTempCSV(t, `Country,CustomerID,UnitPrice,InvoiceDate,Quantity,Description,StockCode,InvoiceNo
France,12583,1.25,2010-12-01 09:00:00,4,RED CANDLE,22728,536370
`)
			src := NewCSVSource(path, WithProgress(false))
			txs, err := src.Load(ctx)

			convey.Convey("Then the header decides the mapping", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(txs, convey.ShouldHaveLength, 1)
				convey.So(txs[0].InvoiceNo, convey.ShouldEqual, "536370")
				convey.So(txs[0].Country, convey.ShouldEqual, "France")
				convey.So(txs[0].Quantity, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When a custom date layout is configured", func() {
			path := writeTempCSV(t, `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,6,12/1/2010 8:26,2.55,17850,United Kingdom
`)
			src := NewCSVSource(path, WithDateLayout("1/2/2006 15:04"), WithProgress(false))
			txs, err := src.Load(ctx)

			convey.Convey("Then dates parse with that layout", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(txs[0].InvoiceDate.Equal(time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a required column is missing", func() {
			path := writeTempCSV(t, `InvoiceNo,StockCode,Description,Quantity,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,6,2.55,17850,United Kingdom
`)
			src := NewCSVSource(path, WithProgress(false))
			txs, err := src.Load(ctx)

			convey.Convey("Then loading fails with a bad record error", func() {
				convey.So(txs, convey.ShouldBeNil)
				convey.So(errors.Is(err, ErrBadRecord), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a row has a non-numeric quantity", func() {
			path := writeTempCSV(t, `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,six,2010-12-01 08:26:00,2.55,17850,United Kingdom
`)
			src := NewCSVSource(path, WithProgress(false))
			_, err := src.Load(ctx)

			convey.Convey("Then loading fails with a bad record error", func() {
				convey.So(errors.Is(err, ErrBadRecord), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file does not exist", func() {
			src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"), WithProgress(false))
			_, err := src.Load(ctx)

			convey.Convey("Then loading fails with an open error", func() {
				convey.So(errors.Is(err, ErrOpenSource), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already canceled", func() {
			path := writeTempCSV(t, `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,6,2010-12-01 08:26:00,2.55,17850,United Kingdom
`)
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			src := NewCSVSource(path, WithProgress(false))
			_, err := src.Load(canceled)

			convey.Convey("Then loading stops with the context error", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}
