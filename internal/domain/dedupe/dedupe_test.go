package dedupe_test

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/dedupe"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
)

func line(invoice, stock string, qty int, at time.Time) model.Transaction {
	return model.Transaction{
		InvoiceNo:   invoice,
		StockCode:   stock,
		Quantity:    qty,
		InvoiceDate: at,
		UnitPrice:   2.50,
		CustomerID:  "12345",
	}
}

func TestLines(t *testing.T) {
	convey.Convey("Given a raw transaction feed", t, func() {
		at := time.Date(2011, 12, 1, 10, 0, 0, 0, time.UTC)

		convey.Convey("When the feed repeats an identical line", func() {
			txs := []model.Transaction{
				line("536365", "85123A", 6, at),
				line("536365", "85123A", 6, at),
				line("536365", "71053", 3, at),
			}
			kept, dropped := dedupe.Lines(txs)

			convey.Convey("Then the repeat is dropped and order survives", func() {
				convey.So(dropped, convey.ShouldEqual, 1)
				convey.So(kept, convey.ShouldHaveLength, 2)
				convey.So(kept[0].StockCode, convey.ShouldEqual, "85123A")
				convey.So(kept[1].StockCode, convey.ShouldEqual, "71053")
			})
		})

		convey.Convey("When lines differ in any identity column", func() {
			txs := []model.Transaction{
				line("536365", "85123A", 6, at),
				line("536365", "85123A", 7, at),
				line("536366", "85123A", 6, at),
				line("536365", "85123A", 6, at.Add(time.Minute)),
			}
			kept, dropped := dedupe.Lines(txs)

			convey.Convey("Then nothing is dropped", func() {
				convey.So(dropped, convey.ShouldEqual, 0)
				convey.So(kept, convey.ShouldHaveLength, 4)
			})
		})

		convey.Convey("When a custom key ignores the invoice number", func() {
			txs := []model.Transaction{
				line("536365", "85123A", 6, at),
				line("536399", "85123A", 6, at),
			}
			kept, dropped := dedupe.Lines(txs, dedupe.WithKeyFunc(func(tx model.Transaction) string {
				return tx.StockCode
			}))

			convey.Convey("Then lines collapse by the custom identity", func() {
				convey.So(dropped, convey.ShouldEqual, 1)
				convey.So(kept, convey.ShouldHaveLength, 1)
				convey.So(kept[0].InvoiceNo, convey.ShouldEqual, "536365")
			})
		})

		convey.Convey("When the feed is empty", func() {
			kept, dropped := dedupe.Lines(nil)

			convey.Convey("Then the result is empty", func() {
				convey.So(kept, convey.ShouldBeEmpty)
				convey.So(dropped, convey.ShouldEqual, 0)
			})
		})
	})
}
