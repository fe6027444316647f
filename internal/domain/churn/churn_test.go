package churn_test

import (
	"testing"
	"time"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/churn"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var lastDate = time.Date(2011, 12, 9, 0, 0, 0, 0, time.UTC)

func purchase(customer, invoice string, daysBefore, qty int, total float64) model.Transaction {
	return model.Transaction{
		InvoiceNo:   invoice,
		Quantity:    qty,
		InvoiceDate: lastDate.AddDate(0, 0, -daysBefore),
		CustomerID:  customer,
		TotalPrice:  total,
	}
}

func TestFlag(t *testing.T) {
	Convey("Given customers on both sides of the inactivity threshold", t, func() {
		txs := []model.Transaction{
			purchase("active", "a-1", 10, 1, 20),
			purchase("gone", "g-1", 200, 1, 35),
			purchase("edge", "e-1", 90, 1, 15),
			purchase("anchor", "n-1", 0, 1, 5),
		}

		Convey("When flagging with the 90-day default", func() {
			summary := churn.Flag(txs, 0)

			Convey("Then only customers strictly past the threshold churn", func() {
				byID := map[string]churn.Status{}
				for _, st := range summary.Statuses {
					byID[st.CustomerID] = st
				}
				So(byID["active"].Churned, ShouldBeFalse)
				So(byID["gone"].Churned, ShouldBeTrue)
				So(byID["edge"].Churned, ShouldBeFalse) // exactly 90 days is still active
				So(byID["anchor"].Churned, ShouldBeFalse)
			})

			Convey("Then the rate reflects the counts", func() {
				So(summary.Churned, ShouldEqual, 1)
				So(summary.Active, ShouldEqual, 3)
				So(summary.Rate, ShouldAlmostEqual, 0.25, 0.0001)
			})
		})

		Convey("When the input is empty", func() {
			summary := churn.Flag(nil, 90)

			Convey("Then the summary is empty", func() {
				So(summary.Statuses, ShouldBeEmpty)
				So(summary.Rate, ShouldEqual, 0)
			})
		})
	})
}

func TestBuildFeatures(t *testing.T) {
	Convey("Given a customer with a purchase history", t, func() {
		txs := []model.Transaction{
			purchase("c-1", "inv-1", 60, 2, 10),
			purchase("c-1", "inv-1", 60, 4, 30),
			purchase("c-1", "inv-2", 30, 6, 50),
			purchase("c-2", "inv-3", 5, 1, 9),
		}

		Convey("When building features", func() {
			features := churn.BuildFeatures(txs, 90)
			byID := map[string]churn.Features{}
			for _, f := range features {
				byID[f.CustomerID] = f
			}

			Convey("Then line counts and invoice counts differ", func() {
				So(byID["c-1"].TotalTransactions, ShouldEqual, 3)
				So(byID["c-1"].UniqueInvoices, ShouldEqual, 2)
			})

			Convey("Then lifetime spans first to last purchase", func() {
				So(byID["c-1"].LifetimeDays, ShouldEqual, 30)
				So(byID["c-2"].LifetimeDays, ShouldEqual, 0)
			})

			Convey("Then spend statistics add up", func() {
				So(byID["c-1"].TotalSpend, ShouldAlmostEqual, 90, 0.0001)
				So(byID["c-1"].AvgSpend, ShouldAlmostEqual, 30, 0.0001)
				So(byID["c-1"].AvgOrderValue, ShouldAlmostEqual, 45, 0.0001)
				So(byID["c-1"].TotalQuantity, ShouldEqual, 12)
			})

			Convey("Then the sample deviation uses Bessel's correction", func() {
				// spends 10, 30, 50: sample std = 20
				So(byID["c-1"].StdSpend, ShouldAlmostEqual, 20, 0.0001)
				So(byID["c-2"].StdSpend, ShouldEqual, 0)
			})

			Convey("Then purchase frequency normalizes per 30-day month", func() {
				So(byID["c-1"].PurchaseFrequency, ShouldAlmostEqual, 2, 0.0001)
				So(byID["c-2"].PurchaseFrequency, ShouldEqual, 0)
			})

			Convey("Then nobody inside the window is churned", func() {
				So(byID["c-1"].Churned, ShouldBeFalse)
				So(byID["c-2"].Churned, ShouldBeFalse)
			})
		})
	})
}
