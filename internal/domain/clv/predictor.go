package clv

// Defaults for the baseline predictor.
const (
	DefaultHorizonMonths = 12
	DefaultDiscountRate  = 0.01

	daysPerMonth = 30
)

// Predictor turns BTYD summaries into lifetime-value predictions. Fitted
// probabilistic models (BG/NBD plus Gamma-Gamma) satisfy this interface
// from outside the module; the baseline below is a deterministic stand-in
// so the pipeline produces a CLV table without them.
type Predictor interface {
	Predict(summaries []Summary) []Prediction
}

// Option applies a configuration option to the BaselinePredictor.
type Option func(*BaselinePredictor)

// WithHorizonMonths sets the prediction horizon.
func WithHorizonMonths(months int) Option {
	return func(p *BaselinePredictor) {
		if months > 0 {
			p.horizonMonths = months
		}
	}
}

// WithDiscountRate sets the monthly discount rate applied to future value.
func WithDiscountRate(rate float64) Option {
	return func(p *BaselinePredictor) {
		if rate >= 0 {
			p.discountRate = rate
		}
	}
}

// BaselinePredictor extrapolates each customer's observed repeat-purchase
// rate over the horizon and discounts the result monthly. It deliberately
// has no notion of dropout probability; it exists to keep the CLV stage
// runnable and comparable, not to rival a fitted model.
type BaselinePredictor struct {
	horizonMonths int
	discountRate  float64
}

// NewBaselinePredictor creates a baseline predictor with options.
func NewBaselinePredictor(opts ...Option) *BaselinePredictor {
	p := &BaselinePredictor{
		horizonMonths: DefaultHorizonMonths,
		discountRate:  DefaultDiscountRate,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Predict computes one Prediction per summary row, preserving order.
func (p *BaselinePredictor) Predict(summaries []Summary) []Prediction {
	if len(summaries) == 0 {
		return nil
	}
	out := make([]Prediction, 0, len(summaries))
	for _, s := range summaries {
		// Observed purchase rate per day; age zero cannot happen here
		// because repeat customers span at least two invoices, but a
		// same-day repeat keeps age at zero, so guard anyway.
		rate := 0.0
		if s.AgeDays > 0 {
			rate = float64(s.Frequency) / float64(s.AgeDays)
		}
		expectedValue := s.Monetary / float64(s.Frequency+1)

		var purchases, value float64
		monthlyRate := rate * daysPerMonth
		for m := 1; m <= p.horizonMonths; m++ {
			discount := 1.0
			for i := 0; i < m; i++ {
				discount /= 1 + p.discountRate
			}
			purchases += monthlyRate
			value += monthlyRate * expectedValue * discount
		}

		out = append(out, Prediction{
			CustomerID:        s.CustomerID,
			ExpectedPurchases: purchases,
			ExpectedValue:     expectedValue,
			CLV:               value,
		})
	}
	return out
}
