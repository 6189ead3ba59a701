package bond

import (
	"fmt"
	"math"
)

// PaymentsPerYear is the coupon and compounding frequency of every quote.
const PaymentsPerYear = 2

// BondQuote is one market observation of a fixed-coupon bond.
//
// CouponRate is the annual coupon in percent (e.g. 4.5 for 4.5%). Price and
// FaceValue share the same scale (e.g. per-100).
type BondQuote struct {
	Maturity   float64 `json:"maturity" yaml:"maturity"`
	CouponRate float64 `json:"coupon_rate" yaml:"coupon_rate"`
	Price      float64 `json:"price" yaml:"price"`
	FaceValue  float64 `json:"face_value" yaml:"face_value"`
}

// Cashflow is a single scheduled payment, Period semi-annual periods from today.
type Cashflow struct {
	Period    int
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// Time returns the payment time in years.
func (c Cashflow) Time() float64 {
	return float64(c.Period) / PaymentsPerYear
}

// Periods returns the number of whole semi-annual periods to maturity.
// Fractional half-years are truncated.
func (q BondQuote) Periods() int {
	return int(math.Floor(q.Maturity * PaymentsPerYear))
}

// Coupon returns the periodic coupon payment.
func (q BondQuote) Coupon() float64 {
	return q.CouponRate / 100.0 * q.FaceValue / PaymentsPerYear
}

// Schedule returns the bond's cash flows: Periods()-1 coupons followed by the
// final coupon plus redemption.
func (q BondQuote) Schedule() []Cashflow {
	n := q.Periods()
	if n <= 0 {
		return nil
	}
	coupon := q.Coupon()
	cfs := make([]Cashflow, n)
	for i := range cfs {
		cfs[i] = Cashflow{Period: i + 1, Coupon: coupon}
	}
	cfs[n-1].Principal = q.FaceValue
	return cfs
}

// Validate reports the first precondition the quote violates.
func (q BondQuote) Validate() error {
	switch {
	case math.IsNaN(q.Maturity) || math.IsInf(q.Maturity, 0):
		return fmt.Errorf("%w: maturity must be finite", ErrInvalidInput)
	case q.Periods() < 1:
		return fmt.Errorf("%w: maturity %g is shorter than one semi-annual period", ErrInvalidInput, q.Maturity)
	case !(q.Price > 0):
		return fmt.Errorf("%w: price must be positive (maturity %g)", ErrInvalidInput, q.Maturity)
	case !(q.FaceValue > 0):
		return fmt.Errorf("%w: face value must be positive (maturity %g)", ErrInvalidInput, q.Maturity)
	case math.IsNaN(q.CouponRate) || math.IsInf(q.CouponRate, 0):
		return fmt.Errorf("%w: coupon rate must be finite (maturity %g)", ErrInvalidInput, q.Maturity)
	}
	return nil
}
