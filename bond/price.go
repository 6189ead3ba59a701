package bond

import (
	"fmt"
	"math"
)

// ZeroCouponPrice returns the present value of faceValue paid after years,
// discounted at annualRate compounded frequency times a year:
//
//	PV = F / (1 + r/m)^(T*m)
//
// The exponent need not be integral. frequency below 1 is treated as annual.
// A periodic rate of exactly -1 yields +Inf; that is left to the caller.
func ZeroCouponPrice(faceValue, annualRate, years float64, frequency int) float64 {
	if frequency < 1 {
		frequency = 1
	}
	m := float64(frequency)
	n := years * m
	dr := annualRate / m
	return faceValue / math.Pow(1+dr, n)
}

// PriceInput holds the parameters of a zero-coupon bond valuation.
type PriceInput struct {
	FaceValue float64 `json:"face_value"`
	Rate      float64 `json:"rate"`
	Years     float64 `json:"years"`
	Frequency int     `json:"frequency"`
}

// PriceResult is the output of PriceZeroCoupon.
type PriceResult struct {
	PresentValue   float64 `json:"present_value"`
	DiscountFactor float64 `json:"discount_factor"`
	Periods        float64 `json:"periods"`
}

// PriceZeroCoupon validates the input and prices it with ZeroCouponPrice.
// A zero Frequency defaults to annual compounding.
func PriceZeroCoupon(in PriceInput) (PriceResult, error) {
	if in.Frequency == 0 {
		in.Frequency = 1
	}
	if !(in.FaceValue > 0) {
		return PriceResult{}, fmt.Errorf("PriceZeroCoupon: %w: face value must be positive", ErrInvalidInput)
	}
	if !(in.Years >= 0) || math.IsInf(in.Years, 0) {
		return PriceResult{}, fmt.Errorf("PriceZeroCoupon: %w: years must be non-negative", ErrInvalidInput)
	}
	if in.Frequency < 1 {
		return PriceResult{}, fmt.Errorf("PriceZeroCoupon: %w: frequency must be at least 1", ErrInvalidInput)
	}
	if math.IsNaN(in.Rate) || math.IsInf(in.Rate, 0) {
		return PriceResult{}, fmt.Errorf("PriceZeroCoupon: %w: rate must be finite", ErrInvalidInput)
	}

	pv := ZeroCouponPrice(in.FaceValue, in.Rate, in.Years, in.Frequency)
	return PriceResult{
		PresentValue:   pv,
		DiscountFactor: pv / in.FaceValue,
		Periods:        in.Years * float64(in.Frequency),
	}, nil
}
