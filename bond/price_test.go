package bond_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/zerocurve/bond"
)

func TestZeroCouponPrice_Reference(t *testing.T) {
	t.Parallel()

	got := bond.ZeroCouponPrice(1000, 0.05, 2, 1)
	if math.Abs(got-907.03) > 1e-2 {
		t.Fatalf("ZeroCouponPrice mismatch: got %.6f want 907.03", got)
	}
}

func TestZeroCouponPrice_ZeroRateReturnsFace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		face  float64
		years float64
		freq  int
	}{
		{100, 0, 1},
		{100, 2.5, 2},
		{1000, 10, 12},
		{1, 0.3, 4},
	}
	for _, tc := range cases {
		if got := bond.ZeroCouponPrice(tc.face, 0, tc.years, tc.freq); got != tc.face {
			t.Fatalf("face=%g years=%g freq=%d: got %.12f want %.12f", tc.face, tc.years, tc.freq, got, tc.face)
		}
	}
}

func TestZeroCouponPrice_DecreasingInRate(t *testing.T) {
	t.Parallel()

	rates := []float64{-0.01, 0, 0.01, 0.03, 0.05, 0.10}
	for _, freq := range []int{1, 2, 4} {
		prev := math.Inf(1)
		for _, r := range rates {
			pv := bond.ZeroCouponPrice(100, r, 5, freq)
			if !(pv < prev) {
				t.Fatalf("freq=%d rate=%g: pv %.10f not below %.10f", freq, r, pv, prev)
			}
			prev = pv
		}
	}
}

func TestZeroCouponPrice_FractionalPeriods(t *testing.T) {
	t.Parallel()

	got := bond.ZeroCouponPrice(100, 0.04, 1.25, 2)
	want := 100 / math.Pow(1.02, 2.5)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %.12f want %.12f", got, want)
	}
}

func TestZeroCouponPrice_FrequencyDefaultsToAnnual(t *testing.T) {
	t.Parallel()

	if got, want := bond.ZeroCouponPrice(100, 0.05, 3, 0), bond.ZeroCouponPrice(100, 0.05, 3, 1); got != want {
		t.Fatalf("got %.12f want %.12f", got, want)
	}
}

func TestPriceZeroCoupon_Validation(t *testing.T) {
	t.Parallel()

	bad := []bond.PriceInput{
		{FaceValue: 0, Rate: 0.05, Years: 1, Frequency: 1},
		{FaceValue: -100, Rate: 0.05, Years: 1, Frequency: 1},
		{FaceValue: 100, Rate: 0.05, Years: -1, Frequency: 1},
		{FaceValue: 100, Rate: 0.05, Years: 1, Frequency: -2},
		{FaceValue: 100, Rate: math.NaN(), Years: 1, Frequency: 1},
	}
	for i, in := range bad {
		if _, err := bond.PriceZeroCoupon(in); !errors.Is(err, bond.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}

	res, err := bond.PriceZeroCoupon(bond.PriceInput{FaceValue: 1000, Rate: 0.05, Years: 2})
	if err != nil {
		t.Fatalf("PriceZeroCoupon: %v", err)
	}
	if math.Abs(res.PresentValue-907.029478) > 1e-6 {
		t.Fatalf("PresentValue mismatch: got %.6f", res.PresentValue)
	}
	if math.Abs(res.DiscountFactor-res.PresentValue/1000) > 1e-15 {
		t.Fatalf("DiscountFactor mismatch: got %.12f", res.DiscountFactor)
	}
	if res.Periods != 2 {
		t.Fatalf("Periods mismatch: got %g", res.Periods)
	}
}
