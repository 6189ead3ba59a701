package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/meenmo/zerocurve/bond"
)

// Bootstrap derives a semi-annually compounded zero curve from coupon bond
// quotes. Quotes may arrive in any order; they are solved from the shortest
// maturity up, each one discounting its intermediate coupons at the rates
// already solved.
//
// For a one-period bond the rate is closed form:
//
//	z = 2 * ((F + C) / P - 1)
//
// Otherwise, with PV the discounted value of coupons 1..n-1,
//
//	z = 2 * (((C + F) / (P - PV))^(1/n) - 1)
//
// Intermediate dates missing from the curve are handled by the configured
// GapPolicy. The input slice is not modified.
func Bootstrap(quotes []bond.BondQuote, opts ...Option) (ZeroCurve, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return ZeroCurve{}, fmt.Errorf("Bootstrap: %w", err)
	}

	sorted, err := sortQuotes(quotes)
	if err != nil {
		return ZeroCurve{}, fmt.Errorf("Bootstrap: %w", err)
	}

	acc := ZeroCurve{points: make([]Point, 0, len(sorted))}
	for _, q := range sorted {
		rate, err := Step(acc, q, cfg)
		if err != nil {
			return ZeroCurve{}, fmt.Errorf("Bootstrap: %w", err)
		}
		acc = acc.extend(Point{Maturity: q.Maturity, Rate: rate})
	}

	if cfg.Logger != nil {
		cfg.Logger.WithField("points", acc.Len()).Debug("zero curve bootstrapped")
	}
	return acc, nil
}

// Step solves the zero rate at q.Maturity given the curve solved so far.
// q must be valid and longer than every node already in acc.
func Step(acc ZeroCurve, q bond.BondQuote, cfg Config) (float64, error) {
	policy, err := cfg.gapPolicy()
	if err != nil {
		return 0, err
	}
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if last, ok := acc.Last(); ok && !(q.Maturity > last.Maturity) {
		return 0, fmt.Errorf("%w: maturity %g is not after solved maturity %g", ErrInvalidInput, q.Maturity, last.Maturity)
	}

	cfs := q.Schedule()
	n := len(cfs)
	final := cfs[n-1].Amount()

	var rate float64
	if n == 1 {
		rate = 2 * (final/q.Price - 1)
		if math.IsInf(rate, 0) {
			return 0, &BootstrapError{Maturity: q.Maturity, Residual: q.Price, Rate: rate}
		}
	} else {
		pv := 0.0
		for _, cf := range cfs[:n-1] {
			t := cf.Time()
			z, ok := acc.RateAt(t)
			if !ok {
				if policy == GapFail {
					return 0, &GapError{Maturity: q.Maturity, Missing: t}
				}
				if cfg.Logger != nil {
					cfg.Logger.WithFields(logrus.Fields{
						"maturity": q.Maturity,
						"missing":  t,
					}).Debug("no zero rate for intermediate coupon, skipping")
				}
				continue
			}
			pv += cf.Amount() / math.Pow(1+z/2, float64(cf.Period))
		}

		rem := q.Price - pv
		if !(rem > 0) {
			return 0, &BootstrapError{Maturity: q.Maturity, Residual: rem, Rate: math.NaN()}
		}
		rate = 2 * (math.Pow(final/rem, 1/float64(n)) - 1)
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return 0, &BootstrapError{Maturity: q.Maturity, Residual: rem, Rate: rate}
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(logrus.Fields{
			"maturity": q.Maturity,
			"periods":  n,
			"rate":     rate,
		}).Debug("zero rate solved")
	}
	return rate, nil
}

// sortQuotes validates each quote and returns a maturity-ascending copy.
func sortQuotes(quotes []bond.BondQuote) ([]bond.BondQuote, error) {
	sorted := make([]bond.BondQuote, len(quotes))
	copy(sorted, quotes)
	for _, q := range sorted {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Maturity < sorted[j].Maturity
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Maturity == sorted[i-1].Maturity {
			return nil, fmt.Errorf("%w: duplicate maturity %g", ErrInvalidInput, sorted[i].Maturity)
		}
	}
	return sorted, nil
}
