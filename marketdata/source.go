package marketdata

import (
	"context"
	"fmt"

	"github.com/meenmo/zerocurve/bond"
)

// QuoteSource supplies the bond quotes that make up one curve.
type QuoteSource interface {
	Quotes(ctx context.Context, curveID string) ([]bond.BondQuote, error)
}

// StaticQuoteSource is a map-backed implementation for development/testing.
type StaticQuoteSource struct {
	curves map[string][]bond.BondQuote
}

func NewStaticQuoteSource(curves map[string][]bond.BondQuote) *StaticQuoteSource {
	return &StaticQuoteSource{curves: curves}
}

// Quotes returns a copy of the quotes registered under curveID.
func (s *StaticQuoteSource) Quotes(ctx context.Context, curveID string) ([]bond.BondQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	quotes, ok := s.curves[curveID]
	if !ok {
		return nil, fmt.Errorf("curve %q not found", curveID)
	}
	return append([]bond.BondQuote(nil), quotes...), nil
}

// ReferenceQuotes is the four-bond semi-annual example set.
func ReferenceQuotes() []bond.BondQuote {
	return []bond.BondQuote{
		{Maturity: 0.5, CouponRate: 4.0, Price: 99.50, FaceValue: 100},
		{Maturity: 1.0, CouponRate: 4.5, Price: 99.00, FaceValue: 100},
		{Maturity: 1.5, CouponRate: 5.0, Price: 98.50, FaceValue: 100},
		{Maturity: 2.0, CouponRate: 5.5, Price: 98.00, FaceValue: 100},
	}
}
