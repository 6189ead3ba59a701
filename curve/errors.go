package curve

import (
	"errors"
	"fmt"

	"github.com/meenmo/zerocurve/bond"
)

var (
	// ErrInvalidInput is returned for quote sets that violate a precondition
	// (non-positive price or face value, short or duplicate maturities).
	ErrInvalidInput = bond.ErrInvalidInput

	// ErrBootstrapFailure is matched by every *BootstrapError.
	ErrBootstrapFailure = errors.New("bootstrap failure")

	// ErrMissingZeroRate is matched by every *GapError.
	ErrMissingZeroRate = errors.New("missing zero rate")
)

// BootstrapError reports a maturity whose zero rate could not be solved.
type BootstrapError struct {
	Maturity float64
	// Residual is price minus the discounted intermediate cash flows.
	Residual float64
	// Rate is the non-finite rate, when the residual was positive.
	Rate float64
}

func (e *BootstrapError) Error() string {
	if e.Residual <= 0 {
		return fmt.Sprintf("bootstrap failure at maturity %g: non-positive residual %g", e.Maturity, e.Residual)
	}
	return fmt.Sprintf("bootstrap failure at maturity %g: non-finite rate %g", e.Maturity, e.Rate)
}

func (e *BootstrapError) Unwrap() error {
	return ErrBootstrapFailure
}

// GapError reports an intermediate coupon date with no zero rate.
type GapError struct {
	Maturity float64
	Missing  float64
}

func (e *GapError) Error() string {
	return fmt.Sprintf("maturity %g: no zero rate at intermediate time %g", e.Maturity, e.Missing)
}

func (e *GapError) Unwrap() error {
	return ErrMissingZeroRate
}
