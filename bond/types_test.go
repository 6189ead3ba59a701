package bond_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/zerocurve/bond"
)

func TestSchedule(t *testing.T) {
	t.Parallel()

	q := bond.BondQuote{Maturity: 2.0, CouponRate: 5.5, Price: 98.0, FaceValue: 100}
	cfs := q.Schedule()
	require.Len(t, cfs, 4)

	for i, cf := range cfs[:3] {
		assert.Equal(t, i+1, cf.Period)
		assert.InDelta(t, 2.75, cf.Amount(), 1e-12)
		assert.Zero(t, cf.Principal)
	}
	assert.InDelta(t, 102.75, cfs[3].Amount(), 1e-12)
	assert.Equal(t, 2.0, cfs[3].Time())
}

func TestPeriods_TruncatesFractionalHalfYears(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, bond.BondQuote{Maturity: 0.5}.Periods())
	assert.Equal(t, 1, bond.BondQuote{Maturity: 0.9}.Periods())
	assert.Equal(t, 3, bond.BondQuote{Maturity: 1.5}.Periods())
	assert.Equal(t, 0, bond.BondQuote{Maturity: 0.25}.Periods())
	assert.Nil(t, bond.BondQuote{Maturity: 0.25, FaceValue: 100}.Schedule())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := bond.BondQuote{Maturity: 1, CouponRate: 4.5, Price: 99, FaceValue: 100}
	require.NoError(t, good.Validate())

	cases := map[string]bond.BondQuote{
		"short maturity":    {Maturity: 0.25, CouponRate: 4, Price: 99, FaceValue: 100},
		"negative maturity": {Maturity: -1, CouponRate: 4, Price: 99, FaceValue: 100},
		"nan maturity":      {Maturity: math.NaN(), CouponRate: 4, Price: 99, FaceValue: 100},
		"zero price":        {Maturity: 1, CouponRate: 4, Price: 0, FaceValue: 100},
		"negative face":     {Maturity: 1, CouponRate: 4, Price: 99, FaceValue: -100},
		"inf coupon":        {Maturity: 1, CouponRate: math.Inf(1), Price: 99, FaceValue: 100},
	}
	for name, q := range cases {
		assert.ErrorIs(t, q.Validate(), bond.ErrInvalidInput, name)
	}
}
