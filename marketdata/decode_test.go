package marketdata_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/zerocurve/bond"
	"github.com/meenmo/zerocurve/marketdata"
)

func TestDecodeQuotes_JSONShapes(t *testing.T) {
	t.Parallel()

	want := []bond.BondQuote{{Maturity: 0.5, CouponRate: 4, Price: 99.5, FaceValue: 100}}

	inputs := []string{
		`{"maturity": 0.5, "coupon_rate": 4, "price": 99.5, "face_value": 100}`,
		`[{"maturity": 0.5, "coupon_rate": 4, "price": 99.5}]`,
		`{"quotes": [{"tenor": "6M", "coupon_rate": 4, "price": 99.5}]}`,
	}
	for _, in := range inputs {
		got, err := marketdata.DecodeQuotes(strings.NewReader(in), marketdata.FormatJSON)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestDecodeQuotes_YAML(t *testing.T) {
	t.Parallel()

	list := `
- tenor: 6M
  coupon_rate: 4.0
  price: 99.5
- tenor: 18M
  coupon_rate: 5.0
  price: 98.5
  face_value: 1000
`
	got, err := marketdata.DecodeQuotes(strings.NewReader(list), marketdata.FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1.5, got[1].Maturity)
	assert.Equal(t, 1000.0, got[1].FaceValue)

	doc := "quotes:\n  - maturity: 2\n    coupon_rate: 5.5\n    price: 98\n"
	got, err = marketdata.DecodeQuotes(strings.NewReader(doc), "yml")
	require.NoError(t, err)
	assert.Equal(t, []bond.BondQuote{{Maturity: 2, CouponRate: 5.5, Price: 98, FaceValue: 100}}, got)
}

func TestDecodeQuotes_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":        "  ",
		"no maturity":  `{"coupon_rate": 4, "price": 99.5}`,
		"both":         `{"maturity": 1, "tenor": "1Y", "coupon_rate": 4, "price": 99.5}`,
		"bad tenor":    `{"tenor": "soon", "coupon_rate": 4, "price": 99.5}`,
		"empty array":  `[]`,
		"not json":     `maturity=1`,
		"broken array": `[{"maturity": 1,`,
	}
	for name, in := range cases {
		_, err := marketdata.DecodeQuotes(strings.NewReader(in), marketdata.FormatJSON)
		assert.Error(t, err, name)
	}

	_, err := marketdata.DecodeQuotes(strings.NewReader(`[]`), "csv")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, marketdata.FormatYAML, marketdata.FormatFromPath("quotes.YML"))
	assert.Equal(t, marketdata.FormatYAML, marketdata.FormatFromPath("dir/quotes.yaml"))
	assert.Equal(t, marketdata.FormatJSON, marketdata.FormatFromPath("quotes.json"))
	assert.Equal(t, marketdata.FormatJSON, marketdata.FormatFromPath("-"))
}

func TestStaticQuoteSource(t *testing.T) {
	t.Parallel()

	src := marketdata.NewStaticQuoteSource(map[string][]bond.BondQuote{
		"ref": marketdata.ReferenceQuotes(),
	})

	got, err := src.Quotes(context.Background(), "ref")
	require.NoError(t, err)
	require.Len(t, got, 4)

	got[0].Price = 0
	again, err := src.Quotes(context.Background(), "ref")
	require.NoError(t, err)
	assert.Equal(t, 99.5, again[0].Price)

	_, err = src.Quotes(context.Background(), "missing")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Quotes(ctx, "ref")
	assert.ErrorIs(t, err, context.Canceled)
}
