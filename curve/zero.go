package curve

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/meenmo/zerocurve/bond"
)

// Point is one bootstrapped node: a maturity in years and its zero rate as a
// decimal, compounded semi-annually.
type Point struct {
	Maturity float64
	Rate     float64
}

// ZeroCurve is a maturity-ascending, duplicate-free set of zero rates.
// The zero value is an empty curve. Accessors return copies, so a curve
// returned by Bootstrap cannot be changed by its consumers.
type ZeroCurve struct {
	points []Point
}

// NewZeroCurve builds a curve from points that are already in strictly
// ascending maturity order.
func NewZeroCurve(points []Point) (ZeroCurve, error) {
	out := make([]Point, len(points))
	for i, p := range points {
		if math.IsNaN(p.Maturity) || math.IsNaN(p.Rate) {
			return ZeroCurve{}, fmt.Errorf("NewZeroCurve: %w: NaN at index %d", ErrInvalidInput, i)
		}
		if i > 0 && !(p.Maturity > points[i-1].Maturity) {
			return ZeroCurve{}, fmt.Errorf("NewZeroCurve: %w: maturity %g does not follow %g", ErrInvalidInput, p.Maturity, points[i-1].Maturity)
		}
		out[i] = p
	}
	return ZeroCurve{points: out}, nil
}

func (c ZeroCurve) Len() int {
	return len(c.points)
}

// Points returns a copy of the nodes.
func (c ZeroCurve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

func (c ZeroCurve) Maturities() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.Maturity
	}
	return out
}

func (c ZeroCurve) Rates() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.Rate
	}
	return out
}

// RatesPercent returns the rates multiplied by 100.
func (c ZeroCurve) RatesPercent() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.Rate * 100
	}
	return out
}

// RateAt returns the zero rate stored at exactly maturity. There is no
// interpolation: a maturity between nodes reports false.
func (c ZeroCurve) RateAt(maturity float64) (float64, bool) {
	i := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Maturity >= maturity
	})
	if i < len(c.points) && c.points[i].Maturity == maturity {
		return c.points[i].Rate, true
	}
	return 0, false
}

// DiscountFactor returns 1/(1+z/2)^(2T) for a node maturity T.
func (c ZeroCurve) DiscountFactor(maturity float64) (float64, bool) {
	z, ok := c.RateAt(maturity)
	if !ok {
		return 0, false
	}
	return bond.ZeroCouponPrice(1, z, maturity, bond.PaymentsPerYear), true
}

// Last returns the longest node.
func (c ZeroCurve) Last() (Point, bool) {
	if len(c.points) == 0 {
		return Point{}, false
	}
	return c.points[len(c.points)-1], true
}

// extend returns the curve with p appended. Callers guarantee ordering.
func (c ZeroCurve) extend(p Point) ZeroCurve {
	return ZeroCurve{points: append(c.points, p)}
}

// Format writes one "Time <T> years: <r>%" line per node.
func (c ZeroCurve) Format(w io.Writer, decimals int) error {
	for _, p := range c.points {
		if _, err := fmt.Fprintf(w, "Time %g years: %.*f%%\n", p.Maturity, decimals, p.Rate*100); err != nil {
			return err
		}
	}
	return nil
}

type pointJSON struct {
	Maturity float64 `json:"maturity" yaml:"maturity"`
	Rate     float64 `json:"rate" yaml:"rate"`
	RatePct  float64 `json:"rate_pct" yaml:"rate_pct"`
}

type curveJSON struct {
	Points []pointJSON `json:"points" yaml:"points"`
}

func (c ZeroCurve) document() curveJSON {
	doc := curveJSON{Points: make([]pointJSON, len(c.points))}
	for i, p := range c.points {
		doc.Points[i] = pointJSON{Maturity: p.Maturity, Rate: p.Rate, RatePct: p.Rate * 100}
	}
	return doc
}

func (c ZeroCurve) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.document())
}

// MarshalYAML renders the same document shape as MarshalJSON.
func (c ZeroCurve) MarshalYAML() (interface{}, error) {
	return c.document(), nil
}

func (c *ZeroCurve) UnmarshalJSON(data []byte) error {
	var doc curveJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	points := make([]Point, len(doc.Points))
	for i, p := range doc.Points {
		points[i] = Point{Maturity: p.Maturity, Rate: p.Rate}
	}
	parsed, err := NewZeroCurve(points)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
