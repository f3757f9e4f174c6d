package domain

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Epsilon is the tolerance under which a mix length counts as zero.
const Epsilon = 1e-12

// DefaultLerp is the interpolation amount used when blending two mixes halfway.
const DefaultLerp = 0.5

// Mix is an immutable composition vector: one non-negative amount per source wine.
// A nil *Mix stands for "no mix" (an empty tank).
type Mix struct {
	values []float64
	sum    float64
	length float64
}

// NewMix builds a Mix from the given amounts. The slice is copied.
func NewMix(values ...float64) *Mix {
	v := make([]float64, len(values))
	copy(v, values)
	return newMix(v)
}

// newMix takes ownership of v.
func newMix(v []float64) *Mix {
	return &Mix{
		values: v,
		sum:    floats.Sum(v),
		length: floats.Norm(v, 2),
	}
}

// MixFromIndex returns the pure mix of a single wine: the unit vector at index.
func MixFromIndex(index, numWines int) *Mix {
	v := make([]float64, numWines)
	v[index] = 1.0
	return newMix(v)
}

// Count is the number of wines the mix is expressed over.
func (m *Mix) Count() int { return len(m.values) }

// Sum is the total volume represented by the mix.
func (m *Mix) Sum() float64 { return m.sum }

// Length is the Euclidean norm of the mix.
func (m *Mix) Length() float64 { return m.length }

// Value returns the amount of wine i.
func (m *Mix) Value(i int) float64 { return m.values[i] }

// Values returns a copy of the amounts.
func (m *Mix) Values() []float64 {
	v := make([]float64, len(m.values))
	copy(v, m.values)
	return v
}

// Add returns m + other.
func (m *Mix) Add(other *Mix) *Mix {
	mustMatch("add", m, other)
	return newMix(floats.AddTo(make([]float64, len(m.values)), m.values, other.values))
}

// Sub returns m - other.
func (m *Mix) Sub(other *Mix) *Mix {
	mustMatch("subtract", m, other)
	return newMix(floats.SubTo(make([]float64, len(m.values)), m.values, other.values))
}

// Scale returns m * x.
func (m *Mix) Scale(x float64) *Mix {
	return newMix(floats.ScaleTo(make([]float64, len(m.values)), x, m.values))
}

// Div returns m / x.
func (m *Mix) Div(x float64) *Mix {
	return m.Scale(1.0 / x)
}

// Normal returns the mix scaled to unit length. A mix whose length is
// numerically zero is returned unchanged.
func (m *Mix) Normal() *Mix {
	if almostZero(m.length) {
		return m
	}
	return m.Div(m.length)
}

// Lerp interpolates element-wise between m (amount 0) and other (amount 1).
func (m *Mix) Lerp(other *Mix, amount float64) *Mix {
	mustMatch("lerp", m, other)
	v := floats.ScaleTo(make([]float64, len(m.values)), 1-amount, m.values)
	floats.AddScaled(v, amount, other.values)
	return newMix(v)
}

// Distance is the Euclidean distance between m and other.
// The distance to no mix is math.MaxFloat64 so that absent mixes sort last.
func (m *Mix) Distance(other *Mix) float64 {
	if other == nil {
		return math.MaxFloat64
	}
	mustMatch("distance", m, other)
	return floats.Distance(other.values, m.values, 2)
}

// DistanceOfNormals compares the direction of two mixes, ignoring volume.
func (m *Mix) DistanceOfNormals(other *Mix) float64 {
	if other == nil {
		return math.MaxFloat64
	}
	return m.Normal().Distance(other.Normal())
}

// CountUsedWines counts the wines with a strictly positive amount.
func (m *Mix) CountUsedWines() int {
	n := 0
	for _, v := range m.values {
		if v > 0 {
			n++
		}
	}
	return n
}

// Equal reports whether both mixes have the same width and all amounts
// agree within tol. Two nil mixes are equal.
func (m *Mix) Equal(other *Mix, tol float64) bool {
	if m == nil || other == nil {
		return m == nil && other == nil
	}
	if len(m.values) != len(other.values) {
		return false
	}
	return floats.EqualApprox(m.values, other.values, tol)
}

func (m *Mix) String() string {
	if m == nil {
		return "()"
	}
	parts := make([]string, len(m.values))
	for i, v := range m.values {
		parts[i] = formatAmount(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Add returns a + b.
func Add(a, b *Mix) *Mix { return a.Add(b) }

// Subtract returns a - b.
func Subtract(a, b *Mix) *Mix { return a.Sub(b) }

// Scale returns m * x.
func Scale(m *Mix, x float64) *Mix { return m.Scale(x) }

// Lerp interpolates between a and b; see (*Mix).Lerp.
func Lerp(a, b *Mix, amount float64) *Mix { return a.Lerp(b, amount) }

// Distance returns the distance between a and b; see (*Mix).Distance.
func Distance(a, b *Mix) float64 { return a.Distance(b) }

func mustMatch(op string, a, b *Mix) {
	if len(a.values) != len(b.values) {
		panic(&DimensionError{Op: op, Left: len(a.values), Right: len(b.values)})
	}
}

func almostZero(x float64) bool {
	return math.Abs(x) <= Epsilon
}

// formatAmount prints up to three decimals without trailing zeros.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
