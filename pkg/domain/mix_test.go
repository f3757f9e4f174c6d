package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Victor-Leroy/winemix/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func sampleMixes() []*domain.Mix {
	return []*domain.Mix{
		domain.NewMix(0, 0, 0),
		domain.NewMix(1, 0, 0),
		domain.NewMix(0.2, 0.3, 0.5),
		domain.NewMix(3, 4, 0),
		domain.NewMix(0.125, 0, 0.875),
	}
}

func TestMix_Derived(t *testing.T) {
	m := domain.NewMix(3, 4)
	assert.Equal(t, 2, m.Count())
	assert.InDelta(t, 7.0, m.Sum(), tol)
	assert.InDelta(t, 5.0, m.Length(), tol)
	assert.Equal(t, []float64{3, 4}, m.Values())
}

func TestMix_ValuesAreCopied(t *testing.T) {
	src := []float64{1, 2}
	m := domain.NewMix(src...)
	src[0] = 99
	assert.Equal(t, 1.0, m.Value(0))

	out := m.Values()
	out[1] = 99
	assert.Equal(t, 2.0, m.Value(1))
}

func TestMix_Properties(t *testing.T) {
	mixes := sampleMixes()
	for _, a := range mixes {
		assert.InDelta(t, 0, a.Distance(a), tol, "distance(m, m) for %v", a)
		assert.GreaterOrEqual(t, a.Length(), 0.0)

		for _, b := range mixes {
			assert.True(t, domain.Add(a, domain.Subtract(b, a)).Equal(b, tol), "a + (b - a) == b for %v, %v", a, b)
			assert.True(t, a.Lerp(b, 0).Equal(a, tol), "lerp(a, b, 0) == a")
			assert.True(t, a.Lerp(b, 1).Equal(b, tol), "lerp(a, b, 1) == b")
		}
	}
}

func TestMix_Normal(t *testing.T) {
	for _, m := range sampleMixes() {
		n := m.Normal()
		if m.Length() > domain.Epsilon {
			assert.InDelta(t, 1.0, n.Length(), tol, "normal of %v", m)
		} else {
			assert.Same(t, m, n)
		}
	}

	tiny := domain.NewMix(1e-14, 0)
	assert.Same(t, tiny, tiny.Normal())
}

func TestMix_Lerp(t *testing.T) {
	a := domain.NewMix(0, 2)
	b := domain.NewMix(4, 0)
	mid := domain.Lerp(a, b, domain.DefaultLerp)
	assert.Equal(t, []float64{2, 1}, mid.Values())

	quarter := a.Lerp(b, 0.25)
	assert.InDeltaSlice(t, []float64{1, 1.5}, quarter.Values(), tol)
}

func TestMix_ScaleAndDiv(t *testing.T) {
	m := domain.NewMix(1, 2)
	assert.Equal(t, []float64{2, 4}, domain.Scale(m, 2).Values())
	assert.Equal(t, []float64{0.5, 1}, m.Div(2).Values())
	assert.Equal(t, []float64{1, 2}, m.Values(), "receiver unchanged")
}

func TestMix_DistanceToNothing(t *testing.T) {
	m := domain.NewMix(1)
	assert.Equal(t, math.MaxFloat64, m.Distance(nil))
	assert.Equal(t, math.MaxFloat64, m.DistanceOfNormals(nil))
}

func TestMix_DistanceOfNormals(t *testing.T) {
	a := domain.NewMix(1, 1)
	b := domain.NewMix(5, 5)
	assert.InDelta(t, 0, a.DistanceOfNormals(b), tol, "same direction, different volume")

	c := domain.NewMix(1, 0)
	d := domain.NewMix(0, 3)
	assert.InDelta(t, math.Sqrt2, c.DistanceOfNormals(d), tol)
	assert.InDelta(t, math.Sqrt(10), domain.Distance(c, d), tol)
}

func TestMix_CountUsedWines(t *testing.T) {
	assert.Equal(t, 2, domain.NewMix(0.5, 0, -0.1, 0.5).CountUsedWines())
	assert.Equal(t, 0, domain.NewMix(0, 0).CountUsedWines())
}

func TestMixFromIndex(t *testing.T) {
	m := domain.MixFromIndex(2, 4)
	assert.Equal(t, []float64{0, 0, 1, 0}, m.Values())
	assert.InDelta(t, 1.0, m.Sum(), tol)
	assert.Equal(t, 1, m.CountUsedWines())
}

func TestMix_String(t *testing.T) {
	assert.Equal(t, "(0.5, 0.333, 1, 0)", domain.NewMix(0.5, 1.0/3, 1, 0).String())
	var nothing *domain.Mix
	assert.Equal(t, "()", nothing.String())
}

func TestMix_Equal(t *testing.T) {
	var nothing *domain.Mix
	assert.True(t, nothing.Equal(nil, tol))
	assert.False(t, domain.NewMix(1).Equal(nil, tol))
	assert.False(t, domain.NewMix(1).Equal(domain.NewMix(1, 0), tol))
	assert.True(t, domain.NewMix(1).Equal(domain.NewMix(1+1e-12), tol))
}

func TestMix_DimensionMismatchPanics(t *testing.T) {
	a := domain.NewMix(1, 2)
	b := domain.NewMix(1, 2, 3)

	ops := map[string]func(){
		"add":      func() { a.Add(b) },
		"subtract": func() { a.Sub(b) },
		"lerp":     func() { a.Lerp(b, 0.5) },
		"distance": func() { a.Distance(b) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, domain.ErrDimensionMismatch))
				var dimErr *domain.DimensionError
				require.ErrorAs(t, err, &dimErr)
				assert.Equal(t, 2, dimErr.Left)
				assert.Equal(t, 3, dimErr.Right)
			}()
			op()
		})
	}
}
