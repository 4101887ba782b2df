package compose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/easelab/internal/curve"
)

func TestNormalizeWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		n       int
		want    []float64
	}{
		{"nil means equal", nil, 4, []float64{0.25, 0.25, 0.25, 0.25}},
		{"scaled", []float64{1, 3}, 2, []float64{0.25, 0.75}},
		{"truncated", []float64{1, 1, 5}, 2, []float64{0.5, 0.5}},
		{"padded", []float64{2}, 2, []float64{1, 0}},
		{"all zero", []float64{0, 0, 0}, 3, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}},
		{"negative and NaN dropped", []float64{-1, math.NaN(), 2}, 3, []float64{0, 0, 1}},
		{"empty list", []float64{}, 2, []float64{0.5, 0.5}},
		{"no curves", []float64{1}, 0, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeWeights(tt.weights, tt.n)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestNormalizeWeightsIdempotent(t *testing.T) {
	w := []float64{0.1, 0.2, 0.3, 0.4}
	once := NormalizeWeights(w, 4)
	twice := NormalizeWeights(once, 4)
	for i := range w {
		assert.InDelta(t, w[i], once[i], 1e-12)
		assert.InDelta(t, once[i], twice[i], 1e-12)
	}
}

func TestSegmentsContiguous(t *testing.T) {
	segs := Segments(NormalizeWeights([]float64{1, 2, 1}, 3))
	require.Len(t, segs, 3)
	assert.Equal(t, 0.0, segs[0].Offset)
	for i := 1; i < len(segs); i++ {
		assert.InDelta(t, segs[i-1].End(), segs[i].Offset, 1e-12)
	}
	assert.InDelta(t, 1.0, segs[2].End(), 1e-12)
}

func TestSequenceLinearHalves(t *testing.T) {
	seq := Sequence([]curve.Curve{curve.Linear, curve.Linear}, nil)
	assert.InDelta(t, 0.5, seq(0.25), 1e-12)
	assert.InDelta(t, 0.0, seq(0.5), 1e-12)
	assert.InDelta(t, 1.0, seq(1), 1e-12)
	assert.InDelta(t, 0.0, seq(0), 1e-12)
}

func TestSequenceCoverage(t *testing.T) {
	hits := make([]int, 3)
	mk := func(i int) curve.Curve {
		return func(x float64) float64 {
			hits[i]++
			return x + float64(i)
		}
	}
	weights := []float64{0.2, 0.5, 0.3}
	seq := Sequence([]curve.Curve{mk(0), mk(1), mk(2)}, weights)
	for x := 0.0; x <= 1.0; x += 0.01 {
		v := seq(x)
		assert.True(t, curve.IsFinite(v))
	}
	for i, h := range hits {
		assert.Positive(t, h, "curve %d never evaluated", i)
	}

	// At each segment start the output is that curve evaluated at 0.
	for i, s := range Segments(NormalizeWeights(weights, 3)) {
		assert.InDelta(t, float64(i), seq(s.Offset), 1e-9)
	}
}

func TestSequenceSkipsZeroWidth(t *testing.T) {
	never := func(float64) float64 { return 99 }
	seq := Sequence([]curve.Curve{curve.Linear, never, curve.Linear}, []float64{1, 0, 1})
	for x := 0.0; x <= 1.0; x += 0.05 {
		assert.NotEqual(t, 99.0, seq(x))
	}
}

func TestSequenceOutOfDomain(t *testing.T) {
	seq := Sequence([]curve.Curve{curve.Linear, curve.Linear}, nil)
	assert.Equal(t, 0.0, seq(-0.5))
	assert.Equal(t, 1.0, seq(1.5))
	assert.Equal(t, 0.0, seq(math.NaN()))
}

func TestEmptyCompositions(t *testing.T) {
	assert.Equal(t, 0.0, Sequence(nil, nil)(0.7))
	assert.Equal(t, 0.0, Blend(nil, []float64{1})(0.7))
}

func TestBlendLinearity(t *testing.T) {
	reg := curve.Default()
	a := reg.MustGet("easeInCubic")
	b := reg.MustGet("easeOutBack")
	for _, w := range []float64{0, 0.25, 0.5, 0.9, 1} {
		bl := Blend([]curve.Curve{a, b}, []float64{w, 1 - w})
		for x := 0.0; x <= 1.0; x += 0.02 {
			assert.InDelta(t, w*a(x)+(1-w)*b(x), bl(x), 1e-12)
		}
	}
}

func TestBlendBoundaries(t *testing.T) {
	reg := curve.Default()
	var cs []curve.Curve
	for _, name := range reg.List() {
		cs = append(cs, reg.MustGet(name))
	}
	bl := Blend(cs, nil)
	assert.InDelta(t, 0.0, bl(0), 1e-12)
	assert.InDelta(t, 1.0, bl(1), 1e-12)
}

func TestConditional(t *testing.T) {
	empty := Conditional()
	for _, x := range []float64{-1, 0, 0.3, 1, 2} {
		assert.Equal(t, x, empty(x))
	}

	half := func(x float64) float64 { return x / 2 }
	double := func(x float64) float64 { return x * 2 }
	c := Conditional(
		Branch{When: Below(0.5), Curve: half},
		Branch{When: Within(0.25, 0.75), Curve: double},
		Branch{When: nil, Curve: double},
	)
	assert.Equal(t, 0.1, c(0.2))
	assert.Equal(t, 1.2, c(0.6))
	assert.Equal(t, 0.9, c(0.9))
}
