package compose

import "math"

// NormalizeWeights fits weights to n entries and scales them to sum to 1.
//
// A longer list is truncated and a shorter one zero-padded. A nil list
// means equal weights. Negative, NaN and infinite weights count as zero. When
// nothing positive remains the result is equal weights 1/n rather than a
// division by zero.
func NormalizeWeights(weights []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if weights == nil {
		return equal(out)
	}
	sum := 0.0
	for i := 0; i < n && i < len(weights); i++ {
		w := weights[i]
		if w > 0 && !math.IsInf(w, 1) {
			out[i] = w
			sum += w
		}
	}
	if sum <= 0 {
		return equal(out)
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func equal(out []float64) []float64 {
	w := 1 / float64(len(out))
	for i := range out {
		out[i] = w
	}
	return out
}

// Segment is the slice of the unit progress domain owned by one curve in
// a sequence.
type Segment struct {
	Offset float64
	Weight float64
}

// End returns the right edge of the segment.
func (s Segment) End() float64 { return s.Offset + s.Weight }

// Segments lays normalized weights end to end across [0,1].
func Segments(weights []float64) []Segment {
	out := make([]Segment, len(weights))
	offset := 0.0
	for i, w := range weights {
		out[i] = Segment{Offset: offset, Weight: w}
		offset += w
	}
	return out
}
