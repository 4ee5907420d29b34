package indicator

import "math"

// smaSeries computes rolling means over a window. Output length is
// len(xs)-window+1; index 0 corresponds to source index window-1.
func smaSeries(xs []float64, window int) []float64 {
	out := make([]float64, 0, len(xs)-window+1)
	sum := 0.0
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// emaSeries computes a full-length exponential moving average seeded with
// xs[0]. alpha defaults to 2/(window+1) when zero.
func emaSeries(xs []float64, window int, alpha float64) []float64 {
	if alpha == 0 {
		alpha = 2.0 / float64(window+1)
	}
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = xs[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// rollingStd computes the population standard deviation over each window.
// Output aligns with smaSeries: index 0 corresponds to source index window-1.
func rollingStd(xs []float64, window int, means []float64) []float64 {
	out := make([]float64, 0, len(means))
	for j := range means {
		mean := means[j]
		var sq float64
		for i := j; i < j+window; i++ {
			d := xs[i] - mean
			sq += d * d
		}
		out = append(out, math.Sqrt(sq/float64(window)))
	}
	return out
}
