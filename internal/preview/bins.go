package preview

import "math"

const (
	binBase    = 10
	binEpsilon = 1e-14
)

// binDivisors are tried in order to refine the step below a power of ten.
var binDivisors = []float64{5, 2}

// bins is a bin layout over [start, stop) with a fixed step.
type bins struct {
	start, stop, step float64
}

// newBins picks a step of the form 10^k, 10^k/2 or 10^k/5 giving at most
// maxbins bins over [lo, hi]. With nice the boundaries are widened to
// multiples of the step.
func newBins(lo, hi, maxbins float64, nice bool) bins {
	if maxbins < 1 || math.IsNaN(maxbins) {
		maxbins = 20
	}

	span := hi - lo
	if span == 0 {
		span = math.Abs(lo)
	}

	if span == 0 {
		span = 1
	}

	logb := math.Log(binBase)
	level := math.Ceil(math.Log(maxbins) / logb)
	step := math.Max(0, math.Pow(binBase, math.Round(math.Log(span)/logb)-level))

	for math.Ceil(span/step) > maxbins {
		step *= binBase
	}

	for _, d := range binDivisors {
		if v := step / d; span/v <= maxbins {
			step = v
		}
	}

	if nice {
		v := math.Log(step)

		precision := 0.0
		if v < 0 {
			precision = math.Trunc(-v/logb) + 1
		}

		eps := math.Pow(binBase, -precision-1)

		start := math.Floor(lo/step+eps) * step
		if lo < start {
			start -= step
		}

		lo = start
		hi = math.Ceil(hi/step) * step
	}

	if hi == lo {
		hi = lo + step
	}

	return bins{start: lo, stop: hi, step: step}
}

// index returns the start of the bin holding v. Values outside the layout
// map to -Inf or +Inf; the stop value falls into the last bin.
func (b bins) index(v float64) float64 {
	switch {
	case v < b.start:
		return math.Inf(-1)
	case v > b.stop:
		return math.Inf(1)
	}

	v = math.Max(b.start, math.Min(v, b.stop-b.step))

	return b.start + b.step*math.Floor(binEpsilon+(v-b.start)/b.step)
}
