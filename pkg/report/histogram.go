package report

import "math"

// Histogram holds fixed-width bin counts over [Lo, Hi]. Counts are float64
// so normalization can scale them in place.
type Histogram struct {
	Lo       float64
	Hi       float64
	BinWidth float64
	Counts   []float64
}

// NewHistogram bins values into bins equal-width bins spanning [lo, hi].
// Values outside the range are clamped into the edge bins; a degenerate
// range puts everything in the first bin.
func NewHistogram(values []float64, bins int, lo, hi float64) *Histogram {
	if bins < 1 {
		bins = 1
	}

	h := &Histogram{
		Lo:     lo,
		Hi:     hi,
		Counts: make([]float64, bins),
	}

	if hi > lo {
		h.BinWidth = (hi - lo) / float64(bins)
	}

	for _, v := range values {
		h.Counts[h.binIndex(v, bins)]++
	}

	return h
}

func (h *Histogram) binIndex(v float64, bins int) int {
	if h.BinWidth == 0 {
		return 0
	}

	idx := int((v - h.Lo) / h.BinWidth)
	if idx < 0 {
		return 0
	}

	if idx >= bins {
		return bins - 1
	}

	return idx
}

// Normalize scales the counts so the area under the histogram is 1.
func (h *Histogram) Normalize() {
	total := 0.0
	for _, c := range h.Counts {
		total += c
	}

	if total == 0 || h.BinWidth == 0 {
		return
	}

	for i := range h.Counts {
		h.Counts[i] /= total * h.BinWidth
	}
}

// MaxCount returns the largest bin count.
func (h *Histogram) MaxCount() float64 {
	maxCount := 0.0
	for _, c := range h.Counts {
		if c > maxCount {
			maxCount = c
		}
	}

	return maxCount
}

// ValueRange returns the smallest and largest value across all series so
// every histogram in a report shares the same horizontal axis.
func ValueRange(series []Series) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)

	for _, s := range series {
		for _, v := range s.Values {
			if v < lo {
				lo = v
			}

			if v > hi {
				hi = v
			}
		}
	}

	if math.IsInf(lo, 1) {
		return 0, 0
	}

	return lo, hi
}
