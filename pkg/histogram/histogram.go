// Package histogram bins parameter ROI values into one- and
// two-dimensional histogram counts. It produces the data consumed by
// external drawing code and does no rendering itself.
package histogram

import (
	"fmt"
)

// Histogram holds equal-width bin counts over a value array. Edges has
// one more entry than Counts; bin i covers [Edges[i], Edges[i+1]), with
// the last bin closed on the right.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// Compute bins values into the given number of equal-width bins spanning
// [min(values), max(values)]. Values equal to the maximum land in the
// last bin. A degenerate input (empty, or all values identical) yields a
// single bin holding every value.
func Compute(values []float64, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("bin count must be positive, got %d", bins)
	}
	if len(values) == 0 {
		return Histogram{Edges: []float64{0, 0}, Counts: make([]int, 1)}, nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max <= min {
		return Histogram{Edges: []float64{min, max}, Counts: []int{len(values)}}, nil
	}

	hist := Histogram{
		Edges:  makeEdges(min, max, bins),
		Counts: make([]int, bins),
	}
	width := (max - min) / float64(bins)
	for _, v := range values {
		idx := int((v - min) / width)
		// Clamp the maximum value into the last bin
		if idx >= bins {
			idx = bins - 1
		} else if idx < 0 {
			idx = 0
		}
		hist.Counts[idx]++
	}
	return hist, nil
}

// Joint holds 2D joint histogram counts over two value arrays of equal
// length, e.g. the (T1, T2) values of one tissue. Counts is indexed
// [xBin][yBin].
type Joint struct {
	XEdges []float64
	YEdges []float64
	Counts [][]int
}

// ComputeJoint bins paired (x, y) samples into a bins-by-bins grid. The
// arrays must have equal length; a mismatch is a hard error since the
// pairing would be meaningless.
func ComputeJoint(x, y []float64, bins int) (Joint, error) {
	if len(x) != len(y) {
		return Joint{}, fmt.Errorf("joint histogram needs equal-length arrays, got %d and %d", len(x), len(y))
	}
	xHist, err := Compute(x, bins)
	if err != nil {
		return Joint{}, err
	}
	yHist, err := Compute(y, bins)
	if err != nil {
		return Joint{}, err
	}

	joint := Joint{
		XEdges: xHist.Edges,
		YEdges: yHist.Edges,
		Counts: make([][]int, len(xHist.Counts)),
	}
	for i := range joint.Counts {
		joint.Counts[i] = make([]int, len(yHist.Counts))
	}
	for i := range x {
		joint.Counts[binIndex(xHist.Edges, x[i])][binIndex(yHist.Edges, y[i])]++
	}
	return joint, nil
}

func makeEdges(min, max float64, bins int) []float64 {
	edges := make([]float64, bins+1)
	width := (max - min) / float64(bins)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max
	return edges
}

func binIndex(edges []float64, v float64) int {
	bins := len(edges) - 1
	if bins < 1 {
		return 0
	}
	min, max := edges[0], edges[bins]
	if max <= min {
		return 0
	}
	idx := int((v - min) / (max - min) * float64(bins))
	if idx >= bins {
		idx = bins - 1
	} else if idx < 0 {
		idx = 0
	}
	return idx
}
