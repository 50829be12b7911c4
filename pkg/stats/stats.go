// Package stats computes descriptive statistics over tissue ROIs and
// whole segmentations.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"qmrelax/pkg/segmentation"
)

// Summary holds the descriptive statistics of one parameter ROI.
//
// Stdev uses Bessel's correction (divide by N-1) and is NaN for fewer
// than two values. Median, Q95 and Q05 use linear interpolation between
// closest ranks.
type Summary struct {
	Mean   float64 `yaml:"mean"`
	Stdev  float64 `yaml:"stdev"`
	Max    float64 `yaml:"max"`
	Min    float64 `yaml:"min"`
	Median float64 `yaml:"median"`
	Q95    float64 `yaml:"q_95"`
	Q05    float64 `yaml:"q_05"`
}

// Describe computes the summary statistics of a value array.
//
// An empty input yields an all-NaN summary with a non-fatal warning
// rather than an error; callers must be prepared for NaN propagation
// into downstream displays.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		log.Warn().Msg("describing empty value array, statistics are NaN")
		nan := math.NaN()
		return Summary{Mean: nan, Stdev: nan, Max: nan, Min: nan, Median: nan, Q95: nan, Q05: nan}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Mean:   stat.Mean(values, nil),
		Stdev:  stat.StdDev(values, nil),
		Max:    sorted[len(sorted)-1],
		Min:    sorted[0],
		Median: quantile(0.5, sorted),
		Q95:    quantile(0.95, sorted),
		Q05:    quantile(0.05, sorted),
	}
}

// quantile returns the q-th quantile of a sorted, non-empty value array
// using linear interpolation between closest ranks: the rank is
// h = q*(N-1), interpolated between the neighboring order statistics.
func quantile(q float64, sorted []float64) float64 {
	h := q * float64(len(sorted)-1)
	i := int(h)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// TissueStatistics holds the per-parameter summaries of one tissue plus
// its voxel volume.
//
// Volume is the element count of the first parameter's values array in
// insertion order, NOT the mask-volume attribute of the tissue ROI. The
// two coincide for a properly masked extraction but are computed
// independently.
type TissueStatistics struct {
	Parameters map[string]Summary
	Volume     int
}

// MarshalYAML flattens the statistics into the report shape consumed by
// external plotting: parameter names and "volume" as sibling keys.
func (t TissueStatistics) MarshalYAML() (interface{}, error) {
	out := make(map[string]interface{}, len(t.Parameters)+1)
	for name, summary := range t.Parameters {
		out[name] = summary
	}
	out["volume"] = t.Volume
	return out, nil
}

// ComputeTissue computes summary statistics for every parameter of a
// single tissue ROI.
func ComputeTissue(tissue *segmentation.TissueROI) TissueStatistics {
	parameters := tissue.Parameters()

	statistics := TissueStatistics{
		Parameters: make(map[string]Summary, len(parameters)),
	}
	for i, parameter := range parameters {
		statistics.Parameters[parameter.Name] = Describe(parameter.Values)
		if i == 0 {
			statistics.Volume = len(parameter.Values)
		}
	}

	if len(parameters) > 0 && statistics.Volume != tissue.Volume {
		log.Warn().
			Str("tissue", tissue.Name).
			Int("statisticsVolume", statistics.Volume).
			Int("maskVolume", tissue.Volume).
			Msg("statistics volume diverges from mask volume")
	}

	return statistics
}

// Compute computes per-tissue statistics for a whole segmentation,
// keyed by tissue name. If tissue names collide, the last tissue in
// post-sort order wins.
func Compute(seg *segmentation.Segmentation) map[string]TissueStatistics {
	statistics := make(map[string]TissueStatistics, seg.Len())
	for _, tissue := range seg.Tissues() {
		statistics[tissue.Name] = ComputeTissue(tissue)
	}
	return statistics
}

// ValueAndUncert extracts the (mean, stdev) pair of one parameter from a
// tissue's statistics, as consumed by error-bar plotting.
func ValueAndUncert(statistics TissueStatistics, parameterName string) (float64, float64, error) {
	summary, ok := statistics.Parameters[parameterName]
	if !ok {
		return 0, 0, fmt.Errorf("no statistics for parameter %q", parameterName)
	}
	return summary.Mean, summary.Stdev, nil
}
