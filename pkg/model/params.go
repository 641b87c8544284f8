package model

import "log"

// Default hyperparameter values, applied whenever a caller-supplied field is
// out of range.
const (
	DefaultBatchSize      = 10
	DefaultFanout         = 1000
	DefaultOverallocRatio = 1.1
	DefaultSamplingRate   = 0.01
	DefaultThreshold      = 100
	DefaultNumLeaves      = 1000

	// MinSortingSize is the floor on the training sample size.
	MinSortingSize = 10000
)

// Warn receives parameter-repair notices. Replace it to redirect or discard
// diagnostics; the sorter behaves the same either way.
var Warn = func(format string, args ...any) {
	log.Printf(format, args...)
}

// Params holds the CDF model hyperparameters. All fields are repaired to
// their defaults by Validate if out of range; repairs are never fatal.
type Params struct {
	BatchSize      int
	Fanout         int
	OverallocRatio float64
	SamplingRate   float64
	Threshold      int
	Arch           []int
}

// NewParams returns the default hyperparameters.
func NewParams() *Params {
	return &Params{
		BatchSize:      DefaultBatchSize,
		Fanout:         DefaultFanout,
		OverallocRatio: DefaultOverallocRatio,
		SamplingRate:   DefaultSamplingRate,
		Threshold:      DefaultThreshold,
		Arch:           []int{1, DefaultNumLeaves},
	}
}

// Validate repairs out-of-range hyperparameters in place, reporting each
// adjustment through Warn.
func (p *Params) Validate(inputSize int) {
	if p.BatchSize < 1 || p.BatchSize >= inputSize {
		p.BatchSize = DefaultBatchSize
		Warn("learnsort: invalid batch size, using default (%d)", DefaultBatchSize)
	}

	if p.Fanout < 1 || p.Fanout >= inputSize {
		p.Fanout = DefaultFanout
		Warn("learnsort: invalid fanout, using default (%d)", DefaultFanout)
	}

	if p.OverallocRatio <= 1 {
		p.OverallocRatio = DefaultOverallocRatio
		Warn("learnsort: invalid overallocation ratio, using default (%g)", DefaultOverallocRatio)
	}

	if p.SamplingRate <= 0 || p.SamplingRate > 1 {
		p.SamplingRate = DefaultSamplingRate
		Warn("learnsort: invalid sampling rate, using default (%g)", DefaultSamplingRate)
	}

	if p.Threshold < 1 || p.Threshold >= inputSize || p.Threshold >= inputSize/p.Fanout {
		p.Threshold = DefaultThreshold
		Warn("learnsort: invalid threshold, using default (%d)", DefaultThreshold)
	}

	if len(p.Arch) != 2 || p.Arch[0] != 1 || p.Arch[1] < 2 {
		p.Arch = []int{1, DefaultNumLeaves}
		Warn("learnsort: invalid architecture, using default {1, %d}", DefaultNumLeaves)
	}
}
