package monitor

import (
	"sync/atomic"
)

// SortStats counts what the sort engine did across calls. Counters are
// atomic so callers may read them while sorts run on other goroutines.
type SortStats struct {
	SortCount     uint64
	FallbackCount uint64
	SpilledKeys   uint64
	RepeatedKeys  uint64
}

func NewSortStats() *SortStats {
	return &SortStats{}
}

func (ss *SortStats) RecordSort() {
	atomic.AddUint64(&ss.SortCount, 1)
}

func (ss *SortStats) RecordFallback() {
	atomic.AddUint64(&ss.FallbackCount, 1)
}

func (ss *SortStats) RecordSpilled(n int) {
	atomic.AddUint64(&ss.SpilledKeys, uint64(n))
}

func (ss *SortStats) RecordRepeated(n int) {
	atomic.AddUint64(&ss.RepeatedKeys, uint64(n))
}

func (ss *SortStats) Sorts() uint64 {
	return atomic.LoadUint64(&ss.SortCount)
}

func (ss *SortStats) Fallbacks() uint64 {
	return atomic.LoadUint64(&ss.FallbackCount)
}

func (ss *SortStats) Spilled() uint64 {
	return atomic.LoadUint64(&ss.SpilledKeys)
}

func (ss *SortStats) Repeated() uint64 {
	return atomic.LoadUint64(&ss.RepeatedKeys)
}

// GetFallbackRatio reports learned sorts per fallback sort.
func (ss *SortStats) GetFallbackRatio() float64 {
	sorts := atomic.LoadUint64(&ss.SortCount)
	fallbacks := atomic.LoadUint64(&ss.FallbackCount)

	if fallbacks == 0 {
		if sorts > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(sorts) / float64(fallbacks)
}
