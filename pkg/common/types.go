package common

// Key is the set of key types the sorter accepts: numeric types with a
// natural total order and a cheap cast to float64 for CDF arithmetic.
type Key interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
