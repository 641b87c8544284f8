package model

// LinearSegment is one straight-line piece of the CDF model.
type LinearSegment struct {
	Slope     float64
	Intercept float64
}

// Predict evaluates the segment at x.
func (s LinearSegment) Predict(x float64) float64 {
	return s.Slope*x + s.Intercept
}

// trainingPoint pairs a key (cast to float64) with its scaled CDF value,
// i.e. its rank in the sorted sample divided by the sample size.
type trainingPoint struct {
	x float64
	y float64
}

// interpolate fits a segment through two training points.
func interpolate(lo, hi trainingPoint) LinearSegment {
	slope := (hi.y - lo.y) / (hi.x - lo.x)
	return LinearSegment{
		Slope:     slope,
		Intercept: lo.y - slope*lo.x,
	}
}
