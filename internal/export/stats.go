package export

import "math"

type summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// describe computes count, mean, sample standard deviation and the range of
// values. The caller guarantees len(values) > 0. With a single value the
// standard deviation is reported as 0.
func describe(values []float64) summary {
	s := summary{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}

	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(values))

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(len(values)-1))
	}
	return s
}
