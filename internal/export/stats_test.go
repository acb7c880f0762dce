package export

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   summary
	}{
		{
			name:   "single value",
			values: []float64{5},
			want:   summary{Count: 1, Mean: 5, Std: 0, Min: 5, Max: 5},
		},
		{
			name:   "two values",
			values: []float64{50.50, 50.60},
			want:   summary{Count: 2, Mean: 50.55, Std: math.Sqrt(0.005), Min: 50.50, Max: 50.60},
		},
		{
			name:   "negative range",
			values: []float64{-2, 0, 2},
			want:   summary{Count: 3, Mean: 0, Std: 2, Min: -2, Max: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describe(tt.values)
			if got.Count != tt.want.Count {
				t.Errorf("Count = %d, want %d", got.Count, tt.want.Count)
			}
			approx := func(name string, got, want float64) {
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("%s = %v, want %v", name, got, want)
				}
			}
			approx("Mean", got.Mean, tt.want.Mean)
			approx("Std", got.Std, tt.want.Std)
			approx("Min", got.Min, tt.want.Min)
			approx("Max", got.Max, tt.want.Max)
		})
	}
}
