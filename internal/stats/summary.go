// Package stats aggregates simulation results and writes run artifacts.
package stats

import "math"

// DiscountedReturn aggregates rewards with geometric weighting. A discount
// of 1 reduces to the plain sum.
func DiscountedReturn(rewards []float64, discount float64) float64 {
	total := 0.0
	weight := 1.0
	for _, r := range rewards {
		total += weight * r
		weight *= discount
	}
	return total
}

type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes descriptive statistics over per-episode values. An
// empty input yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sum := 0.0
	min := values[0]
	max := values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return Summary{
		Count:  len(values),
		Mean:   mean,
		Min:    min,
		Max:    max,
		StdDev: math.Sqrt(variance),
	}
}

// Rate is the empirical frequency of true events.
func Rate(events []bool) float64 {
	if len(events) == 0 {
		return 0
	}
	hits := 0
	for _, e := range events {
		if e {
			hits++
		}
	}
	return float64(hits) / float64(len(events))
}
