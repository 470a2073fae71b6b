package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Reducer collapses a column's values to one summary number. It is a
// closed enumeration: unknown names fail in ParseReducer rather than at
// apply time.
type Reducer int

const (
	ReducerMax Reducer = iota
	ReducerMin
	ReducerMean
	ReducerMedian
)

// ParseReducer resolves a configured reducer name, case-insensitively.
// "avg" and "average" are accepted aliases for "mean".
func ParseReducer(name string) (Reducer, error) {
	switch strings.ToLower(name) {
	case "max":
		return ReducerMax, nil
	case "min":
		return ReducerMin, nil
	case "mean", "avg", "average":
		return ReducerMean, nil
	case "median":
		return ReducerMedian, nil
	default:
		return 0, fmt.Errorf("unsupported reducer: %s", name)
	}
}

func (r Reducer) String() string {
	switch r {
	case ReducerMax:
		return "max"
	case ReducerMin:
		return "min"
	case ReducerMean:
		return "mean"
	case ReducerMedian:
		return "median"
	default:
		return fmt.Sprintf("Reducer(%d)", int(r))
	}
}

// Apply reduces values to a single number. NaN cells are excluded; when no
// usable values remain the result is NaN, which the summary formatter
// renders as a placeholder dash.
func (r Reducer) Apply(values []float64) float64 {
	vals := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}

	switch r {
	case ReducerMax:
		return floats.Max(vals)
	case ReducerMin:
		return floats.Min(vals)
	case ReducerMean:
		return stat.Mean(vals, nil)
	case ReducerMedian:
		sort.Float64s(vals)
		n := len(vals)
		if n%2 == 1 {
			return vals[n/2]
		}
		return (vals[n/2-1] + vals[n/2]) / 2
	default:
		return math.NaN()
	}
}
