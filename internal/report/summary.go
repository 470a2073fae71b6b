package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/banshee-data/pitching.report/internal/frame"
)

// Placeholder rendered for a reduction with no defined result.
const missingValue = "-"

// StartData pairs a start's configuration with its loaded dataset.
type StartData struct {
	Start StartConfig
	Frame *frame.Frame
}

// SummaryTable is the aggregator output: formatted strings, one row per
// metric, a label column first, then one value column per start.
type SummaryTable struct {
	Header []string
	Rows   [][]string
}

// BuildSummary computes every configured metric for every start,
// metric-major, preserving the configured order on both axes. An unknown
// reducer name fails immediately; an undefined reduction result becomes a
// placeholder dash.
func BuildSummary(cfg *Config, data []StartData) (SummaryTable, error) {
	table := SummaryTable{Header: []string{"Metric"}}
	for _, sd := range data {
		table.Header = append(table.Header, sd.Start.Label)
	}

	for _, metric := range cfg.SummaryMetrics {
		reducer, err := ParseReducer(metric.Reducer)
		if err != nil {
			return SummaryTable{}, fmt.Errorf("summary metric %q: %w", metric.Label, err)
		}

		row := []string{metric.Label}
		for _, sd := range data {
			values, err := sd.Frame.Floats(metric.Column)
			if err != nil {
				return SummaryTable{}, fmt.Errorf("summary metric %q: %w", metric.Label, err)
			}
			result := reducer.Apply(values)
			if math.IsNaN(result) {
				row = append(row, missingValue)
			} else {
				row = append(row, strconv.FormatFloat(result, 'f', metric.Precision, 64))
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
