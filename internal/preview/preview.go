// Package preview writes an optional go-echarts HTML companion page for a
// report, with the same line series as the printable document, for quick
// on-screen review.
package preview

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/pitching.report/internal/frame"
	"github.com/banshee-data/pitching.report/internal/monitoring"
	"github.com/banshee-data/pitching.report/internal/plotting"
	"github.com/banshee-data/pitching.report/internal/report"
)

// lineChart builds one interactive line chart from prepared series.
func lineChart(title, subtitle, yName string, series []plotting.Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1100px", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Pitch Phase (%)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	for _, s := range series {
		data := make([]opts.LineData, 0, len(s.XYs))
		for _, pt := range s.XYs {
			data = append(data, opts.LineData{Value: []interface{}{pt.X, pt.Y}})
		}
		line.AddSeries(s.Label, data)
	}
	return line
}

// Write renders the preview page to path, creating directories as needed.
func Write(snap *report.Snapshot, path string) error {
	cfg := snap.Config

	seqSeries, err := plotting.SequenceSeries(snap)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.PageTitle = cfg.Title
	page.AddCharts(lineChart("Kinematic Sequence", cfg.Athlete.Name, "Angle / Position", seqSeries))

	if cfg.VelocityVariable != nil {
		velSeries, err := plotting.VelocitySeries(snap)
		if err != nil {
			return err
		}
		page.AddCharts(lineChart(cfg.VelocityVariable.Label, cfg.Athlete.Name, cfg.VelocityVariable.Label, velSeries))
	}

	if err := frame.EnsureOutputDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write preview file %s: %w", path, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render preview %s: %w", path, err)
	}
	monitoring.Logf("wrote HTML preview %s", path)
	return nil
}
