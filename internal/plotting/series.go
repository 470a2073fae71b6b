package plotting

import (
	"fmt"
	"image/color"
	"math"

	"github.com/banshee-data/pitching.report/internal/report"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Series is one legend-labeled line ready to be added to a panel.
type Series struct {
	Label string
	Style draw.LineStyle
	XYs   plotter.XYs
}

// EventMarker is one resolved point-of-interest annotation: the time of the
// first row matching an event code in one start's data.
type EventMarker struct {
	X          float64
	Label      string
	StartIndex int
}

// lineXYs pairs the time axis with a variable's values, dropping rows
// where either side is NaN.
func lineXYs(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

// SequenceSeries builds the kinematic sequence panel's lines: one per
// (variable, start) pair. A variable keeps one color across all starts:
// its configured color when set, else the next entry of the repeating
// palette. Dash patterns cycle by start position so starts stay
// distinguishable independent of color.
func SequenceSeries(snap *report.Snapshot) ([]Series, error) {
	cfg := snap.Config
	var out []Series

	nextPalette := 0
	for _, variable := range cfg.KinematicVariables {
		var col color.Color
		if variable.Color != "" {
			c, err := ParseColor(variable.Color)
			if err != nil {
				return nil, fmt.Errorf("kinematic variable %q: %w", variable.Label, err)
			}
			col = c
		} else {
			col = PaletteColor(nextPalette)
			nextPalette++
		}

		for si, sd := range snap.Data {
			xs, err := sd.Frame.Floats(cfg.TimeColumn)
			if err != nil {
				return nil, err
			}
			ys, err := sd.Frame.Floats(variable.Column)
			if err != nil {
				return nil, err
			}
			out = append(out, Series{
				Label: fmt.Sprintf("%s (%s)", variable.Label, sd.Start.Label),
				Style: draw.LineStyle{
					Color:  col,
					Width:  vg.Points(2),
					Dashes: DashPattern(si),
				},
				XYs: lineXYs(xs, ys),
			})
		}
	}
	return out, nil
}

// VelocitySeries builds the velocity overlay panel's lines, one per start:
// the start's configured color when set, else palette by start position,
// with the same dash cycling as the sequence panel.
func VelocitySeries(snap *report.Snapshot) ([]Series, error) {
	cfg := snap.Config
	if cfg.VelocityVariable == nil {
		return nil, nil
	}

	out := make([]Series, 0, len(snap.Data))
	for si, sd := range snap.Data {
		var col color.Color
		if sd.Start.Color != "" {
			c, err := ParseColor(sd.Start.Color)
			if err != nil {
				return nil, fmt.Errorf("start %q: %w", sd.Start.Label, err)
			}
			col = c
		} else {
			col = PaletteColor(si)
		}

		xs, err := sd.Frame.Floats(cfg.TimeColumn)
		if err != nil {
			return nil, err
		}
		ys, err := sd.Frame.Floats(cfg.VelocityVariable.Column)
		if err != nil {
			return nil, err
		}
		out = append(out, Series{
			Label: sd.Start.Label,
			Style: draw.LineStyle{
				Color:  col,
				Width:  vg.Points(2),
				Dashes: DashPattern(si),
			},
			XYs: lineXYs(xs, ys),
		})
	}
	return out, nil
}

// EventMarkers resolves the configured points of interest against every
// start: the first row whose event column equals the code yields a marker
// at that row's time. A code absent from a start's data is skipped, not an
// error.
func EventMarkers(snap *report.Snapshot) ([]EventMarker, error) {
	cfg := snap.Config
	var out []EventMarker

	for _, event := range cfg.PointsOfInterest {
		for si, sd := range snap.Data {
			codes, err := sd.Frame.Strings(report.EventColumn)
			if err != nil {
				return nil, err
			}
			times, err := sd.Frame.Floats(cfg.TimeColumn)
			if err != nil {
				return nil, err
			}
			for i, code := range codes {
				if code != event.Label {
					continue
				}
				if i < len(times) && !math.IsNaN(times[i]) {
					// Two lines: event label above, start below.
					out = append(out, EventMarker{
						X:          times[i],
						Label:      fmt.Sprintf("%s\n(%s)", event.Value, sd.Start.Label),
						StartIndex: si,
					})
				}
				break
			}
		}
	}
	return out, nil
}
