package plotting

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/pitching.report/internal/report"
)

// Font variants used by the report's text styles. The bold face is exposed
// as its own normal-weight variant: vgpdf registers every face under an
// empty fpdf style but selects bold weights with style "B", a pairing it
// never registers, so a bold-weight style cannot reach the PDF backend.
const (
	sansVariant = font.Variant("Sans")
	boldVariant = font.Variant("SansBold")
)

// reportFonts builds the report's font cache: the Liberation collection
// plus the Sans bold face re-keyed under boldVariant.
func reportFonts() *font.Cache {
	base := liberation.Collection()
	coll := make(font.Collection, len(base), len(base)+1)
	copy(coll, base)
	for _, f := range base {
		if f.Font.Variant == sansVariant && f.Font.Weight == xfont.WeightBold && f.Font.Style == xfont.StyleNormal {
			f.Font.Variant = boldVariant
			f.Font.Weight = xfont.WeightNormal
			coll = append(coll, f)
			break
		}
	}
	return font.NewCache(coll)
}

var (
	fontCache   = reportFonts()
	textHandler = text.Plain{Fonts: fontCache}
)

// textStyle builds a canvas text style in the report's typeface.
func textStyle(size vg.Length, bold bool, xa text.XAlignment, ya text.YAlignment, rotation float64) text.Style {
	variant := sansVariant
	if bold {
		variant = boldVariant
	}
	return text.Style{
		Color: color.Black,
		Font: font.Font{
			Typeface: "Liberation",
			Variant:  variant,
			Size:     size,
		},
		Rotation: rotation,
		XAlign:   xa,
		YAlign:   ya,
		Handler:  textHandler,
	}
}

// newPanelPlot creates a plot with the shared panel styling: optional
// grid under the data, time axis label.
func newPanelPlot(title, xLabel, yLabel string, grid bool) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	if grid {
		p.Add(plotter.NewGrid())
	}
	return p
}

// NewSequencePlot builds the kinematic sequence panel with one line per
// (variable, start) pair and a combined legend.
func NewSequencePlot(snap *report.Snapshot) (*plot.Plot, error) {
	p := newPanelPlot("Kinematic Sequence", "Pitch Phase (%)", "Angle / Position", snap.Config.Visuals.Grid)

	series, err := SequenceSeries(snap)
	if err != nil {
		return nil, err
	}
	for _, s := range series {
		line, err := plotter.NewLine(s.XYs)
		if err != nil {
			return nil, fmt.Errorf("sequence line %q: %w", s.Label, err)
		}
		line.LineStyle = s.Style
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// NewVelocityPlot builds the velocity overlay panel, one line per start.
// Returns nil when no velocity variable is configured.
func NewVelocityPlot(snap *report.Snapshot) (*plot.Plot, error) {
	variable := snap.Config.VelocityVariable
	if variable == nil {
		return nil, nil
	}
	p := newPanelPlot(variable.Label, "Pitch Phase (%)", variable.Label, snap.Config.Visuals.Grid)

	series, err := VelocitySeries(snap)
	if err != nil {
		return nil, err
	}
	for _, s := range series {
		line, err := plotter.NewLine(s.XYs)
		if err != nil {
			return nil, fmt.Errorf("velocity line %q: %w", s.Label, err)
		}
		line.LineStyle = s.Style
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// drawAnnotations overlays the resolved event markers on an already drawn
// sequence panel: a vertical line in the start's dash style at the event
// time, and a rotated label hanging from the top of the panel.
func drawAnnotations(dc draw.Canvas, p *plot.Plot, markers []EventMarker) {
	if len(markers) == 0 {
		return
	}
	dataCanvas := p.DataCanvas(dc)
	trX, _ := p.Transforms(&dataCanvas)

	markerColor := color.NRGBA{A: 153} // black at 60% opacity
	labelStyle := textStyle(vg.Points(8), false, text.XRight, text.YTop, math.Pi/2)

	for _, m := range markers {
		x := trX(m.X)
		if x < dataCanvas.Min.X || x > dataCanvas.Max.X {
			continue
		}
		sty := draw.LineStyle{
			Color:  markerColor,
			Width:  vg.Points(1),
			Dashes: DashPattern(m.StartIndex),
		}
		dataCanvas.StrokeLine2(sty, x, dataCanvas.Min.Y, x, dataCanvas.Max.Y)
		dataCanvas.FillText(labelStyle, vg.Point{X: x, Y: dataCanvas.Max.Y - vg.Points(2)}, m.Label)
	}
}

// drawSummaryTable renders the aggregated metric rows as a bordered table
// centered in its panel, or a placeholder notice when no metrics are
// configured.
func drawSummaryTable(dc draw.Canvas, table report.SummaryTable) {
	width := dc.Max.X - dc.Min.X
	height := dc.Max.Y - dc.Min.Y
	center := vg.Point{X: dc.Min.X + width/2, Y: dc.Min.Y + height/2}

	if len(table.Rows) == 0 {
		notice := textStyle(vg.Points(10), false, text.XCenter, text.YCenter, 0)
		dc.FillText(notice, center, "No summary metrics configured.")
		return
	}

	cols := len(table.Header)
	rows := len(table.Rows) + 1 // header row included

	colWidth := width / vg.Length(cols)
	rowHeight := height / vg.Length(rows)
	if max := vg.Points(22); rowHeight > max {
		rowHeight = max
	}
	tableHeight := rowHeight * vg.Length(rows)
	top := center.Y + tableHeight/2

	gridStyle := draw.LineStyle{
		Color: color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
		Width: vg.Points(0.5),
	}
	headerStyle := textStyle(vg.Points(9), true, text.XCenter, text.YCenter, 0)
	cellStyle := textStyle(vg.Points(9), false, text.XCenter, text.YCenter, 0)

	// Header background.
	headerFill := color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	dc.FillPolygon(headerFill, []vg.Point{
		{X: dc.Min.X, Y: top - rowHeight},
		{X: dc.Min.X + width, Y: top - rowHeight},
		{X: dc.Min.X + width, Y: top},
		{X: dc.Min.X, Y: top},
	})

	cellCenter := func(row, col int) vg.Point {
		return vg.Point{
			X: dc.Min.X + colWidth*vg.Length(col) + colWidth/2,
			Y: top - rowHeight*vg.Length(row) - rowHeight/2,
		}
	}
	for c, label := range table.Header {
		dc.FillText(headerStyle, cellCenter(0, c), label)
	}
	for r, row := range table.Rows {
		for c, cell := range row {
			dc.FillText(cellStyle, cellCenter(r+1, c), cell)
		}
	}

	// Grid lines.
	bottom := top - tableHeight
	for r := 0; r <= rows; r++ {
		y := top - rowHeight*vg.Length(r)
		dc.StrokeLine2(gridStyle, dc.Min.X, y, dc.Min.X+width, y)
	}
	for c := 0; c <= cols; c++ {
		x := dc.Min.X + colWidth*vg.Length(c)
		dc.StrokeLine2(gridStyle, x, bottom, x, top)
	}
}

// HeaderLines returns the athlete metadata lines shown at the top left of
// the page: name always, then hand, organization, and every extra detail
// pair in declaration order.
func HeaderLines(athlete report.AthleteInfo) []string {
	lines := []string{fmt.Sprintf("Athlete: %s", athlete.Name)}
	if athlete.ThrowingHand != "" {
		lines = append(lines, fmt.Sprintf("Throws: %s", athlete.ThrowingHand))
	}
	if athlete.Organization != "" {
		lines = append(lines, fmt.Sprintf("Org: %s", athlete.Organization))
	}
	for _, detail := range athlete.ExtraDetails {
		lines = append(lines, fmt.Sprintf("%s: %s", detail.Label, detail.Value))
	}
	return lines
}

// StartLines returns the start list shown at the top right of the page,
// each annotated with its opponent when configured.
func StartLines(starts []report.StartConfig) []string {
	lines := make([]string, 0, len(starts))
	for _, start := range starts {
		line := start.Label
		if start.Opponent != "" {
			line += fmt.Sprintf(" vs %s", start.Opponent)
		}
		lines = append(lines, line)
	}
	return lines
}

// drawHeader renders the report title, the athlete metadata block, and the
// start list onto the page canvas.
func drawHeader(dc draw.Canvas, snap *report.Snapshot) {
	width := dc.Max.X - dc.Min.X
	height := dc.Max.Y - dc.Min.Y

	titleStyle := textStyle(vg.Points(18), true, text.XCenter, text.YCenter, 0)
	dc.FillText(titleStyle, vg.Point{X: dc.Min.X + width/2, Y: dc.Min.Y + height*0.97}, snap.Config.Title)

	blockStyle := textStyle(vg.Points(10), false, text.XLeft, text.YTop, 0)
	athleteBlock := strings.Join(HeaderLines(snap.Config.Athlete), "\n")
	dc.FillText(blockStyle, vg.Point{X: dc.Min.X + width*0.02, Y: dc.Min.Y + height*0.91}, athleteBlock)

	startsBlock := "Starts:\n" + strings.Join(StartLines(snap.Config.Starts), "\n")
	dc.FillText(blockStyle, vg.Point{X: dc.Min.X + width*0.72, Y: dc.Min.Y + height*0.91}, startsBlock)
}
