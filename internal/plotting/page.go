package plotting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/banshee-data/pitching.report/internal/monitoring"
	"github.com/banshee-data/pitching.report/internal/report"
)

// PageLayout holds the drawing regions for the report panels. The velocity
// region is zero when no overlay is configured.
type PageLayout struct {
	Sequence    vg.Rectangle
	Velocity    vg.Rectangle
	Table       vg.Rectangle
	HasVelocity bool
}

// Layout fractions, mirroring the source report's grid: sequence to bottom
// row height ratio 3.2:1.5, velocity to table width ratio 2.2:1.0.
const (
	layoutLeft       = 0.07
	layoutRight      = 0.97
	layoutTop        = 0.80
	layoutBottom     = 0.05
	layoutRowGap     = 0.06
	layoutColGap     = 0.04
	seqHeightRatio   = 3.2
	lowerHeightRatio = 1.5
	velWidthRatio    = 2.2
	tableWidthRatio  = 1.0
)

// LayoutPanels chooses the page layout: with a velocity overlay the bottom
// row splits into a velocity panel and a table panel; without one the page
// is a 2-row single column (sequence, then table).
func LayoutPanels(width, height vg.Length, hasVelocity bool) PageLayout {
	left := width * layoutLeft
	right := width * layoutRight
	top := height * layoutTop
	bottom := height * layoutBottom
	rowGap := height * layoutRowGap

	usableHeight := top - bottom - rowGap
	seqHeight := usableHeight * vg.Length(seqHeightRatio/(seqHeightRatio+lowerHeightRatio))
	lowerHeight := usableHeight - seqHeight

	layout := PageLayout{
		Sequence: vg.Rectangle{
			Min: vg.Point{X: left, Y: top - seqHeight},
			Max: vg.Point{X: right, Y: top},
		},
		HasVelocity: hasVelocity,
	}

	lowerTop := top - seqHeight - rowGap
	if hasVelocity {
		colGap := width * layoutColGap
		usableWidth := right - left - colGap
		velWidth := usableWidth * vg.Length(velWidthRatio/(velWidthRatio+tableWidthRatio))
		layout.Velocity = vg.Rectangle{
			Min: vg.Point{X: left, Y: lowerTop - lowerHeight},
			Max: vg.Point{X: left + velWidth, Y: lowerTop},
		}
		layout.Table = vg.Rectangle{
			Min: vg.Point{X: left + velWidth + colGap, Y: lowerTop - lowerHeight},
			Max: vg.Point{X: right, Y: lowerTop},
		}
	} else {
		layout.Table = vg.Rectangle{
			Min: vg.Point{X: left, Y: lowerTop - lowerHeight},
			Max: vg.Point{X: right, Y: lowerTop},
		}
	}
	return layout
}

// drawPage composes the full report page: header, sequence panel with
// event annotations, optional velocity panel, and the summary table.
func drawPage(dc draw.Canvas, snap *report.Snapshot) error {
	drawHeader(dc, snap)

	layout := LayoutPanels(dc.Max.X-dc.Min.X, dc.Max.Y-dc.Min.Y, snap.Config.VelocityVariable != nil)

	seqPlot, err := NewSequencePlot(snap)
	if err != nil {
		return err
	}
	seqCanvas := draw.Canvas{Canvas: dc.Canvas, Rectangle: layout.Sequence}
	seqPlot.Draw(seqCanvas)

	markers, err := EventMarkers(snap)
	if err != nil {
		return err
	}
	drawAnnotations(seqCanvas, seqPlot, markers)

	if layout.HasVelocity {
		velPlot, err := NewVelocityPlot(snap)
		if err != nil {
			return err
		}
		velCanvas := draw.Canvas{Canvas: dc.Canvas, Rectangle: layout.Velocity}
		velPlot.Draw(velCanvas)
	}

	tableCanvas := draw.Canvas{Canvas: dc.Canvas, Rectangle: layout.Table}
	drawSummaryTable(tableCanvas, snap.Summary)
	return nil
}

// RenderDocument draws the single report page and writes it to the
// configured output path. The page is composed fully in memory and moved
// into place with a rename, so a failed run never leaves a partial file at
// the output path. The backend follows the path extension: .png rasterizes
// at the configured dpi, anything else is vector PDF.
func RenderDocument(snap *report.Snapshot) error {
	cfg := snap.Config
	width := vg.Length(cfg.Visuals.FigWidth) * vg.Inch
	height := vg.Length(cfg.Visuals.FigHeight) * vg.Inch

	background, err := ParseColor(cfg.Visuals.BackgroundColor)
	if err != nil {
		return fmt.Errorf("output.background_color: %w", err)
	}

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(cfg.OutputPath)) {
	case ".png":
		canvas := vgimg.NewWith(
			vgimg.UseWH(width, height),
			vgimg.UseDPI(cfg.Visuals.DPI),
			vgimg.UseBackgroundColor(background),
		)
		if err := drawPage(draw.New(canvas), snap); err != nil {
			return err
		}
		png := vgimg.PngCanvas{Canvas: canvas}
		if _, err := png.WriteTo(&buf); err != nil {
			return fmt.Errorf("encode %s: %w", cfg.OutputPath, err)
		}
	default:
		canvas := vgpdf.New(width, height)
		canvas.EmbedFonts(true)
		dc := draw.New(canvas)
		dc.FillPolygon(background, []vg.Point{
			{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: height}, {X: 0, Y: height},
		})
		if err := drawPage(dc, snap); err != nil {
			return err
		}
		if _, err := canvas.WriteTo(&buf); err != nil {
			return fmt.Errorf("encode %s: %w", cfg.OutputPath, err)
		}
	}

	if err := writeAtomic(cfg.OutputPath, buf.Bytes()); err != nil {
		return err
	}
	monitoring.Logf("wrote report document %s (%d bytes)", cfg.OutputPath, buf.Len())
	return nil
}

// writeAtomic writes data next to the target and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()[:8]))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write report file %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write report file %s: %w", path, err)
	}
	return nil
}
