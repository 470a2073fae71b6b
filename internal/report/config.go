// Package report defines the configuration model for a pitching report and
// the pipeline pieces that turn loaded start data into summary rows.
package report

// Defaults applied by the configuration loader.
const (
	DefaultTitle      = "Kansas City Royals - Baseball Pitching Report"
	DefaultAthlete    = "Unknown Pitcher"
	DefaultTimeColumn = "phase_pct"
	DefaultOutputPath = "reports/pitching_report.pdf"
	DefaultDPI        = 150
	DefaultBackground = "white"
	DefaultFigWidth   = 11.0
	DefaultFigHeight  = 8.5
)

// EventColumn is the data column holding event codes matched against the
// configured points of interest.
const EventColumn = "event"

// Pair is one label→value entry of an ordered mapping. Declaration order is
// preserved so header and annotation rendering stays deterministic.
type Pair struct {
	Label string
	Value string
}

// AthleteInfo holds the athlete details shown in the report header.
type AthleteInfo struct {
	Name         string
	ThrowingHand string
	Organization string
	// ExtraDetails are free-form label→value pairs appended to the header
	// in declaration order.
	ExtraDetails []Pair
}

// StartConfig identifies one pitching start and its data file.
type StartConfig struct {
	Label    string
	Filepath string
	Opponent string
	Color    string
}

// PlotVariable describes one data column to plot.
type PlotVariable struct {
	Column string
	Label  string
	Color  string
}

// SummaryMetric defines how one column is reduced to a summary number per
// start. Reducer holds the configured name; it is resolved by ParseReducer
// when the metric is computed, not at load time.
type SummaryMetric struct {
	Label     string
	Column    string
	Reducer   string
	Precision int
}

// VisualSettings is the page styling shared by the whole report.
type VisualSettings struct {
	FigWidth        float64 // inches
	FigHeight       float64 // inches
	DPI             int
	BackgroundColor string
	Grid            bool
}

// Config is the aggregate root driving one report run. It is built once by
// Load and read-only thereafter.
type Config struct {
	Title   string
	Athlete AthleteInfo

	Starts             []StartConfig
	TimeColumn         string
	KinematicVariables []PlotVariable
	VelocityVariable   *PlotVariable // nil when no overlay panel is configured
	PointsOfInterest   []Pair        // event code → display label
	SummaryMetrics     []SummaryMetric

	OutputPath      string
	HTMLPreviewPath string // optional go-echarts companion page
	Visuals         VisualSettings
}

// RequiredColumns returns every data column the report reads: the time
// axis, the event column, all plotted variables, and all summarized
// columns. Order is stable and duplicates are removed.
func (c *Config) RequiredColumns() []string {
	seen := make(map[string]bool)
	var cols []string
	add := func(col string) {
		if col != "" && !seen[col] {
			seen[col] = true
			cols = append(cols, col)
		}
	}
	add(c.TimeColumn)
	add(EventColumn)
	for _, v := range c.KinematicVariables {
		add(v.Column)
	}
	if c.VelocityVariable != nil {
		add(c.VelocityVariable.Column)
	}
	for _, m := range c.SummaryMetrics {
		add(m.Column)
	}
	return cols
}
