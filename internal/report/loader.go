package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// orderedPairs decodes a YAML mapping into a Pair slice, preserving the
// declaration order that plain map decoding would lose.
type orderedPairs []Pair

func (p *orderedPairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.Tag)
	}
	pairs := make(orderedPairs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value for %q must be a scalar", val.Line, key.Value)
		}
		pairs = append(pairs, Pair{Label: key.Value, Value: val.Value})
	}
	*p = pairs
	return nil
}

type rawAthlete struct {
	Name         string       `yaml:"name"`
	ThrowingHand string       `yaml:"throwing_hand"`
	Organization string       `yaml:"organization"`
	Extra        orderedPairs `yaml:"extra"`
}

type rawStart struct {
	Label    string `yaml:"label"`
	Filepath string `yaml:"filepath"`
	Opponent string `yaml:"opponent"`
	Color    string `yaml:"color"`
}

type rawVariable struct {
	Column   string `yaml:"column"`
	Variable string `yaml:"variable"`
	Label    string `yaml:"label"`
	Color    string `yaml:"color"`
}

func (v *rawVariable) empty() bool {
	return v == nil || (v.Column == "" && v.Variable == "" && v.Label == "" && v.Color == "")
}

type rawPlots struct {
	TimeColumn        string `yaml:"time_column"`
	KinematicSequence struct {
		Variables []rawVariable `yaml:"variables"`
	} `yaml:"kinematic_sequence"`
	VelocityOverlay *rawVariable `yaml:"velocity_overlay"`
}

type rawPOI struct {
	Events orderedPairs `yaml:"events"`
}

type rawMetric struct {
	Column    string `yaml:"column"`
	Label     string `yaml:"label"`
	Reducer   string `yaml:"reducer"`
	Precision *int   `yaml:"precision"`
}

type rawOutput struct {
	Path            string    `yaml:"path"`
	DPI             *int      `yaml:"dpi"`
	Figsize         []float64 `yaml:"figsize"`
	BackgroundColor string    `yaml:"background_color"`
	Grid            *bool     `yaml:"grid"`
	HTMLPreview     string    `yaml:"html_preview"`
}

type rawConfig struct {
	Title            string      `yaml:"title"`
	Athlete          rawAthlete  `yaml:"athlete"`
	Starts           []rawStart  `yaml:"starts"`
	Plots            rawPlots    `yaml:"plots"`
	PointsOfInterest rawPOI      `yaml:"points_of_interest"`
	SummaryMetrics   []rawMetric `yaml:"summary_metrics"`
	Output           rawOutput   `yaml:"output"`
}

var titleCaser = cases.Title(language.English)

// deriveLabel turns a column name into a display label: underscores become
// spaces and each word is title-cased.
func deriveLabel(column string) string {
	return titleCaser.String(strings.ReplaceAll(column, "_", " "))
}

func coerceVariable(raw rawVariable, context string) (PlotVariable, error) {
	column := raw.Column
	if column == "" {
		column = raw.Variable
	}
	if column == "" {
		return PlotVariable{}, fmt.Errorf("%s: a 'column' or 'variable' field is required", context)
	}
	label := raw.Label
	if label == "" {
		label = deriveLabel(column)
	}
	return PlotVariable{Column: column, Label: label, Color: raw.Color}, nil
}

func coerceStart(raw rawStart, index int) (StartConfig, error) {
	if raw.Filepath == "" {
		return StartConfig{}, fmt.Errorf("starts[%d]: a 'filepath' field is required", index)
	}
	label := raw.Label
	if label == "" {
		base := filepath.Base(raw.Filepath)
		label = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return StartConfig{
		Label:    label,
		Filepath: raw.Filepath,
		Opponent: raw.Opponent,
		Color:    raw.Color,
	}, nil
}

func coerceMetric(raw rawMetric, index int) (SummaryMetric, error) {
	if raw.Column == "" {
		return SummaryMetric{}, fmt.Errorf("summary_metrics[%d]: a 'column' field is required", index)
	}
	label := raw.Label
	if label == "" {
		label = deriveLabel(raw.Column)
	}
	reducer := raw.Reducer
	if reducer == "" {
		reducer = "max"
	}
	precision := 2
	if raw.Precision != nil {
		precision = *raw.Precision
	}
	return SummaryMetric{Label: label, Column: raw.Column, Reducer: reducer, Precision: precision}, nil
}

// Load reads and validates a report configuration from a YAML file. The
// load is a single pass with no partial success: any missing required
// piece fails the whole load.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML bytes. See Load.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	cfg := &Config{
		Title: raw.Title,
		Athlete: AthleteInfo{
			Name:         raw.Athlete.Name,
			ThrowingHand: raw.Athlete.ThrowingHand,
			Organization: raw.Athlete.Organization,
			ExtraDetails: raw.Athlete.Extra,
		},
		PointsOfInterest: raw.PointsOfInterest.Events,
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.Athlete.Name == "" {
		cfg.Athlete.Name = DefaultAthlete
	}

	if len(raw.Starts) == 0 {
		return nil, fmt.Errorf("at least one start must be configured under 'starts'")
	}
	for i, rs := range raw.Starts {
		start, err := coerceStart(rs, i)
		if err != nil {
			return nil, err
		}
		cfg.Starts = append(cfg.Starts, start)
	}

	cfg.TimeColumn = raw.Plots.TimeColumn
	if cfg.TimeColumn == "" {
		cfg.TimeColumn = DefaultTimeColumn
	}

	if len(raw.Plots.KinematicSequence.Variables) == 0 {
		return nil, fmt.Errorf("at least one kinematic sequence variable must be configured under 'plots.kinematic_sequence.variables'")
	}
	for i, rv := range raw.Plots.KinematicSequence.Variables {
		v, err := coerceVariable(rv, fmt.Sprintf("plots.kinematic_sequence.variables[%d]", i))
		if err != nil {
			return nil, err
		}
		cfg.KinematicVariables = append(cfg.KinematicVariables, v)
	}

	if !raw.Plots.VelocityOverlay.empty() {
		v, err := coerceVariable(*raw.Plots.VelocityOverlay, "plots.velocity_overlay")
		if err != nil {
			return nil, err
		}
		cfg.VelocityVariable = &v
	}

	for i, rm := range raw.SummaryMetrics {
		m, err := coerceMetric(rm, i)
		if err != nil {
			return nil, err
		}
		cfg.SummaryMetrics = append(cfg.SummaryMetrics, m)
	}

	cfg.OutputPath = raw.Output.Path
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	cfg.HTMLPreviewPath = raw.Output.HTMLPreview

	cfg.Visuals = VisualSettings{
		FigWidth:        DefaultFigWidth,
		FigHeight:       DefaultFigHeight,
		DPI:             DefaultDPI,
		BackgroundColor: DefaultBackground,
		Grid:            true,
	}
	if raw.Output.Figsize != nil {
		if len(raw.Output.Figsize) != 2 {
			return nil, fmt.Errorf("output.figsize must be a pair of numbers, got %d values", len(raw.Output.Figsize))
		}
		if raw.Output.Figsize[0] <= 0 || raw.Output.Figsize[1] <= 0 {
			return nil, fmt.Errorf("output.figsize values must be positive, got %v", raw.Output.Figsize)
		}
		cfg.Visuals.FigWidth = raw.Output.Figsize[0]
		cfg.Visuals.FigHeight = raw.Output.Figsize[1]
	}
	if raw.Output.DPI != nil {
		if *raw.Output.DPI <= 0 {
			return nil, fmt.Errorf("output.dpi must be positive, got %d", *raw.Output.DPI)
		}
		cfg.Visuals.DPI = *raw.Output.DPI
	}
	if raw.Output.BackgroundColor != "" {
		cfg.Visuals.BackgroundColor = raw.Output.BackgroundColor
	}
	if raw.Output.Grid != nil {
		cfg.Visuals.Grid = *raw.Output.Grid
	}

	return cfg, nil
}
