package plotting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pitching.report/internal/frame"
	"github.com/banshee-data/pitching.report/internal/report"
)

func testSnapshot(t *testing.T, cfg *report.Config, frames map[string][][]string, header []string) *report.Snapshot {
	t.Helper()
	snap := &report.Snapshot{Config: cfg}
	for _, start := range cfg.Starts {
		f, err := frame.New(start.Label, header, frames[start.Label])
		require.NoError(t, err)
		snap.Data = append(snap.Data, report.StartData{Start: start, Frame: f})
	}
	return snap
}

func sequenceFixture(t *testing.T, vars []report.PlotVariable, starts []report.StartConfig) *report.Snapshot {
	t.Helper()
	cfg := &report.Config{
		Starts:             starts,
		TimeColumn:         "phase_pct",
		KinematicVariables: vars,
		VelocityVariable:   &report.PlotVariable{Column: "hand_velocity", Label: "Hand Velocity"},
		PointsOfInterest: []report.Pair{
			{Label: "FP", Value: "Foot Plant"},
			{Label: "MER", Value: "Max External Rotation"},
		},
	}
	header := []string{"phase_pct", "event", "pelvis_rotation", "torso_rotation", "hand_velocity"}
	rows := map[string][][]string{}
	for _, s := range starts {
		rows[s.Label] = [][]string{
			{"0", "", "10", "12", "1.0"},
			{"50", "FP", "20", "25", "2.5"},
			{"100", "BR", "15", "18", "6.0"},
		}
	}
	return testSnapshot(t, cfg, rows, header)
}

func TestSequenceSeriesOnePerVariableStartPair(t *testing.T) {
	snap := sequenceFixture(t,
		[]report.PlotVariable{
			{Column: "pelvis_rotation", Label: "Pelvis Rotation"},
			{Column: "torso_rotation", Label: "Torso Rotation"},
		},
		[]report.StartConfig{{Label: "April 3"}, {Label: "April 10"}, {Label: "April 17"}},
	)

	series, err := SequenceSeries(snap)
	require.NoError(t, err)
	require.Len(t, series, 6)

	assert.Equal(t, "Pelvis Rotation (April 3)", series[0].Label)
	assert.Equal(t, "Pelvis Rotation (April 10)", series[1].Label)
	assert.Equal(t, "Torso Rotation (April 17)", series[5].Label)

	for _, s := range series {
		assert.Len(t, s.XYs, 3)
	}
}

func TestSequenceSeriesColorRules(t *testing.T) {
	// A configured color is honored without consuming a palette slot, so
	// unconfigured variables still get palette entries in order.
	snap := sequenceFixture(t,
		[]report.PlotVariable{
			{Column: "pelvis_rotation", Label: "Pelvis Rotation"},
			{Column: "torso_rotation", Label: "Torso Rotation", Color: "red"},
			{Column: "hand_velocity", Label: "Hand Velocity"},
		},
		[]report.StartConfig{{Label: "April 3"}},
	)

	series, err := SequenceSeries(snap)
	require.NoError(t, err)
	require.Len(t, series, 3)

	red, err := ParseColor("red")
	require.NoError(t, err)
	assert.Equal(t, PaletteColor(0), series[0].Style.Color)
	assert.Equal(t, red, series[1].Style.Color)
	assert.Equal(t, PaletteColor(1), series[2].Style.Color)
}

func TestSequenceSeriesDashCycleByStart(t *testing.T) {
	starts := make([]report.StartConfig, 5)
	for i := range starts {
		starts[i] = report.StartConfig{Label: string(rune('A' + i))}
	}
	snap := sequenceFixture(t,
		[]report.PlotVariable{{Column: "pelvis_rotation", Label: "Pelvis Rotation"}},
		starts,
	)

	series, err := SequenceSeries(snap)
	require.NoError(t, err)
	require.Len(t, series, 5)

	assert.Nil(t, series[0].Style.Dashes)
	assert.Equal(t, DashPattern(1), series[1].Style.Dashes)
	assert.Equal(t, DashPattern(2), series[2].Style.Dashes)
	assert.Equal(t, DashPattern(3), series[3].Style.Dashes)
	// The fifth start wraps back to solid.
	assert.Nil(t, series[4].Style.Dashes)
}

func TestSequenceSeriesBadColor(t *testing.T) {
	snap := sequenceFixture(t,
		[]report.PlotVariable{{Column: "pelvis_rotation", Label: "Pelvis Rotation", Color: "no-such"}},
		[]report.StartConfig{{Label: "April 3"}},
	)

	_, err := SequenceSeries(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `kinematic variable "Pelvis Rotation"`)
}

func TestVelocitySeries(t *testing.T) {
	snap := sequenceFixture(t,
		[]report.PlotVariable{{Column: "pelvis_rotation", Label: "Pelvis Rotation"}},
		[]report.StartConfig{
			{Label: "April 3", Color: "#d62728"},
			{Label: "April 10"},
		},
	)

	series, err := VelocitySeries(snap)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "April 3", series[0].Label)
	configured, err := ParseColor("#d62728")
	require.NoError(t, err)
	assert.Equal(t, configured, series[0].Style.Color)
	// Unconfigured start falls back to palette by start position.
	assert.Equal(t, PaletteColor(1), series[1].Style.Color)
	assert.Equal(t, DashPattern(1), series[1].Style.Dashes)
}

func TestVelocitySeriesAbsentOverlay(t *testing.T) {
	snap := sequenceFixture(t,
		[]report.PlotVariable{{Column: "pelvis_rotation", Label: "Pelvis Rotation"}},
		[]report.StartConfig{{Label: "April 3"}},
	)
	snap.Config.VelocityVariable = nil

	series, err := VelocitySeries(snap)
	require.NoError(t, err)
	assert.Nil(t, series)
}

func TestEventMarkers(t *testing.T) {
	snap := sequenceFixture(t,
		[]report.PlotVariable{{Column: "pelvis_rotation", Label: "Pelvis Rotation"}},
		[]report.StartConfig{{Label: "April 3"}, {Label: "April 10"}},
	)

	markers, err := EventMarkers(snap)
	require.NoError(t, err)
	// FP matches both starts; MER matches none and is silently skipped.
	require.Len(t, markers, 2)
	assert.Equal(t, EventMarker{X: 50, Label: "Foot Plant\n(April 3)", StartIndex: 0}, markers[0])
	assert.Equal(t, EventMarker{X: 50, Label: "Foot Plant\n(April 10)", StartIndex: 1}, markers[1])
}

func TestEventMarkersFirstMatchOnly(t *testing.T) {
	cfg := &report.Config{
		Starts:             []report.StartConfig{{Label: "April 3"}},
		TimeColumn:         "phase_pct",
		KinematicVariables: []report.PlotVariable{{Column: "v", Label: "V"}},
		PointsOfInterest:   []report.Pair{{Label: "FP", Value: "Foot Plant"}},
	}
	snap := testSnapshot(t, cfg, map[string][][]string{
		"April 3": {
			{"10", "FP", "1"},
			{"60", "FP", "2"},
		},
	}, []string{"phase_pct", "event", "v"})

	markers, err := EventMarkers(snap)
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, 10.0, markers[0].X)
}

func TestLineXYsDropsNaNPairs(t *testing.T) {
	cfg := &report.Config{
		Starts:             []report.StartConfig{{Label: "A"}},
		TimeColumn:         "phase_pct",
		KinematicVariables: []report.PlotVariable{{Column: "v", Label: "V"}},
	}
	snap := testSnapshot(t, cfg, map[string][][]string{
		"A": {
			{"0", "", "1"},
			{"50", "", "n/a"},
			{"100", "", "3"},
		},
	}, []string{"phase_pct", "event", "v"})

	series, err := SequenceSeries(snap)
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Len(t, series[0].XYs, 2)
	assert.Equal(t, 0.0, series[0].XYs[0].X)
	assert.Equal(t, 100.0, series[0].XYs[1].X)
}
