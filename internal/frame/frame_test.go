package frame

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "start.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadStampsLabelAndOpponent(t *testing.T) {
	path := writeCSV(t, "phase_pct,pelvis,event\n0,10.5,\n50,20.0,FP\n100,30.5,BR\n")

	f, err := Load(path, "April 3", "Yankees")
	require.NoError(t, err)

	assert.Equal(t, 3, f.Rows())
	assert.Equal(t, []string{"phase_pct", "pelvis", "event", LabelColumn, OpponentColumn}, f.Columns())

	labels, err := f.Strings(LabelColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"April 3", "April 3", "April 3"}, labels)

	opponents, err := f.Strings(OpponentColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"Yankees", "Yankees", "Yankees"}, opponents)
}

func TestLoadWithoutOpponent(t *testing.T) {
	path := writeCSV(t, "phase_pct,event\n0,\n")

	f, err := Load(path, "April 3", "")
	require.NoError(t, err)
	assert.False(t, f.HasColumn(OpponentColumn))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), "x", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := Load(path, "x", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestFloatsParsesGapsAsNaN(t *testing.T) {
	f, err := New("s", []string{"v"}, [][]string{{"1.5"}, {""}, {"oops"}, {"-2"}})
	require.NoError(t, err)

	vals, err := f.Floats("v")
	require.NoError(t, err)
	require.Len(t, vals, 4)
	assert.Equal(t, 1.5, vals[0])
	assert.True(t, math.IsNaN(vals[1]))
	assert.True(t, math.IsNaN(vals[2]))
	assert.Equal(t, -2.0, vals[3])
}

func TestRequireColumns(t *testing.T) {
	f, err := New("April 3", []string{"phase_pct", "pelvis"}, nil)
	require.NoError(t, err)

	t.Run("all present", func(t *testing.T) {
		assert.NoError(t, f.RequireColumns([]string{"phase_pct", "pelvis"}))
	})

	t.Run("missing named with start label", func(t *testing.T) {
		err := f.RequireColumns([]string{"phase_pct", "event", "torso"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "April 3")
		assert.Contains(t, err.Error(), "event")
		assert.Contains(t, err.Error(), "torso")
		assert.NotContains(t, err.Error(), "phase_pct")
	})
}

func TestNewRaggedRow(t *testing.T) {
	_, err := New("s", []string{"a", "b"}, [][]string{{"1"}})
	require.Error(t, err)
}

func TestEnsureOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "nested", "report.pdf")
	require.NoError(t, EnsureOutputDir(out))
	// Idempotent.
	require.NoError(t, EnsureOutputDir(out))

	info, err := os.Stat(filepath.Dir(out))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
