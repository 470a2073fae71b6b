// Package frame loads per-start pitch data files into labeled in-memory
// tables and validates that the columns a report needs are present.
package frame

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Names of the columns stamped onto every loaded frame so a table remains
// self-describing once detached from its start configuration.
const (
	LabelColumn    = "start_label"
	OpponentColumn = "opponent"
)

// Frame is one start's dataset: an ordered set of named columns, all of
// equal length. Cells are kept as raw strings; numeric access goes through
// Floats.
type Frame struct {
	Label string

	columns []string
	cells   map[string][]string
	rows    int
}

// New builds a Frame from a header and rows. Every row must have exactly
// one cell per header column.
func New(label string, header []string, rows [][]string) (*Frame, error) {
	f := &Frame{
		Label:   label,
		columns: make([]string, 0, len(header)),
		cells:   make(map[string][]string, len(header)),
		rows:    len(rows),
	}
	for _, col := range header {
		col = strings.TrimSpace(col)
		f.columns = append(f.columns, col)
		f.cells[col] = make([]string, 0, len(rows))
	}
	for i, row := range rows {
		if len(row) != len(f.columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i+1, len(row), len(f.columns))
		}
		for j, cell := range row {
			col := f.columns[j]
			f.cells[col] = append(f.cells[col], strings.TrimSpace(cell))
		}
	}
	return f, nil
}

// Load reads a start's CSV file fully into memory and stamps the start
// label (and opponent, when set) onto every row as additional columns.
func Load(path, label, opponent string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read data file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("data file %s is empty", path)
	}

	f, err := New(label, records[0], records[1:])
	if err != nil {
		return nil, fmt.Errorf("data file %s: %w", path, err)
	}
	f.stamp(LabelColumn, label)
	if opponent != "" {
		f.stamp(OpponentColumn, opponent)
	}
	return f, nil
}

// stamp adds (or overwrites) a column holding the same value in every row.
func (f *Frame) stamp(column, value string) {
	if !f.HasColumn(column) {
		f.columns = append(f.columns, column)
	}
	vals := make([]string, f.rows)
	for i := range vals {
		vals[i] = value
	}
	f.cells[column] = vals
}

// Rows returns the number of data rows.
func (f *Frame) Rows() int { return f.rows }

// Columns returns the column names in file order, stamped columns last.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cells[name]
	return ok
}

// Strings returns the raw cell values of the named column.
func (f *Frame) Strings(column string) ([]string, error) {
	vals, ok := f.cells[column]
	if !ok {
		return nil, fmt.Errorf("no column %q in data for %s", column, f.Label)
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out, nil
}

// Floats returns the named column parsed as float64. Cells that do not
// parse become NaN, mirroring how the source exports encode gaps.
func (f *Frame) Floats(column string) ([]float64, error) {
	vals, ok := f.cells[column]
	if !ok {
		return nil, fmt.Errorf("no column %q in data for %s", column, f.Label)
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			x = math.NaN()
		}
		out[i] = x
	}
	return out, nil
}

// RequireColumns verifies that every required column is present, and fails
// with the start's label and the exact missing names otherwise.
func (f *Frame) RequireColumns(required []string) error {
	var missing []string
	for _, col := range required {
		if !f.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns for %s: %s", f.Label, strings.Join(missing, ", "))
	}
	return nil
}

// EnsureOutputDir creates the directory tree that will hold the report
// file. It is idempotent and safe to call multiple times.
func EnsureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}
