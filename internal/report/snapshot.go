package report

import (
	"fmt"

	"github.com/banshee-data/pitching.report/internal/frame"
	"github.com/banshee-data/pitching.report/internal/monitoring"
)

// Snapshot is the immutable resolved input handed to the renderer: the
// configuration, every start's loaded dataset, and the computed summary
// rows. Rendering is a pure function of a Snapshot.
type Snapshot struct {
	Config  *Config
	Data    []StartData
	Summary SummaryTable
}

// Resolve loads and validates every start's data and computes the summary
// table. It aborts on the first missing-column error, before any
// rendering can occur.
func Resolve(cfg *Config) (*Snapshot, error) {
	required := cfg.RequiredColumns()

	data := make([]StartData, 0, len(cfg.Starts))
	for _, start := range cfg.Starts {
		f, err := frame.Load(start.Filepath, start.Label, start.Opponent)
		if err != nil {
			return nil, fmt.Errorf("start %q: %w", start.Label, err)
		}
		if err := f.RequireColumns(required); err != nil {
			return nil, err
		}
		data = append(data, StartData{Start: start, Frame: f})
		monitoring.Logf("loaded start %q: %d rows from %s", start.Label, f.Rows(), start.Filepath)
	}

	summary, err := BuildSummary(cfg, data)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("computed %d summary metrics across %d starts", len(summary.Rows), len(data))

	return &Snapshot{Config: cfg, Data: data, Summary: summary}, nil
}
