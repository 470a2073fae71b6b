// Package builder sequences a full report run: load configuration, load
// and validate every start's data, aggregate, render, and save. There is
// no retry and no partial output; any failure aborts the whole run.
package builder

import (
	"github.com/banshee-data/pitching.report/internal/frame"
	"github.com/banshee-data/pitching.report/internal/plotting"
	"github.com/banshee-data/pitching.report/internal/preview"
	"github.com/banshee-data/pitching.report/internal/report"
)

// Build generates the report document for an already loaded configuration.
func Build(cfg *report.Config) error {
	snap, err := report.Resolve(cfg)
	if err != nil {
		return err
	}
	if err := frame.EnsureOutputDir(cfg.OutputPath); err != nil {
		return err
	}
	if err := plotting.RenderDocument(snap); err != nil {
		return err
	}
	if cfg.HTMLPreviewPath != "" {
		if err := preview.Write(snap, cfg.HTMLPreviewPath); err != nil {
			return err
		}
	}
	return nil
}

// Run loads the configuration file and builds the report.
func Run(configPath string) error {
	cfg, err := report.Load(configPath)
	if err != nil {
		return err
	}
	return Build(cfg)
}
