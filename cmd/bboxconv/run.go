package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/nvr-ai/go-augment/bbox"
	"github.com/nvr-ai/go-augment/config"
	"github.com/nvr-ai/go-augment/profiler"
	"github.com/nvr-ai/go-augment/util"
	"github.com/pkg/errors"
)

// Stats summarizes one conversion run.
type Stats struct {
	Files    int
	BoxesIn  int
	BoxesOut int
}

// loadConfig resolves the configuration file and environment, then applies
// the command line overrides and validates the result.
func loadConfig(path string, overrides func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	if overrides != nil {
		overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// run converts every label file under cfg.Input and writes the result to
// cfg.Output with the same file name. Stage timings and per-file box counts
// are recorded on prof.
func run(cfg *config.Config, prof *profiler.Profiler) (Stats, error) {
	var stats Stats

	files, err := util.LoadDirectoryLabelFiles(cfg.Input)
	if err != nil {
		return stats, err
	}

	source, err := bbox.NewProcessor(cfg.SourceParams())
	if err != nil {
		return stats, err
	}
	target, err := bbox.NewProcessor(cfg.TargetParams())
	if err != nil {
		return stats, err
	}
	source.SetDebugMode(cfg.Debug)
	target.SetDebugMode(cfg.Debug)

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return stats, errors.Wrapf(err, "create output directory %s", cfg.Output)
	}

	items := make([]bbox.BatchItem, len(files))
	done := prof.StartOperation("preprocess")
	for i, file := range files {
		rows, cols, err := frameFor(cfg, file.Path)
		if err != nil {
			return stats, err
		}
		internal, err := source.Preprocess(bbox.Target{Boxes: file.Boxes}, rows, cols)
		if err != nil {
			return stats, errors.Wrap(err, file.Path)
		}
		items[i] = bbox.BatchItem{Boxes: internal, Rows: rows, Cols: cols}
		stats.BoxesIn += len(file.Boxes)
		prof.RecordMetric("boxes_in", float64(len(file.Boxes)))
	}
	done()

	done = prof.StartOperation("filter")
	kept, err := source.FilterBatch(items, cfg.Workers)
	done()
	if err != nil {
		return stats, err
	}

	done = prof.StartOperation("export")
	defer done()
	for i, file := range files {
		out, err := target.Export(kept[i], items[i].Rows, items[i].Cols)
		if err != nil {
			return stats, errors.Wrap(err, file.Path)
		}
		dst := filepath.Join(cfg.Output, filepath.Base(file.Path))
		if err := util.WriteLabelFile(dst, out.Boxes); err != nil {
			return stats, err
		}
		if cfg.Debug {
			log.Printf("[DEBUG] %s: %d of %d boxes kept", dst, len(out.Boxes), len(file.Boxes))
		}
		stats.Files++
		stats.BoxesOut += len(out.Boxes)
		prof.RecordMetric("boxes_out", float64(len(out.Boxes)))
	}

	return stats, nil
}

// frameFor returns the configured frame, or the size of the image sitting
// next to the label file when none is configured.
func frameFor(cfg *config.Config, labelPath string) (int, int, error) {
	if rows, cols, ok := cfg.FrameSize(); ok {
		return rows, cols, nil
	}
	imgPath, err := util.FindImage(labelPath)
	if err != nil {
		return 0, 0, err
	}
	return util.FrameSize(imgPath)
}
