package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/nvr-ai/go-augment/bbox"
	"github.com/nvr-ai/go-augment/config"
	"github.com/nvr-ai/go-augment/profiler"
	"github.com/nvr-ai/go-augment/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Input = t.TempDir()
	cfg.Output = filepath.Join(t.TempDir(), "out")
	cfg.From = bbox.FormatPascalVOC
	cfg.To = bbox.FormatYOLO
	return cfg
}

func writeLabels(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunConvertsAndFilters(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rows, cfg.Cols = 100, 100
	cfg.Filter.MinArea = 500
	writeLabels(t, filepath.Join(cfg.Input, "a.txt"), "person 10 20 50 80 0.9\ncar 0 0 10 10\n")
	writeLabels(t, filepath.Join(cfg.Input, "b.txt"), "dog 0 0 100 100\n")

	prof := profiler.New()
	stats, err := run(cfg, prof)

	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 2, BoxesIn: 3, BoxesOut: 2}, stats)
	out, ok := prof.Metric("boxes_out")
	require.True(t, ok)
	assert.Equal(t, 2.0, out.Sum)
	for _, stage := range []string{"preprocess", "filter", "export"} {
		_, ok := prof.Operation(stage)
		assert.True(t, ok, stage)
	}

	got, err := util.ParseLabelFile(filepath.Join(cfg.Output, "a.txt"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []any{"person", 0.9}, got[0].Labels)
	assert.InDeltaSlice(t, []float64{0.3, 0.5, 0.4, 0.6}, got[0].Coords[:], 1e-9)

	got, err = util.ParseLabelFile(filepath.Join(cfg.Output, "b.txt"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 1, 1}, got[0].Coords[:], 1e-9)
}

func TestRunReadsFrameFromSiblingImage(t *testing.T) {
	cfg := testConfig(t)
	cfg.From = bbox.FormatYOLO
	cfg.To = bbox.FormatCOCO
	writeLabels(t, filepath.Join(cfg.Input, "frame-0001.txt"), "person 0.5 0.5 0.5 0.5\n")
	require.NoError(t, imaging.Save(imaging.New(200, 100, color.NRGBA{A: 255}), filepath.Join(cfg.Input, "frame-0001.jpg")))

	_, err := run(cfg, profiler.New())

	require.NoError(t, err)
	got, err := util.ParseLabelFile(filepath.Join(cfg.Output, "frame-0001.txt"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDeltaSlice(t, []float64{50, 25, 100, 50}, got[0].Coords[:], 1e-9)
}

func TestRunAlbumentationsPassthrough(t *testing.T) {
	cfg := testConfig(t)
	cfg.From = bbox.FormatAlbumentations
	cfg.To = bbox.FormatAlbumentations
	cfg.Rows, cfg.Cols = 10, 10
	writeLabels(t, filepath.Join(cfg.Input, "a.txt"), "person 0.1 0.2 0.3 0.4\n")

	stats, err := run(cfg, profiler.New())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.BoxesOut)
	got, err := util.ParseLabelFile(filepath.Join(cfg.Output, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, [4]float64{0.1, 0.2, 0.3, 0.4}, got[0].Coords)
}

func TestRunErrors(t *testing.T) {
	t.Run("invalid box", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Rows, cfg.Cols = 100, 100
		writeLabels(t, filepath.Join(cfg.Input, "a.txt"), "person 50 20 10 80\n")

		_, err := run(cfg, profiler.New())

		require.Error(t, err)
		var orderErr *bbox.OrderError
		assert.ErrorAs(t, err, &orderErr)
		assert.Contains(t, err.Error(), "a.txt")
	})

	t.Run("missing image", func(t *testing.T) {
		cfg := testConfig(t)
		writeLabels(t, filepath.Join(cfg.Input, "a.txt"), "person 1 2 3 4\n")

		_, err := run(cfg, profiler.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no image found")
	})

	t.Run("missing input", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Input = filepath.Join(cfg.Input, "missing")

		_, err := run(cfg, profiler.New())

		assert.Error(t, err)
	})
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	cfg, err := loadConfig("", func(c *config.Config) {
		c.Input = "labels"
		c.To = bbox.FormatCOCO
	})

	require.NoError(t, err)
	assert.Equal(t, "labels", cfg.Input)
	assert.Equal(t, bbox.FormatCOCO, cfg.To)

	_, err = loadConfig("", func(c *config.Config) {
		c.Input = "labels"
		c.From = "xywh"
	})
	assert.Error(t, err)
}
