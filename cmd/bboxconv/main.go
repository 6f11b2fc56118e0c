// Command bboxconv converts a directory of bounding box label files between
// the coco, pascal_voc, yolo and albumentations formats, dropping boxes that
// fail the configured filter thresholds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/nvr-ai/go-augment/bbox"
	"github.com/nvr-ai/go-augment/config"
	"github.com/nvr-ai/go-augment/profiler"
)

// DefaultEnvFile is loaded before the configuration is resolved.
const DefaultEnvFile = ".env"

func main() {
	var (
		configPath string
		envFile    string
		input      string
		output     string
		from       string
		to         string
		rows       int
		cols       int
		resolution string
		workers    int
		debug      bool
		profile    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML run configuration")
	flag.StringVar(&envFile, "env", DefaultEnvFile, "Path to .env file with BBOX_* overrides")
	flag.StringVar(&input, "in", "", "Directory of source label files")
	flag.StringVar(&output, "out", "", "Directory the converted label files are written to")
	flag.StringVar(&from, "from", "", "Source format (coco, pascal_voc, yolo, albumentations)")
	flag.StringVar(&to, "to", "", "Target format (coco, pascal_voc, yolo, albumentations)")
	flag.IntVar(&rows, "rows", 0, "Frame height for every file; 0 reads it from the sibling image")
	flag.IntVar(&cols, "cols", 0, "Frame width for every file; 0 reads it from the sibling image")
	flag.StringVar(&resolution, "resolution", "", "Frame preset for every file (e.g. 720p, 1080p, 4k)")
	flag.IntVar(&workers, "workers", 0, "Number of files filtered concurrently")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&profile, "profile", false, "Print stage timings and box counts when done")
	flag.Parse()

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s not found, using system environment variables", envFile)
	}

	// Flags are applied last so they win over YAML and environment.
	overrides := func(cfg *config.Config) {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "in":
				cfg.Input = input
			case "out":
				cfg.Output = output
			case "from":
				cfg.From = bbox.Format(from)
			case "to":
				cfg.To = bbox.Format(to)
			case "rows":
				cfg.Rows = rows
			case "cols":
				cfg.Cols = cols
			case "resolution":
				cfg.Resolution = resolution
			case "workers":
				cfg.Workers = workers
			case "debug":
				cfg.Debug = debug
			}
		})
	}

	cfg, err := loadConfig(configPath, overrides)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Printf("bboxconv: %s -> %s\n", cfg.From, cfg.To)
	fmt.Printf("   input:  %s\n", cfg.Input)
	fmt.Printf("   output: %s\n", cfg.Output)
	if rows, cols, ok := cfg.FrameSize(); ok {
		fmt.Printf("   frame:  %dx%d\n", cols, rows)
	} else {
		fmt.Printf("   frame:  from sibling images\n")
	}
	fmt.Printf("   filter: min_area=%v min_visibility=%v min_width=%v min_height=%v\n",
		cfg.Filter.MinArea, cfg.Filter.MinVisibility, cfg.Filter.MinWidth, cfg.Filter.MinHeight)

	prof := profiler.New()
	stats, err := run(cfg, prof)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
	if profile {
		prof.Report(os.Stdout)
	}

	log.Printf("Converted %d files: %d boxes in, %d boxes out", stats.Files, stats.BoxesIn, stats.BoxesOut)
}
