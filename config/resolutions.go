package config

import (
	"fmt"
	"math"
	"sort"
)

// AspectRatio represents an aspect ratio by name (e.g., "16:9").
type AspectRatio string

// Defines common aspect ratios for camera frames.
const (
	AspectRatio169 AspectRatio = "16:9"
	AspectRatio43  AspectRatio = "4:3"
	AspectRatio54  AspectRatio = "5:4"
	AspectRatio32  AspectRatio = "3:2"
)

// Resolution is a named frame size that can stand in for explicit rows and
// cols when every label file of a dataset shares one camera.
type Resolution struct {
	Name        string      `json:"name" yaml:"name"`
	AspectRatio AspectRatio `json:"aspectRatio" yaml:"aspect_ratio"`
	Rows        int         `json:"rows" yaml:"rows"`
	Cols        int         `json:"cols" yaml:"cols"`
}

// GetMegaPixels calculates the megapixel value rounded to two decimal places
// (e.g., 2.07 for 1080p).
func (r Resolution) GetMegaPixels() float64 {
	if r.Cols <= 0 || r.Rows <= 0 {
		return 0.0
	}
	mp := float64(r.Cols*r.Rows) / 1_000_000.0
	return math.Round(mp*100) / 100
}

// String returns a human-readable summary of the resolution.
func (r Resolution) String() string {
	return fmt.Sprintf("%s (%dx%d, %.2fMP)", r.Name, r.Cols, r.Rows, r.GetMegaPixels())
}

// resolutions is keyed by the alias accepted in the resolution setting.
var resolutions = map[string]Resolution{
	"360p":  {Name: "nHD", AspectRatio: AspectRatio169, Rows: 360, Cols: 640},
	"480p":  {Name: "FWVGA", AspectRatio: AspectRatio169, Rows: 480, Cols: 854},
	"vga":   {Name: "VGA", AspectRatio: AspectRatio43, Rows: 480, Cols: 640},
	"540p":  {Name: "qHD 540p", AspectRatio: AspectRatio169, Rows: 540, Cols: 960},
	"720p":  {Name: "HD 720p", AspectRatio: AspectRatio169, Rows: 720, Cols: 1280},
	"1mp":   {Name: "1MP (5:4)", AspectRatio: AspectRatio54, Rows: 1024, Cols: 1280},
	"1080p": {Name: "Full HD 1080p", AspectRatio: AspectRatio169, Rows: 1080, Cols: 1920},
	"2mp":   {Name: "2MP (4:3)", AspectRatio: AspectRatio43, Rows: 1200, Cols: 1600},
	"1440p": {Name: "QHD 1440p", AspectRatio: AspectRatio169, Rows: 1440, Cols: 2560},
	"3mp":   {Name: "3MP (4:3)", AspectRatio: AspectRatio43, Rows: 1536, Cols: 2048},
	"4mp":   {Name: "4MP (16:9)", AspectRatio: AspectRatio169, Rows: 1520, Cols: 2688},
	"6mp":   {Name: "6MP (3:2)", AspectRatio: AspectRatio32, Rows: 2048, Cols: 3072},
	"4k":    {Name: "4K UHD", AspectRatio: AspectRatio169, Rows: 2160, Cols: 3840},
	"12mp":  {Name: "12MP (4:3)", AspectRatio: AspectRatio43, Rows: 3000, Cols: 4000},
}

// GetResolution retrieves a resolution by its alias.
// It returns the Resolution and true if found, otherwise an empty Resolution and false.
func GetResolution(alias string) (Resolution, bool) {
	res, ok := resolutions[alias]
	return res, ok
}

// ResolutionAliases returns every accepted alias in sorted order.
func ResolutionAliases() []string {
	aliases := make([]string, 0, len(resolutions))
	for alias := range resolutions {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
