// Package util - label file loading and frame size discovery for annotation datasets.
package util

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	// Registers the webp decoder with image.Decode for FrameSize.
	_ "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/nvr-ai/go-augment/bbox"
	"github.com/pkg/errors"
)

// imageExtensions are tried in order when looking for the image paired with a
// label file.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".webp"}

// LabelFile represents an annotation file.
type LabelFile struct {
	// Path is the path to the label file.
	Path string
	// Boxes are the file's boxes in file order. Labels are (label) or
	// (label, confidence).
	Boxes []bbox.Box
}

// LoadDirectoryLabelFiles reads all .txt label files from a directory.
//
// Arguments:
// - dir: Directory path containing label files.
//
// Returns:
// - []LabelFile: Slice of LabelFile sorted by file name.
// - error: Error if reading or parsing any file fails.
func LoadDirectoryLabelFiles(dir string) ([]LabelFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read label directory %s", dir)
	}

	var labels []LabelFile
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".txt" {
			continue
		}

		path := filepath.Join(dir, file.Name())
		boxes, err := ParseLabelFile(path)
		if err != nil {
			return nil, err
		}
		labels = append(labels, LabelFile{Path: path, Boxes: boxes})
	}

	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Path < labels[j].Path
	})

	return labels, nil
}

// ParseLabelFile reads one box per line in the form
// "label c0 c1 c2 c3 [confidence]". Blank lines and lines starting with '#'
// are skipped.
//
// Arguments:
// - path: Path to the label file.
//
// Returns:
// - []bbox.Box: The boxes with label and optional confidence as labels.
// - error: Error naming the file and line of the first malformed entry.
//
// @example
// boxes, err := util.ParseLabelFile("labels/frame-0001.txt")
func ParseLabelFile(path string) ([]bbox.Box, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open label file %s", path)
	}
	defer f.Close()

	var boxes []bbox.Box
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		box, err := parseLabelLine(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		boxes = append(boxes, box)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read label file %s", path)
	}

	return boxes, nil
}

func parseLabelLine(text string) (bbox.Box, error) {
	fields := strings.Fields(text)
	if len(fields) != 5 && len(fields) != 6 {
		return bbox.Box{}, errors.Errorf("expected 5 or 6 fields, got %d", len(fields))
	}

	var box bbox.Box
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return bbox.Box{}, errors.Wrapf(err, "coordinate %d", i)
		}
		box.Coords[i] = v
	}

	box.Labels = []any{fields[0]}
	if len(fields) == 6 {
		confidence, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return bbox.Box{}, errors.Wrap(err, "confidence")
		}
		box.Labels = append(box.Labels, confidence)
	}

	return box, nil
}

// FormatLabelLine renders a box back into the label file line format.
func FormatLabelLine(box bbox.Box) string {
	var b strings.Builder
	if len(box.Labels) > 0 {
		b.WriteString(labelString(box.Labels[0]))
	}
	for _, c := range box.Coords {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(c, 'f', -1, 64))
	}
	for _, l := range box.Labels[min(1, len(box.Labels)):] {
		b.WriteByte(' ')
		b.WriteString(labelString(l))
	}
	return b.String()
}

func labelString(v any) string {
	switch l := v.(type) {
	case string:
		return l
	case float64:
		return strconv.FormatFloat(l, 'f', -1, 64)
	default:
		return strings.ReplaceAll(fmt.Sprint(l), " ", "_")
	}
}

// WriteLabelFile writes boxes to path, one FormatLabelLine per line.
func WriteLabelFile(path string, boxes []bbox.Box) error {
	var b strings.Builder
	for _, box := range boxes {
		b.WriteString(FormatLabelLine(box))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrapf(err, "write label file %s", path)
	}
	return nil
}

// FindImage returns the image sitting next to a label file with the same base
// name, searching imageExtensions in order.
//
// Returns:
// - The image path, or an error if none exists.
func FindImage(labelPath string) (string, error) {
	base := strings.TrimSuffix(labelPath, filepath.Ext(labelPath))
	for _, ext := range imageExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Errorf("no image found for %s", labelPath)
}

// FrameSize decodes the image at path and returns its height and width after
// EXIF orientation is applied.
//
// Arguments:
// - path: Path to a jpeg, png, bmp, tiff, gif or webp image.
//
// Returns:
// - rows: Image height in pixels.
// - cols: Image width in pixels.
// - error: Error if the image cannot be decoded.
func FrameSize(path string) (rows, cols int, err error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "decode image %s", path)
	}
	return sizeOf(img)
}

func sizeOf(img image.Image) (int, int, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0, 0, errors.New("image has no pixels")
	}
	return bounds.Dy(), bounds.Dx(), nil
}
