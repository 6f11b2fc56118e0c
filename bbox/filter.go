package bbox

import (
	"math"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// FilterOptions holds the survival thresholds applied by Filter. The zero
// value keeps every box with a non-zero pre-clip area.
type FilterOptions struct {
	// MinArea is the minimum visible area in pixels.
	MinArea float64 `json:"min_area" yaml:"min_area"`
	// MinVisibility is the minimum fraction of the pre-clip area still visible.
	MinVisibility float64 `json:"min_visibility" yaml:"min_visibility"`
	// MinWidth is the minimum visible width in pixels.
	MinWidth float64 `json:"min_width" yaml:"min_width"`
	// MinHeight is the minimum visible height in pixels.
	MinHeight float64 `json:"min_height" yaml:"min_height"`
}

// Clip clamps every coordinate of boxes to [0, 1] in place.
func Clip(boxes *Boxes) error {
	if boxes.Len() == 0 {
		return nil
	}
	_, err := boxes.array.Apply(func(x float64) float64 {
		return math.Max(0, math.Min(1, x))
	}, tensor.UseUnsafe())
	return errors.Wrap(err, "clip boxes")
}

// Filter clips internal boxes to the frame and drops the ones whose visible
// part is too small.
//
// The collection is clipped in place. A box survives when its clipped area,
// clipped width and clipped height reach the minimums and the ratio of its
// clipped area to its pre-clip area reaches MinVisibility. A box whose
// pre-clip area is zero has no defined visibility and is always dropped.
//
// Arguments:
//   - boxes: Boxes in the internal format, usually straight out of a transform.
//   - rows: Image height.
//   - cols: Image width.
//   - opts: The survival thresholds.
//
// Returns:
//   - boxes itself when every box survives, otherwise a new collection of the
//     survivors in their original order with their labels.
//
// @example
// kept, err := Filter(boxes, 100, 100, FilterOptions{MinArea: 150})
func Filter(boxes *Boxes, rows, cols int, opts FilterOptions) (*Boxes, error) {
	n := boxes.Len()
	if n == 0 {
		return boxes, nil
	}
	r, c := float64(rows), float64(cols)

	original := Area(boxes, r, c)
	if err := Clip(boxes); err != nil {
		return nil, err
	}
	clipped := Area(boxes, r, c)

	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		row := boxes.Row(i)
		width := (row[2] - row[0]) * c
		height := (row[3] - row[1]) * r
		if original[i] == 0 {
			continue
		}
		visibility := clipped[i] / original[i]
		if clipped[i] >= opts.MinArea &&
			visibility >= opts.MinVisibility &&
			width >= opts.MinWidth &&
			height >= opts.MinHeight {
			keep = append(keep, i)
		}
	}

	if len(keep) == n {
		return boxes, nil
	}
	return boxes.Select(keep), nil
}
