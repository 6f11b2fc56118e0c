// Package geometric - box-side counterparts of the geometric image transforms.
//
// Every function takes boxes in the internal normalized format, returns a new
// collection and leaves labels paired with their boxes.
package geometric

import (
	"github.com/nvr-ai/go-augment/bbox"
	"github.com/pkg/errors"
)

// VFlip flips boxes upside down.
func VFlip(boxes *bbox.Boxes) *bbox.Boxes {
	return boxes.MapRows(func(c [4]float64) [4]float64 {
		return [4]float64{c[0], 1 - c[3], c[2], 1 - c[1]}
	})
}

// HFlip flips boxes left to right.
func HFlip(boxes *bbox.Boxes) *bbox.Boxes {
	return boxes.MapRows(func(c [4]float64) [4]float64 {
		return [4]float64{1 - c[2], c[1], 1 - c[0], c[3]}
	})
}

// Flip flips boxes around axis.
//
// Arguments:
//   - boxes: Internal boxes.
//   - axis: 0 flips vertically, 1 horizontally, -1 both.
//
// Returns:
//   - The flipped boxes, or an error for any other axis.
func Flip(boxes *bbox.Boxes, axis int) (*bbox.Boxes, error) {
	switch axis {
	case 0:
		return VFlip(boxes), nil
	case 1:
		return HFlip(boxes), nil
	case -1:
		return VFlip(HFlip(boxes)), nil
	default:
		return nil, errors.Errorf("invalid flip axis %d, valid values are -1, 0 and 1", axis)
	}
}

// Transpose swaps the rows and columns of boxes.
//
// Arguments:
//   - boxes: Internal boxes.
//   - axis: 0 transposes over the main diagonal, 1 over the anti-diagonal.
//
// Returns:
//   - The transposed boxes, or an error for any other axis.
func Transpose(boxes *bbox.Boxes, axis int) (*bbox.Boxes, error) {
	switch axis {
	case 0:
		return boxes.MapRows(func(c [4]float64) [4]float64 {
			return [4]float64{c[1], c[0], c[3], c[2]}
		}), nil
	case 1:
		return boxes.MapRows(func(c [4]float64) [4]float64 {
			return [4]float64{1 - c[3], 1 - c[2], 1 - c[1], 1 - c[0]}
		}), nil
	default:
		return nil, errors.Errorf("invalid transpose axis %d, valid values are 0 and 1", axis)
	}
}

// Rot90 rotates boxes counterclockwise by factor quarter turns.
//
// Arguments:
//   - boxes: Internal boxes.
//   - factor: Number of quarter turns, in {0, 1, 2, 3}.
//
// Returns:
//   - The rotated boxes, or an error for any other factor.
//
// @example
// rotated, err := Rot90(boxes, 1)
func Rot90(boxes *bbox.Boxes, factor int) (*bbox.Boxes, error) {
	var fn func(c [4]float64) [4]float64
	switch factor {
	case 0:
		return boxes.Clone(), nil
	case 1:
		fn = func(c [4]float64) [4]float64 { return [4]float64{c[1], 1 - c[2], c[3], 1 - c[0]} }
	case 2:
		fn = func(c [4]float64) [4]float64 { return [4]float64{1 - c[2], 1 - c[3], 1 - c[0], 1 - c[1]} }
	case 3:
		fn = func(c [4]float64) [4]float64 { return [4]float64{1 - c[3], c[0], 1 - c[1], c[2]} }
	default:
		return nil, errors.Errorf("rotation factor must be in {0, 1, 2, 3}, got %d", factor)
	}
	return boxes.MapRows(fn), nil
}
