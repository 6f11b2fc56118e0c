package geometric

import (
	"github.com/nvr-ai/go-augment/bbox"
	"github.com/pkg/errors"
)

// MosaicPosition is a tile's quadrant in a 2×2 mosaic.
type MosaicPosition int

const (
	// MosaicTopLeft places the tile's bottom-right corner on the canvas center.
	MosaicTopLeft MosaicPosition = iota
	// MosaicTopRight places the tile's bottom-left corner on the canvas center.
	MosaicTopRight
	// MosaicBottomLeft places the tile's top-right corner on the canvas center.
	MosaicBottomLeft
	// MosaicBottomRight places the tile's top-left corner on the canvas center.
	MosaicBottomRight
)

// Keypoint is a point in pixels with its orientation and scale.
type Keypoint struct {
	X, Y  float64
	Angle float64
	Scale float64
}

// mosaicShift returns the pixel offset of a rows×cols tile at position on a
// height×width canvas.
func mosaicShift(rows, cols int, position MosaicPosition, height, width int) (float64, float64, error) {
	cx, cy := width/2, height/2
	switch position {
	case MosaicTopLeft:
		return float64(cx - cols), float64(cy - rows), nil
	case MosaicTopRight:
		return float64(cx), float64(cy - rows), nil
	case MosaicBottomLeft:
		return float64(cx - cols), float64(cy), nil
	case MosaicBottomRight:
		return float64(cx), float64(cy), nil
	default:
		return 0, 0, errors.Errorf("mosaic position must be in [0, 3], got %d", position)
	}
}

// Mosaic4 moves the boxes of a rows×cols tile onto a height×width mosaic
// canvas. The result is normalized to the canvas.
//
// Arguments:
//   - boxes: Internal boxes of the tile.
//   - rows: Tile height.
//   - cols: Tile width.
//   - position: The tile's quadrant.
//   - height: Canvas height.
//   - width: Canvas width.
//
// Returns:
//   - Internal boxes of the canvas, or an error for an unknown position.
//
// @example
// onCanvas, err := Mosaic4(boxes, 320, 320, MosaicTopRight, 640, 640)
func Mosaic4(boxes *bbox.Boxes, rows, cols int, position MosaicPosition, height, width int) (*bbox.Boxes, error) {
	dx, dy, err := mosaicShift(rows, cols, position, height, width)
	if err != nil {
		return nil, err
	}
	pixels := bbox.Denormalize(boxes, float64(rows), float64(cols))
	shifted := pixels.MapRows(func(c [4]float64) [4]float64 {
		return [4]float64{c[0] + dx, c[1] + dy, c[2] + dx, c[3] + dy}
	})
	return bbox.Normalize(shifted, float64(height), float64(width)), nil
}

// KeypointMosaic4 moves a tile's keypoint onto the mosaic canvas. Keypoints
// stay in pixels.
func KeypointMosaic4(kp Keypoint, rows, cols int, position MosaicPosition, height, width int) (Keypoint, error) {
	dx, dy, err := mosaicShift(rows, cols, position, height, width)
	if err != nil {
		return Keypoint{}, err
	}
	kp.X += dx
	kp.Y += dy
	return kp, nil
}
