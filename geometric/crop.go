package geometric

import (
	"image"

	"github.com/nvr-ai/go-augment/bbox"
)

// CropByCoords maps boxes of a rows×cols image into the crop window coords,
// whose size is cropHeight×cropWidth. Boxes partly or fully outside the
// window end up with coordinates outside [0, 1]; Filter deals with them.
//
// Arguments:
//   - boxes: Internal boxes of the source image.
//   - coords: The crop window in source pixels.
//   - cropHeight: Height of the crop.
//   - cropWidth: Width of the crop.
//   - rows: Source image height.
//   - cols: Source image width.
//
// Returns:
//   - Internal boxes relative to the crop.
//
// @example
// cropped := CropByCoords(boxes, image.Rect(18, 18, 82, 82), 64, 64, 100, 100)
func CropByCoords(boxes *bbox.Boxes, coords image.Rectangle, cropHeight, cropWidth, rows, cols int) *bbox.Boxes {
	pixels := bbox.Denormalize(boxes, float64(rows), float64(cols))
	dx, dy := float64(coords.Min.X), float64(coords.Min.Y)
	shifted := pixels.MapRows(func(c [4]float64) [4]float64 {
		return [4]float64{c[0] - dx, c[1] - dy, c[2] - dx, c[3] - dy}
	})
	return bbox.Normalize(shifted, float64(cropHeight), float64(cropWidth))
}

// Crop maps boxes into the pixel window (xMin, yMin)-(xMax, yMax).
// x is normalized by the window width and y by the window height.
func Crop(boxes *bbox.Boxes, xMin, yMin, xMax, yMax, rows, cols int) *bbox.Boxes {
	return CropByCoords(boxes, image.Rect(xMin, yMin, xMax, yMax), yMax-yMin, xMax-xMin, rows, cols)
}

// CenterCropCoords returns the centered cropHeight×cropWidth window of a
// rows×cols image.
func CenterCropCoords(rows, cols, cropHeight, cropWidth int) image.Rectangle {
	y1 := (rows - cropHeight) / 2
	x1 := (cols - cropWidth) / 2
	return image.Rect(x1, y1, x1+cropWidth, y1+cropHeight)
}

// CenterCrop maps boxes into the centered cropHeight×cropWidth window.
func CenterCrop(boxes *bbox.Boxes, cropHeight, cropWidth, rows, cols int) *bbox.Boxes {
	return CropByCoords(boxes, CenterCropCoords(rows, cols, cropHeight, cropWidth), cropHeight, cropWidth, rows, cols)
}

// RandomCropCoords returns the cropHeight×cropWidth window whose top-left is
// placed at the fractions hStart and wStart, in [0, 1], of the free space.
func RandomCropCoords(rows, cols, cropHeight, cropWidth int, hStart, wStart float64) image.Rectangle {
	y1 := int(float64(rows-cropHeight+1) * hStart)
	x1 := int(float64(cols-cropWidth+1) * wStart)
	return image.Rect(x1, y1, x1+cropWidth, y1+cropHeight)
}

// RandomCrop maps boxes into the window chosen by RandomCropCoords. The
// caller draws hStart and wStart.
func RandomCrop(boxes *bbox.Boxes, cropHeight, cropWidth int, hStart, wStart float64, rows, cols int) *bbox.Boxes {
	coords := RandomCropCoords(rows, cols, cropHeight, cropWidth, hStart, wStart)
	return CropByCoords(boxes, coords, cropHeight, cropWidth, rows, cols)
}
