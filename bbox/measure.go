package bbox

import (
	"math"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Normalize divides x coordinates by cols and y coordinates by rows.
//
// Arguments:
//   - boxes: Pixel boxes `(x_min, y_min, x_max, y_max)`.
//   - rows: Image height.
//   - cols: Image width.
//
// Returns:
//   - A new collection; the input is not modified.
//
// @example
// normalized := Normalize(boxes, 480, 640)
func Normalize(boxes *Boxes, rows, cols float64) *Boxes {
	return mapColumns(boxes,
		func(x float64) float64 { return x / cols },
		func(y float64) float64 { return y / rows },
	)
}

// Denormalize multiplies x coordinates by cols and y coordinates by rows.
// It is the inverse of Normalize and likewise returns a new collection.
func Denormalize(boxes *Boxes, rows, cols float64) *Boxes {
	return mapColumns(boxes,
		func(x float64) float64 { return x * cols },
		func(y float64) float64 { return y * rows },
	)
}

// mapColumns clones boxes and applies fx to the x columns (0 and 2) and fy to
// the y columns (1 and 3) through strided views of the cloned tensor.
func mapColumns(boxes *Boxes, fx, fy func(float64) float64) *Boxes {
	out := boxes.Clone()
	if out.array == nil {
		return out
	}
	for start, fn := range []func(float64) float64{fx, fy} {
		view, err := out.array.Slice(nil, tensor.S(start, 4, 2))
		if err != nil {
			panic(errors.Wrap(err, "slice coordinate columns"))
		}
		if _, err := view.(*tensor.Dense).Apply(fn, tensor.UseUnsafe()); err != nil {
			panic(errors.Wrap(err, "scale coordinate columns"))
		}
	}
	return out
}

// Area returns the pixel area of each internal box for a rows×cols frame.
func Area(boxes *Boxes, rows, cols float64) []float64 {
	areas := make([]float64, boxes.Len())
	for i := range areas {
		c := boxes.Row(i)
		areas[i] = (c[2] - c[0]) * (c[3] - c[1]) * cols * rows
	}
	return areas
}

// Union returns the box enclosing all boxes after each is eroded toward its
// own center by erosionRate of its width and height.
//
// The frame contributes (width, height) as an extra minimum candidate and
// (0, 0) as an extra maximum candidate. That bounds the result's top-left by
// the frame's bottom-right and its bottom-right by the origin, and nothing
// more; it is not a clamp into the frame.
//
// Arguments:
//   - boxes: Boxes in any `(x_min, y_min, x_max, y_max)` unit.
//   - height: Height of the image or space.
//   - width: Width of the image or space.
//   - erosionRate: 0 keeps boxes intact; 1 collapses them.
//
// Returns:
//   - The enclosing `(x_min, y_min, x_max, y_max)`.
//
// @example
// u := Union(boxes, 100, 100, 0)
func Union(boxes *Boxes, height, width, erosionRate float64) [4]float64 {
	x1, y1 := width, height
	x2, y2 := 0.0, 0.0
	for i := 0; i < boxes.Len(); i++ {
		c := boxes.Row(i)
		dw := (c[2] - c[0]) * erosionRate
		dh := (c[3] - c[1]) * erosionRate
		x1 = math.Min(x1, c[0]+dw)
		y1 = math.Min(y1, c[1]+dh)
		x2 = math.Max(x2, c[2]-dw)
		y2 = math.Max(y2, c[3]-dh)
	}
	return [4]float64{x1, y1, x2, y2}
}
