package bbox

import "math"

// Tolerances used to accept coordinates that are within rounding of 0 or 1.
const (
	closeAbsTol = 1e-8
	closeRelTol = 1e-5
)

// isClose reports whether a is within tolerance of b, relative to b.
func isClose(a, b float64) bool {
	return math.Abs(a-b) <= closeAbsTol+closeRelTol*math.Abs(b)
}

// Check validates internal boxes: every coordinate must lie in [0, 1] (or be
// close to 0 or 1) and every box must have x_min < x_max and y_min < y_max.
//
// The range check runs over all boxes first and reports the first offending
// value in row-then-column order as a *RangeError. Only then are boxes
// checked for ordering: any x violation is reported before any y violation,
// as an *OrderError.
//
// Arguments:
//   - boxes: Boxes in the internal format. Empty collections always pass.
//
// Returns:
//   - nil if all boxes are valid.
func Check(boxes *Boxes) error {
	n := boxes.Len()
	if n == 0 {
		return nil
	}
	names := FormatAlbumentations.axisNames()
	for i := 0; i < n; i++ {
		row := boxes.Row(i)
		for j, v := range row {
			if !(v >= 0 && v <= 1) && !isClose(v, 0) && !isClose(v, 1) {
				return &RangeError{Axis: names[j], Box: row, Value: v, Range: "[0.0, 1.0]"}
			}
		}
	}
	for i := 0; i < n; i++ {
		if row := boxes.Row(i); row[0] >= row[2] {
			return &OrderError{Axis: "x", Box: row}
		}
	}
	for i := 0; i < n; i++ {
		if row := boxes.Row(i); row[1] >= row[3] {
			return &OrderError{Axis: "y", Box: row}
		}
	}
	return nil
}

// checkYOLO requires every coordinate of a yolo collection to lie in (0, 1].
func checkYOLO(boxes *Boxes) error {
	names := FormatYOLO.axisNames()
	for i := 0; i < boxes.Len(); i++ {
		row := boxes.Row(i)
		for j, v := range row {
			if !(v > 0 && v <= 1) {
				return &RangeError{Axis: names[j], Box: row, Value: v, Range: "(0.0, 1.0]"}
			}
		}
	}
	return nil
}
