// Package common - detection bounding boxes and their bridge to bbox collections.
package common

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/nvr-ai/go-augment/bbox"
	"github.com/pkg/errors"
)

// BoundingBox represents a bounding box with its label, confidence, and
// pixel coordinates (pascal_voc order).
type BoundingBox struct {
	Label          string
	Confidence     float32
	X1, Y1, X2, Y2 float32
}

// String formats the bounding box information for display.
//
// Returns:
// - A formatted string containing object class, confidence, and coordinates.
//
// @example
// box := BoundingBox{Label: "person", Confidence: 0.95, X1: 100, Y1: 100, X2: 200, Y2: 300}
// fmt.Println(box.String()) // Object person (confidence 0.950000): (100.00, 100.00), (200.00, 300.00)
func (b *BoundingBox) String() string {
	return fmt.Sprintf("Object %s (confidence %f): (%.2f, %.2f), (%.2f, %.2f)",
		b.Label, b.Confidence, b.X1, b.Y1, b.X2, b.Y2)
}

// Area returns the area of b in pixels. Inverted boxes have zero area.
func (b *BoundingBox) Area() float32 {
	return math32.Max(0, b.X2-b.X1) * math32.Max(0, b.Y2-b.Y1)
}

// Intersection calculates the intersection area between two bounding boxes.
//
// Arguments:
// - other: The other bounding box to calculate intersection with.
//
// Returns:
// - The area of intersection in pixels.
//
// @example
// box1 := BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}
// box2 := BoundingBox{X1: 50, Y1: 50, X2: 150, Y2: 150}
// area := box1.Intersection(&box2) // Returns 2500.0 (50x50 overlap)
func (b *BoundingBox) Intersection(other *BoundingBox) float32 {
	w := math32.Min(b.X2, other.X2) - math32.Max(b.X1, other.X1)
	h := math32.Min(b.Y2, other.Y2) - math32.Max(b.Y1, other.Y1)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Union calculates the union area between two bounding boxes.
func (b *BoundingBox) Union(other *BoundingBox) float32 {
	return b.Area() + other.Area() - b.Intersection(other)
}

// IoU calculates the Intersection over Union between two bounding boxes.
//
// Returns:
// - The IoU value between 0 and 1; 0 when both boxes are empty.
//
// @example
// box1 := BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}
// box2 := BoundingBox{X1: 50, Y1: 50, X2: 150, Y2: 150}
// iou := box1.IoU(&box2) // Returns ~0.143 (2500/17500)
func (b *BoundingBox) IoU(other *BoundingBox) float32 {
	union := b.Union(other)
	if union <= 0 {
		return 0
	}
	return b.Intersection(other) / union
}

// ToBoxes converts detections into a pascal_voc collection whose labels are
// (Label, Confidence).
//
// @example
// internal, err := bbox.ConvertToInternal(common.ToBoxes(dets), bbox.FormatPascalVOC, 480, 640, true)
func ToBoxes(dets []BoundingBox) *bbox.Boxes {
	boxes := make([]bbox.Box, len(dets))
	for i, d := range dets {
		boxes[i] = bbox.Box{
			Coords: [4]float64{float64(d.X1), float64(d.Y1), float64(d.X2), float64(d.Y2)},
			Labels: []any{d.Label, d.Confidence},
		}
	}
	return bbox.NewBoxes(boxes)
}

// FromBoxes converts a pascal_voc collection produced by ToBoxes back into
// detections.
//
// Returns:
//   - The detections, or an error when a box's labels are not (string, float32).
func FromBoxes(boxes *bbox.Boxes) ([]BoundingBox, error) {
	dets := make([]BoundingBox, boxes.Len())
	for i := range dets {
		labels := boxes.Labels(i)
		if len(labels) < 2 {
			return nil, errors.Errorf("box %d has %d labels, want label and confidence", i, len(labels))
		}
		label, ok := labels[0].(string)
		if !ok {
			return nil, errors.Errorf("box %d label is %T, want string", i, labels[0])
		}
		confidence, ok := labels[1].(float32)
		if !ok {
			return nil, errors.Errorf("box %d confidence is %T, want float32", i, labels[1])
		}
		c := boxes.Row(i)
		dets[i] = BoundingBox{
			Label:      label,
			Confidence: confidence,
			X1:         float32(c[0]),
			Y1:         float32(c[1]),
			X2:         float32(c[2]),
			Y2:         float32(c[3]),
		}
	}
	return dets, nil
}
