package common

import (
	"testing"

	"github.com/nvr-ai/go-augment/bbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBoundingBoxString verifies that bounding box string formatting works correctly.
func TestBoundingBoxString(t *testing.T) {
	box := BoundingBox{Label: "person", Confidence: 0.95, X1: 100, Y1: 100, X2: 200, Y2: 300}

	assert.Equal(t, "Object person (confidence 0.950000): (100.00, 100.00), (200.00, 300.00)", box.String())
}

// TestBoundingBoxIoU verifies Intersection over Union calculations.
//
// @example
// go test -v -run TestBoundingBoxIoU
func TestBoundingBoxIoU(t *testing.T) {
	tests := []struct {
		name        string
		box1        BoundingBox
		box2        BoundingBox
		expectedIoU float32
	}{
		{
			name:        "identical boxes",
			box1:        BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:        BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100},
			expectedIoU: 1.0,
		},
		{
			name:        "partial overlap",
			box1:        BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:        BoundingBox{X1: 50, Y1: 50, X2: 150, Y2: 150},
			expectedIoU: 0.1428, // 2500/17500
		},
		{
			name:        "no overlap",
			box1:        BoundingBox{X1: 0, Y1: 0, X2: 50, Y2: 50},
			box2:        BoundingBox{X1: 100, Y1: 100, X2: 150, Y2: 150},
			expectedIoU: 0.0,
		},
		{
			name:        "small box inside large box",
			box1:        BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100},
			box2:        BoundingBox{X1: 40, Y1: 40, X2: 60, Y2: 60},
			expectedIoU: 0.04, // 400/10000
		},
		{
			name:        "empty boxes",
			box1:        BoundingBox{},
			box2:        BoundingBox{},
			expectedIoU: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.box1.IoU(&tt.box2)
			assert.InDelta(t, tt.expectedIoU, result, 0.001)

			// Verify commutativity
			assert.InDelta(t, result, tt.box2.IoU(&tt.box1), 0.0001)
		})
	}
}

func TestBoundingBoxArea(t *testing.T) {
	assert.Equal(t, float32(200), (&BoundingBox{X1: 10, Y1: 10, X2: 20, Y2: 30}).Area())
	assert.Equal(t, float32(0), (&BoundingBox{X1: 20, Y1: 10, X2: 10, Y2: 30}).Area())
}

func TestBoxesRoundTrip(t *testing.T) {
	dets := []BoundingBox{
		{Label: "person", Confidence: 0.9, X1: 64, Y1: 48, X2: 320, Y2: 240},
		{Label: "car", Confidence: 0.6, X1: 0, Y1: 0, X2: 640, Y2: 480},
	}

	internal, err := bbox.ConvertToInternal(ToBoxes(dets), bbox.FormatPascalVOC, 480, 640, true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.1, 0.1, 0.5, 0.5}, sliceOf(internal.Row(0)), 1e-9)

	back, err := bbox.ConvertFromInternal(internal, bbox.FormatPascalVOC, 480, 640, true)
	require.NoError(t, err)

	got, err := FromBoxes(back)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range dets {
		assert.Equal(t, dets[i].Label, got[i].Label)
		assert.Equal(t, dets[i].Confidence, got[i].Confidence)
		assert.InDelta(t, dets[i].X1, got[i].X1, 1e-3)
		assert.InDelta(t, dets[i].Y2, got[i].Y2, 1e-3)
	}
}

func TestFromBoxesRejectsForeignLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []any
	}{
		{"missing confidence", []any{"person"}},
		{"numeric label", []any{1, float32(0.5)}},
		{"float64 confidence", []any{"person", 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes := bbox.NewBoxes([]bbox.Box{{Coords: [4]float64{1, 1, 2, 2}, Labels: tt.labels}})

			_, err := FromBoxes(boxes)

			assert.Error(t, err)
		})
	}
}

func sliceOf(c [4]float64) []float64 {
	return c[:]
}
