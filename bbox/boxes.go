// Package bbox - bounding box container, format conversion, validation and filtering.
package bbox

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Box is a single external box: four leading coordinates interpreted by the
// active Format, followed by zero or more opaque label fields.
type Box struct {
	// Coords are the four coordinates in the order of the box format.
	Coords [4]float64
	// Labels are carried verbatim and positionally through every operation.
	Labels []any
}

// Boxes is an ordered collection of boxes stored as an N×4 float64 tensor
// paired with one label tuple per row. Any operation that drops or reorders
// rows applies the same permutation to the labels.
//
// Boxes is not safe for concurrent use.
type Boxes struct {
	array   *tensor.Dense
	targets [][]any
}

// NewBoxes creates a collection from external boxes.
//
// Arguments:
//   - boxes: The boxes, coordinates first and labels after.
//
// Returns:
//   - A collection holding a private copy of the coordinates.
//
// @example
// boxes := NewBoxes([]Box{{Coords: [4]float64{10, 20, 50, 80}, Labels: []any{"dog"}}})
func NewBoxes(boxes []Box) *Boxes {
	data := make([]float64, 0, len(boxes)*4)
	targets := make([][]any, len(boxes))
	for i, b := range boxes {
		data = append(data, b.Coords[:]...)
		targets[i] = append([]any(nil), b.Labels...)
	}
	return fromBacking(data, targets)
}

// FromArray adapts a raw coordinate array with no labels into a collection.
func FromArray(coords [][4]float64) *Boxes {
	data := make([]float64, 0, len(coords)*4)
	for _, c := range coords {
		data = append(data, c[:]...)
	}
	return fromBacking(data, make([][]any, len(coords)))
}

// FromTensor wraps an existing N×4 float64 tensor. The tensor is cloned;
// transposed and sliced views are materialized in logical row order first.
//
// Arguments:
//   - t: An N×4 dense tensor of float64.
//   - targets: Per-row labels; nil means no labels.
//
// Returns:
//   - The collection, or an error if the shape, dtype or label count is wrong.
func FromTensor(t *tensor.Dense, targets [][]any) (*Boxes, error) {
	if t.Dtype() != tensor.Float64 {
		return nil, errors.Errorf("expected float64 tensor, got %v", t.Dtype())
	}
	shape := t.Shape()
	if len(shape) != 2 || shape[1] != 4 {
		return nil, errors.Errorf("expected tensor of shape (N, 4), got %v", shape)
	}
	if targets == nil {
		targets = make([][]any, shape[0])
	}
	if len(targets) != shape[0] {
		return nil, errors.Errorf("got %d label tuples for %d boxes", len(targets), shape[0])
	}
	src := t
	if t.IsMaterializable() || t.RequiresIterator() {
		mat := t.Materialize()
		m, ok := mat.(*tensor.Dense)
		if !ok {
			return nil, errors.Errorf("cannot materialize tensor view of type %T", mat)
		}
		src = m
	}
	data := append([]float64(nil), src.Data().([]float64)[:shape.TotalSize()]...)
	return fromBacking(data, copyTargets(targets)), nil
}

func fromBacking(data []float64, targets [][]any) *Boxes {
	b := &Boxes{targets: targets}
	if len(data) > 0 {
		b.array = tensor.New(tensor.WithShape(len(data)/4, 4), tensor.WithBacking(data))
	}
	return b
}

// Len returns the number of boxes.
func (b *Boxes) Len() int {
	if b == nil {
		return 0
	}
	return len(b.targets)
}

// Tensor returns the backing N×4 tensor. It is nil for an empty collection.
// Writes through the tensor mutate the collection.
func (b *Boxes) Tensor() *tensor.Dense {
	return b.array
}

func (b *Boxes) data() []float64 {
	if b.array == nil {
		return nil
	}
	return b.array.Data().([]float64)
}

// Row returns the coordinates of box i.
func (b *Boxes) Row(i int) [4]float64 {
	var r [4]float64
	copy(r[:], b.data()[i*4:i*4+4])
	return r
}

// SetRow overwrites the coordinates of box i in place.
func (b *Boxes) SetRow(i int, c [4]float64) {
	copy(b.data()[i*4:i*4+4], c[:])
}

// Labels returns the label tuple of box i.
func (b *Boxes) Labels(i int) []any {
	return b.targets[i]
}

// Coords returns a copy of all coordinate rows.
func (b *Boxes) Coords() [][4]float64 {
	out := make([][4]float64, b.Len())
	for i := range out {
		out[i] = b.Row(i)
	}
	return out
}

// Boxes returns the collection as external boxes with labels appended.
func (b *Boxes) Boxes() []Box {
	out := make([]Box, b.Len())
	for i := range out {
		out[i] = Box{Coords: b.Row(i), Labels: append([]any(nil), b.targets[i]...)}
	}
	return out
}

// Clone returns a deep copy of the coordinates. Label values are shared.
func (b *Boxes) Clone() *Boxes {
	if b == nil {
		return &Boxes{}
	}
	return fromBacking(append([]float64(nil), b.data()...), copyTargets(b.targets))
}

// Select returns a new collection holding the rows at idx, in that order,
// with their labels.
//
// Arguments:
//   - idx: Row indices; each must be in [0, Len()).
//
// Returns:
//   - The sub-collection.
//
// @example
// kept := boxes.Select([]int{0, 2})
func (b *Boxes) Select(idx []int) *Boxes {
	src := b.data()
	data := make([]float64, 0, len(idx)*4)
	targets := make([][]any, 0, len(idx))
	for _, i := range idx {
		data = append(data, src[i*4:i*4+4]...)
		targets = append(targets, b.targets[i])
	}
	return fromBacking(data, targets)
}

// MapRows returns a new collection where every row is replaced by fn's result.
// Labels are carried over unchanged.
func (b *Boxes) MapRows(fn func(c [4]float64) [4]float64) *Boxes {
	out := b.Clone()
	for i := 0; i < out.Len(); i++ {
		out.SetRow(i, fn(out.Row(i)))
	}
	return out
}

// String formats the collection one box per line.
func (b *Boxes) String() string {
	s := fmt.Sprintf("Boxes(%d)", b.Len())
	for i := 0; i < b.Len(); i++ {
		s += fmt.Sprintf("\n  %v %v", b.Row(i), b.targets[i])
	}
	return s
}

func copyTargets(targets [][]any) [][]any {
	out := make([][]any, len(targets))
	for i, t := range targets {
		out[i] = append([]any(nil), t...)
	}
	return out
}
