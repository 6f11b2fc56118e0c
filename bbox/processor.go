package bbox

import (
	"fmt"
	"log"
	"sync"

	"github.com/pkg/errors"
)

// Target is the box data of one image as a caller supplies it: boxes with
// optional inline labels, plus named label columns parallel to the boxes.
type Target struct {
	// Boxes are in the Processor's external format.
	Boxes []Box `json:"boxes" yaml:"boxes"`
	// Fields maps a label field name to one value per box.
	Fields map[string][]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// BatchItem is one image's collection handed to FilterBatch.
type BatchItem struct {
	Boxes *Boxes
	Rows  int
	Cols  int
}

// Processor moves one image's boxes in and out of the internal format and
// applies the filtering configured by its Params.
type Processor struct {
	params    Params
	debugMode bool
}

// NewProcessor creates a processor for params.
//
// Arguments:
//   - params: The box configuration. It is validated.
//
// Returns:
//   - The processor, or an error when params are invalid.
//
// @example
// params := DefaultParams(FormatCOCO)
// params.LabelFields = []string{"class_labels"}
// p, err := NewProcessor(params)
func NewProcessor(params Params) (*Processor, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid bbox params")
	}
	return &Processor{params: params}, nil
}

// Params returns the processor configuration.
func (p *Processor) Params() Params {
	return p.params
}

// SetDebugMode enables or disables debug logging.
func (p *Processor) SetDebugMode(enabled bool) {
	p.debugMode = enabled
}

func (p *Processor) debugf(format string, args ...any) {
	if p.debugMode {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// EnsureValid checks that every box can be paired with its labels.
//
// Arguments:
//   - target: The caller's data.
//
// Returns:
//   - *ConfigurationError when boxes carry no inline labels and no label
//     fields are declared, when a declared field is missing, or when a field
//     does not have one value per box.
func (p *Processor) EnsureValid(target Target) error {
	if len(target.Boxes) > 0 && len(target.Boxes[0].Labels) == 0 && p.params.LabelFields == nil {
		return &ConfigurationError{
			Reason: "please specify label_fields in the bbox params or add labels to the end of each box, " +
				"because boxes must have labels",
		}
	}
	for _, name := range p.params.LabelFields {
		values, ok := target.Fields[name]
		if !ok {
			return &ConfigurationError{
				Reason: fmt.Sprintf("label field %q is not valid: label_fields must name fields of the target", name),
			}
		}
		if len(values) != len(target.Boxes) {
			return &ConfigurationError{
				Reason: fmt.Sprintf("label field %q has %d values for %d boxes", name, len(values), len(target.Boxes)),
			}
		}
	}
	return nil
}

// Preprocess merges the declared label fields into the boxes and converts
// them to the internal format, checking validity.
//
// Arguments:
//   - target: The caller's data in the configured format.
//   - rows: Image height.
//   - cols: Image width.
//
// Returns:
//   - The internal collection; each box's labels are its inline labels
//     followed by one value per label field.
//   - A configuration, format, range or order error.
func (p *Processor) Preprocess(target Target, rows, cols int) (*Boxes, error) {
	if err := p.EnsureValid(target); err != nil {
		return nil, err
	}

	merged := make([]Box, len(target.Boxes))
	for i, b := range target.Boxes {
		labels := append([]any(nil), b.Labels...)
		for _, name := range p.params.LabelFields {
			labels = append(labels, target.Fields[name][i])
		}
		merged[i] = Box{Coords: b.Coords, Labels: labels}
	}
	boxes := NewBoxes(merged)
	p.debugf("Preprocessing %d boxes from %s, frame %dx%d", boxes.Len(), p.params.Format, cols, rows)

	if p.params.Format == FormatAlbumentations {
		if err := Check(boxes); err != nil {
			return nil, errors.Wrap(err, "check boxes")
		}
		return boxes, nil
	}
	internal, err := ConvertToInternal(boxes, p.params.Format, rows, cols, true)
	if err != nil {
		return nil, errors.Wrapf(err, "convert boxes from %s", p.params.Format)
	}
	return internal, nil
}

// Filter applies the configured thresholds to internal boxes. See Filter.
func (p *Processor) Filter(boxes *Boxes, rows, cols int) (*Boxes, error) {
	before := boxes.Len()
	kept, err := Filter(boxes, rows, cols, p.params.FilterOptions)
	if err != nil {
		return nil, err
	}
	if dropped := before - kept.Len(); dropped > 0 {
		p.debugf("Filter dropped %d of %d boxes", dropped, before)
	}
	return kept, nil
}

// Check validates internal boxes. See Check.
func (p *Processor) Check(boxes *Boxes) error {
	return Check(boxes)
}

// PostTransform runs after a transform step has moved the boxes. When
// CheckEachTransform is set the boxes are filtered and then checked;
// otherwise they are returned untouched.
func (p *Processor) PostTransform(boxes *Boxes, rows, cols int) (*Boxes, error) {
	if !p.params.CheckEachTransform {
		return boxes, nil
	}
	kept, err := p.Filter(boxes, rows, cols)
	if err != nil {
		return nil, err
	}
	if err := p.Check(kept); err != nil {
		return nil, errors.Wrap(err, "check boxes after transform")
	}
	return kept, nil
}

// Postprocess filters internal boxes, converts the survivors back to the
// configured format and splits the label fields out again.
//
// Arguments:
//   - boxes: The internal collection after all transforms.
//   - rows: Final image height.
//   - cols: Final image width.
//
// Returns:
//   - The target in the configured format.
//   - A format, range or order error.
func (p *Processor) Postprocess(boxes *Boxes, rows, cols int) (Target, error) {
	kept, err := p.Filter(boxes, rows, cols)
	if err != nil {
		return Target{}, err
	}
	return p.Export(kept, rows, cols)
}

// Export converts internal boxes to the configured format and splits the
// label fields out again without filtering. Use it for collections that
// were already filtered, e.g. by FilterBatch.
func (p *Processor) Export(boxes *Boxes, rows, cols int) (Target, error) {
	var out *Boxes
	if p.params.Format == FormatAlbumentations {
		if err := Check(boxes); err != nil {
			return Target{}, errors.Wrap(err, "check boxes")
		}
		out = boxes
	} else {
		var err error
		out, err = ConvertFromInternal(boxes, p.params.Format, rows, cols, true)
		if err != nil {
			return Target{}, errors.Wrapf(err, "convert boxes to %s", p.params.Format)
		}
	}
	p.debugf("Postprocessed %d boxes to %s, frame %dx%d", out.Len(), p.params.Format, cols, rows)

	return p.split(out)
}

// split moves the trailing label-field values of each box into named columns.
func (p *Processor) split(boxes *Boxes) (Target, error) {
	nFields := len(p.params.LabelFields)
	target := Target{Boxes: make([]Box, boxes.Len())}
	if nFields > 0 {
		target.Fields = make(map[string][]any, nFields)
		for _, name := range p.params.LabelFields {
			target.Fields[name] = make([]any, 0, boxes.Len())
		}
	}
	for i := 0; i < boxes.Len(); i++ {
		labels := boxes.Labels(i)
		inline := len(labels) - nFields
		if inline < 0 {
			return Target{}, &ConfigurationError{
				Reason: fmt.Sprintf("box %d has %d labels, fewer than the %d label fields", i, len(labels), nFields),
			}
		}
		for j, name := range p.params.LabelFields {
			target.Fields[name] = append(target.Fields[name], labels[inline+j])
		}
		target.Boxes[i] = Box{Coords: boxes.Row(i), Labels: append([]any(nil), labels[:inline]...)}
	}
	return target, nil
}

// FilterBatch filters the collections of many images concurrently.
//
// Each collection is owned by exactly one goroutine, so no locking is needed
// between them.
//
// Arguments:
//   - items: One entry per image.
//   - maxConcurrency: Maximum number of collections filtered at once.
//
// Returns:
//   - The filtered collections, in item order.
//   - The first error in item order, if any.
//
// @example
// kept, err := processor.FilterBatch(items, 4)
func (p *Processor) FilterBatch(items []BatchItem, maxConcurrency int) ([]*Boxes, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	results := make([]*Boxes, len(items))
	errs := make([]error, len(items))

	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, item BatchItem) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			kept, err := Filter(item.Boxes, item.Rows, item.Cols, p.params.FilterOptions)
			if err != nil {
				errs[idx] = errors.Wrapf(err, "filter item %d", idx)
				return
			}
			results[idx] = kept
		}(i, item)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
