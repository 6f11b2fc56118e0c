package bbox

import (
	"github.com/pkg/errors"
)

// Params configures how a Processor treats the boxes of one image.
type Params struct {
	// Format is the external format boxes arrive and leave in.
	Format Format `json:"format" yaml:"format"`
	// LabelFields names the label columns merged into each box, in order.
	LabelFields []string `json:"label_fields,omitempty" yaml:"label_fields,omitempty"`
	// FilterOptions are the survival thresholds, all default 0.
	FilterOptions `json:",inline" yaml:",inline"`
	// CheckEachTransform runs Filter and Check after every transform step.
	CheckEachTransform bool `json:"check_each_transform" yaml:"check_each_transform"`
}

// DefaultParams returns the defaults for format: no label fields, zero
// thresholds and CheckEachTransform enabled.
func DefaultParams(format Format) Params {
	return Params{
		Format:             format,
		CheckEachTransform: true,
	}
}

// Validate reports an unknown format or a negative threshold.
func (p Params) Validate() error {
	if _, err := ParseFormat(string(p.Format)); err != nil {
		return err
	}
	thresholds := []struct {
		name  string
		value float64
	}{
		{"min_area", p.MinArea},
		{"min_visibility", p.MinVisibility},
		{"min_width", p.MinWidth},
		{"min_height", p.MinHeight},
	}
	for _, t := range thresholds {
		if t.value < 0 {
			return errors.Errorf("%s must be >= 0, got %v", t.name, t.value)
		}
	}
	return nil
}
