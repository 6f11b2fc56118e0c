package bbox

// ConvertToInternal converts boxes from source into the internal normalized
// `(x_min, y_min, x_max, y_max)` format.
//
// coco boxes have width/height turned into the max corner first; coco and
// pascal_voc are then divided by the frame. yolo boxes are already
// normalized, so only the center/size is turned into corners.
//
// Arguments:
//   - boxes: Boxes in the source format. Empty input returns an empty result
//     without looking at rows or cols.
//   - source: FormatCOCO, FormatPascalVOC or FormatYOLO.
//   - rows: Image height, > 0.
//   - cols: Image width, > 0.
//   - checkValidity: If true, yolo input must lie in (0, 1] and the result
//     must pass Check.
//
// Returns:
//   - A new collection in the internal format with labels carried over.
//   - *UnknownFormatError, *RangeError, *OrderError or ErrInvalidFrame.
//
// @example
// internal, err := ConvertToInternal(boxes, FormatCOCO, 480, 640, true)
func ConvertToInternal(boxes *Boxes, source Format, rows, cols int, checkValidity bool) (*Boxes, error) {
	if boxes.Len() == 0 {
		return &Boxes{}, nil
	}
	if !source.IsExternal() {
		return nil, &UnknownFormatError{Format: string(source), Role: "source", Supported: externalFormats}
	}
	if err := checkFrame(rows, cols); err != nil {
		return nil, err
	}

	var out *Boxes
	switch source {
	case FormatYOLO:
		if checkValidity {
			if err := checkYOLO(boxes); err != nil {
				return nil, err
			}
		}
		out = boxes.MapRows(func(c [4]float64) [4]float64 {
			xMin := c[0] - c[2]/2
			yMin := c[1] - c[3]/2
			return [4]float64{xMin, yMin, xMin + c[2], yMin + c[3]}
		})
	case FormatCOCO:
		corners := boxes.MapRows(func(c [4]float64) [4]float64 {
			return [4]float64{c[0], c[1], c[0] + c[2], c[1] + c[3]}
		})
		out = Normalize(corners, float64(rows), float64(cols))
	default:
		out = Normalize(boxes, float64(rows), float64(cols))
	}

	if checkValidity {
		if err := Check(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ConvertFromInternal converts internal boxes into target.
//
// Arguments:
//   - boxes: Boxes in the internal format. Empty input returns an empty result.
//   - target: FormatCOCO, FormatPascalVOC or FormatYOLO.
//   - rows: Image height, > 0.
//   - cols: Image width, > 0.
//   - checkValidity: If true, the input must pass Check before conversion.
//
// Returns:
//   - A new collection in the target format with labels carried over.
//   - *UnknownFormatError, *RangeError, *OrderError or ErrInvalidFrame.
//
// @example
// yolo, err := ConvertFromInternal(internal, FormatYOLO, 480, 640, false)
func ConvertFromInternal(boxes *Boxes, target Format, rows, cols int, checkValidity bool) (*Boxes, error) {
	if boxes.Len() == 0 {
		return &Boxes{}, nil
	}
	if !target.IsExternal() {
		return nil, &UnknownFormatError{Format: string(target), Role: "target", Supported: externalFormats}
	}
	if err := checkFrame(rows, cols); err != nil {
		return nil, err
	}
	if checkValidity {
		if err := Check(boxes); err != nil {
			return nil, err
		}
	}

	switch target {
	case FormatYOLO:
		return boxes.MapRows(func(c [4]float64) [4]float64 {
			w := c[2] - c[0]
			h := c[3] - c[1]
			return [4]float64{c[0] + w/2, c[1] + h/2, w, h}
		}), nil
	case FormatCOCO:
		return Denormalize(boxes, float64(rows), float64(cols)).MapRows(func(c [4]float64) [4]float64 {
			return [4]float64{c[0], c[1], c[2] - c[0], c[3] - c[1]}
		}), nil
	default:
		return Denormalize(boxes, float64(rows), float64(cols)), nil
	}
}
