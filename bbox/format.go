package bbox

// Format names a box coordinate encoding.
type Format string

const (
	// FormatCOCO is `x_min, y_min, width, height` in pixels.
	FormatCOCO Format = "coco"
	// FormatPascalVOC is `x_min, y_min, x_max, y_max` in pixels.
	FormatPascalVOC Format = "pascal_voc"
	// FormatYOLO is `x_center, y_center, width, height` normalized to [0, 1].
	FormatYOLO Format = "yolo"
	// FormatAlbumentations is the internal format: `x_min, y_min, x_max, y_max`
	// normalized to [0, 1].
	FormatAlbumentations Format = "albumentations"
)

// externalFormats are the formats accepted by the converters.
var externalFormats = []Format{FormatCOCO, FormatPascalVOC, FormatYOLO}

// Formats returns every known format, the internal one last.
func Formats() []Format {
	return []Format{FormatCOCO, FormatPascalVOC, FormatYOLO, FormatAlbumentations}
}

// ParseFormat resolves a format name.
//
// Arguments:
//   - name: One of "coco", "pascal_voc", "yolo" or "albumentations".
//
// Returns:
//   - The format, or an *UnknownFormatError.
//
// @example
// f, err := ParseFormat("pascal_voc")
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", &UnknownFormatError{Format: name, Supported: Formats()}
}

// IsExternal reports whether f is accepted by ConvertToInternal and ConvertFromInternal.
func (f Format) IsExternal() bool {
	for _, e := range externalFormats {
		if f == e {
			return true
		}
	}
	return false
}

// axisNames returns the coordinate names of f by column index.
func (f Format) axisNames() [4]string {
	switch f {
	case FormatCOCO:
		return [4]string{"x_min", "y_min", "width", "height"}
	case FormatYOLO:
		return [4]string{"x_center", "y_center", "width", "height"}
	default:
		return [4]string{"x_min", "y_min", "x_max", "y_max"}
	}
}
