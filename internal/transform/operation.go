package transform

import "strings"

// Operation is the closed set of filters the service applies. The wire
// format is a free string, so unknown values map to OpPassthrough rather
// than failing the request; the dispatch over Operation stays exhaustive.
type Operation int

const (
	// OpGrayscale converts the image to single-channel luminance.
	// This is the default, and the only operation for storage-triggered runs.
	OpGrayscale Operation = iota
	// OpWatercolor applies an edge/contour-extraction style filter.
	OpWatercolor
	// OpSketch applies a strong edge-enhancement filter.
	OpSketch
	// OpResize scales to an explicit width × height.
	OpResize
	// OpPassthrough re-encodes the image without applying a filter.
	// Chosen for operation strings the service does not recognize.
	OpPassthrough
)

// ParseOperation maps a wire operation string to an Operation. The empty
// string defaults to grayscale; anything unrecognized is a passthrough.
func ParseOperation(s string) Operation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "grayscale":
		return OpGrayscale
	case "watercolor":
		return OpWatercolor
	case "sketch":
		return OpSketch
	case "resize":
		return OpResize
	default:
		return OpPassthrough
	}
}

func (op Operation) String() string {
	switch op {
	case OpGrayscale:
		return "grayscale"
	case OpWatercolor:
		return "watercolor"
	case OpSketch:
		return "sketch"
	case OpResize:
		return "resize"
	case OpPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}
