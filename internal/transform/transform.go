// Package transform applies a single image filter per request and re-encodes
// the result as JPEG. Decoding, filtering, and encoding all run in memory on
// the disintegration/imaging pipeline.
package transform

import (
	"bytes"
	"fmt"
	"image"

	// Register the decoders for the input formats we accept. The output
	// format is always JPEG, but inputs may be any of these.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// contourKernel extracts edges after a blur pass, giving the soft outline
// look of the watercolor filter. Abs is applied so negative responses keep
// their magnitude instead of clamping to black.
var contourKernel = [9]float64{
	-1, -1, -1,
	-1, 8, -1,
	-1, -1, -1,
}

// edgeEnhanceKernel is a strong edge-enhancement convolution used by the
// sketch filter on top of a luminance conversion.
var edgeEnhanceKernel = [9]float64{
	-1, -1, -1,
	-1, 9, -1,
	-1, -1, -1,
}

// Apply decodes the image, applies the operation selected by the request,
// and re-encodes the result as JPEG at fixed quality. Decode failures are
// reported as ErrProcessing.
func Apply(data []byte, req Request) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrProcessing, err)
	}

	var out image.Image
	switch req.Operation {
	case OpGrayscale:
		out = imaging.Grayscale(img)
	case OpWatercolor:
		out = imaging.Convolve3x3(imaging.Blur(img, 2.0), contourKernel, &imaging.ConvolveOptions{Abs: true})
	case OpSketch:
		out = imaging.Convolve3x3(imaging.Grayscale(img), edgeEnhanceKernel, nil)
	case OpResize:
		width, height := req.Width, req.Height
		if width <= 0 {
			width = DefaultDimension
		}
		if height <= 0 {
			height = DefaultDimension
		}
		out = imaging.Resize(img, width, height, imaging.Lanczos)
	case OpPassthrough:
		log.Warn().Str("key", req.Key).Msg("Unrecognized operation — image passes through unmodified")
		out = img
	default:
		return nil, fmt.Errorf("%w: unhandled operation %d", ErrProcessing, req.Operation)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: encode JPEG: %v", ErrProcessing, err)
	}

	log.Debug().
		Str("operation", req.Operation.String()).
		Int("bytesIn", len(data)).
		Int("bytesOut", buf.Len()).
		Msg("Transform applied")

	return buf.Bytes(), nil
}
