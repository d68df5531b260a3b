package transform

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// makeJPEG encodes a solid-color test image with a contrasting stripe so
// grayscale and edge filters have something to chew on.
func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{R: 200, G: 30, B: 30, A: 255}
			if x > width/2 {
				c = color.RGBA{R: 30, G: 30, B: 200, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return img
}

func TestApply_ResizeExactDimensions(t *testing.T) {
	src := makeJPEG(t, 120, 80)

	out, err := Apply(src, Request{
		Bucket:    "b",
		Key:       "uploads/in.jpg",
		Operation: OpResize,
		Width:     50,
		Height:    75,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	bounds := decodeJPEG(t, out).Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 75 {
		t.Errorf("expected 50x75, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestApply_ResizeDefaultDimensions(t *testing.T) {
	src := makeJPEG(t, 120, 80)

	out, err := Apply(src, Request{Bucket: "b", Key: "in.jpg", Operation: OpResize})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	bounds := decodeJPEG(t, out).Bounds()
	if bounds.Dx() != DefaultDimension || bounds.Dy() != DefaultDimension {
		t.Errorf("expected %dx%d, got %dx%d", DefaultDimension, DefaultDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestApply_GrayscaleLuminance(t *testing.T) {
	src := makeJPEG(t, 60, 40)

	out, err := Apply(src, Request{Bucket: "b", Key: "in.jpg", Operation: OpGrayscale})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	img := decodeJPEG(t, out)
	// Sample away from the stripe boundary; JPEG rounding allows a couple
	// of counts of channel drift on a gray image.
	for _, pt := range []image.Point{{5, 5}, {55, 35}, {10, 30}} {
		r, g, b, _ := img.At(pt.X, pt.Y).RGBA()
		r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
		if abs(r8-g8) > 3 || abs(g8-b8) > 3 {
			t.Errorf("pixel %v not gray: r=%d g=%d b=%d", pt, r8, g8, b8)
		}
	}
}

func TestApply_WatercolorAndSketchKeepDimensions(t *testing.T) {
	src := makeJPEG(t, 64, 48)

	for _, op := range []Operation{OpWatercolor, OpSketch} {
		out, err := Apply(src, Request{Bucket: "b", Key: "in.jpg", Operation: op})
		if err != nil {
			t.Fatalf("Apply %s: %v", op, err)
		}
		bounds := decodeJPEG(t, out).Bounds()
		if bounds.Dx() != 64 || bounds.Dy() != 48 {
			t.Errorf("%s: expected 64x48, got %dx%d", op, bounds.Dx(), bounds.Dy())
		}
	}
}

func TestApply_PassthroughKeepsImage(t *testing.T) {
	src := makeJPEG(t, 32, 32)

	out, err := Apply(src, Request{Bucket: "b", Key: "in.jpg", Operation: OpPassthrough})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	bounds := decodeJPEG(t, out).Bounds()
	if bounds.Dx() != 32 || bounds.Dy() != 32 {
		t.Errorf("expected 32x32, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestApply_InvalidImage(t *testing.T) {
	_, err := Apply([]byte("definitely not an image"), Request{
		Bucket: "b", Key: "in.jpg", Operation: OpGrayscale,
	})
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
	if !errors.Is(err, ErrProcessing) {
		t.Errorf("expected ErrProcessing, got %v", err)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
