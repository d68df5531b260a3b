package history

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"
)

func TestExtractMeta_NotAnImage(t *testing.T) {
	meta := ExtractMeta([]byte("not an image at all"))
	if meta.CameraMake != "" || meta.CameraModel != "" || !meta.TakenAt.IsZero() {
		t.Errorf("expected zero meta for garbage input, got %+v", meta)
	}
}

func TestExtractMeta_JPEGWithoutExif(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Synthetic JPEGs carry no EXIF block; extraction is best effort and
	// must come back empty rather than fail.
	meta := ExtractMeta(buf.Bytes())
	if meta.CameraMake != "" || meta.CameraModel != "" || !meta.TakenAt.IsZero() {
		t.Errorf("expected zero meta for EXIF-less JPEG, got %+v", meta)
	}
}
