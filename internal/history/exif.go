package history

import (
	"bytes"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
)

// Meta is the best-effort EXIF slice captured on a history record.
type Meta struct {
	CameraMake  string
	CameraModel string
	TakenAt     time.Time
}

// ExtractMeta pulls camera make/model and the capture timestamp from the
// source image's EXIF block. Images without metadata (or formats imagemeta
// cannot parse) yield a zero Meta; this never fails a transform.
func ExtractMeta(data []byte) Meta {
	exifData, err := imagemeta.Decode(bytes.NewReader(data))
	if err != nil {
		return Meta{}
	}

	m := Meta{
		CameraMake:  strings.TrimSpace(exifData.Make),
		CameraModel: strings.TrimSpace(exifData.Model),
	}

	// Timestamp fallback chain: DateTimeOriginal > CreateDate > ModifyDate.
	switch {
	case !exifData.DateTimeOriginal().IsZero():
		m.TakenAt = exifData.DateTimeOriginal()
	case !exifData.CreateDate().IsZero():
		m.TakenAt = exifData.CreateDate()
	case !exifData.ModifyDate().IsZero():
		m.TakenAt = exifData.ModifyDate()
	}

	return m
}
