// Package avatar validates and normalizes uploaded profile images.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Upload limits. Files over MaxFileSizeBytes or with a side under
// MinDimension are rejected; sides over MaxDimension trigger a resize.
const (
	MaxFileSizeBytes = 2 << 20 // 2 MiB
	MinDimension     = 100
	MaxDimension     = 500
	JPEGQuality      = 85
)

// Validation errors surfaced to the owning form as field-level errors.
var (
	ErrFileTooLarge    = errors.New("avatar: file too large")
	ErrUnsupportedType = errors.New("avatar: unsupported file type")
	ErrTooSmall        = errors.New("avatar: image dimensions too small")
	ErrDecodeFailed    = errors.New("avatar: could not decode image")
)

// allowed upload extensions mapped to the format they are re-encoded in.
// JPG is normalized to JPEG.
var formats = map[string]imaging.Format{
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".png":  imaging.PNG,
	".gif":  imaging.GIF,
}

// Processed is a fully validated avatar ready to persist.
type Processed struct {
	Data []byte
	Ext  string // normalized lowercase extension, including the dot
	W, H int
}

// Process validates the uploaded file and, when a side exceeds MaxDimension,
// resizes it with Lanczos resampling so the longer side becomes exactly
// MaxDimension, re-encoded in the original format. Images already within
// bounds pass through byte-identical. Nothing is written anywhere; the
// caller persists the returned bytes only on success.
func Process(filename string, data []byte) (*Processed, error) {
	if len(data) > MaxFileSizeBytes {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := formats[ext]
	if !ok {
		return nil, ErrUnsupportedType
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < MinDimension || h < MinDimension {
		return nil, ErrTooSmall
	}

	if w <= MaxDimension && h <= MaxDimension {
		return &Processed{Data: data, Ext: ext, W: w, H: h}, nil
	}

	resized := imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("avatar: re-encode: %w", err)
	}

	rb := resized.Bounds()
	return &Processed{Data: buf.Bytes(), Ext: ext, W: rb.Dx(), H: rb.Dy()}, nil
}
