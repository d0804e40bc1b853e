package genstudio

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// AspectRatio is an output aspect ratio accepted by the image and video models.
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectWide      AspectRatio = "16:9"
	AspectTall      AspectRatio = "9:16"
	AspectLandscape AspectRatio = "4:3"
)

// Valid returns true for the supported ratios.
func (r AspectRatio) Valid() bool {
	switch r {
	case AspectSquare, AspectWide, AspectTall, AspectLandscape:
		return true
	}
	return false
}

// String returns the ratio string.
func (r AspectRatio) String() string { return string(r) }

// Image is raw image bytes with their MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURL returns the image as a base64 data URL.
func (img Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// Base64 returns the base64 encoding of the image bytes.
func (img Image) Base64() string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

// ParseDataURL decodes a "data:<mime>;base64,<payload>" URL.
func ParseDataURL(s string) (Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Image{}, &ImageError{Op: "decode", Source: "data-url", Err: fmt.Errorf("missing data: prefix")}
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, &ImageError{Op: "decode", Source: "data-url", Err: fmt.Errorf("missing payload")}
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return Image{}, &ImageError{Op: "decode", Source: "data-url", Err: fmt.Errorf("payload is not base64")}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, &ImageError{Op: "decode", Source: "data-url", Err: err}
	}
	return Image{Data: data, MIMEType: mime}, nil
}

// ImageError represents an error while decoding or loading an input image.
type ImageError struct {
	Op     string // "decode" or "read"
	Source string // file path, "base64" or "data-url"
	Err    error
}

// Error returns a formatted error message describing the image failure.
func (e *ImageError) Error() string {
	return fmt.Sprintf("image %s error for %s: %v", e.Op, e.Source, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ImageError) Unwrap() error {
	return e.Err
}
