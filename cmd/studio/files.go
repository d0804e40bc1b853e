package main

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spetersoncode/genstudio"
)

// maxInputSide bounds the pixel size of each side of an uploaded image.
const maxInputSide = 2048

// readImage loads an image file, or decodes a data URL.
func readImage(path string) (genstudio.Image, error) {
	if strings.HasPrefix(path, "data:") {
		return genstudio.ParseDataURL(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return genstudio.Image{}, &genstudio.ImageError{Op: "read", Source: path, Err: err}
	}
	return fitImage(genstudio.Image{Data: data, MIMEType: http.DetectContentType(data)}), nil
}

// fitImage shrinks JPEG and PNG inputs larger than maxInputSide, applying
// EXIF orientation. Anything it cannot decode is passed through untouched.
func fitImage(img genstudio.Image) genstudio.Image {
	format := imaging.PNG
	switch img.MIMEType {
	case "image/png":
	case "image/jpeg":
		format = imaging.JPEG
	default:
		return img
	}

	decoded, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		return img
	}
	b := decoded.Bounds()
	if b.Dx() <= maxInputSide && b.Dy() <= maxInputSide {
		return img
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(decoded, maxInputSide, maxInputSide, imaging.Lanczos), format); err != nil {
		return img
	}
	return genstudio.Image{Data: buf.Bytes(), MIMEType: img.MIMEType}
}

func readOptionalImage(path string) (*genstudio.Image, error) {
	if path == "" {
		return nil, nil
	}
	img, err := readImage(path)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	default:
		return ".png"
	}
}

// writeImages writes images as out.ext, or out-1.ext, out-2.ext... for more
// than one, and returns the written paths.
func writeImages(out string, images []genstudio.Image) ([]string, error) {
	base := strings.TrimSuffix(out, filepath.Ext(out))
	paths := make([]string, 0, len(images))
	for i, img := range images {
		path := base + extension(img.MIMEType)
		if len(images) > 1 {
			path = fmt.Sprintf("%s-%d%s", base, i+1, extension(img.MIMEType))
		}
		if err := os.WriteFile(path, img.Data, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
