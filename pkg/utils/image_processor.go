package utils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"gamestore-admin/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// MaxImageWidth is the widest product image kept; wider uploads are scaled down.
const MaxImageWidth = 2000

// ProcessImage resizes the image to MaxImageWidth and converts it to WebP,
// falling back to JPEG when WebP encoding fails.
func ProcessImage(ctx context.Context, r io.Reader, filename string) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	log := logger.WithContext(ctx)
	log.Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	if img.Bounds().Dx() > MaxImageWidth {
		img = imaging.Resize(img, MaxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		log.Warn().Err(err).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}

// IsImage verifies simple content type
func IsImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
