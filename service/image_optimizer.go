package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage is returned when uploaded bytes cannot be decoded as an image
var ErrInvalidImage = errors.New("uploaded file is not a valid image")

// Image size presets
const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"
	SizeFull   = "full"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	qualityFull   = 88
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
	maxSizeFull   = 2400
)

// OptimizeImage converts an image to JPEG and shrinks it to fit the preset.
// imageData: raw image bytes (PNG or JPEG)
// size: "thumb", "medium" or "full"
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim, quality int
	switch size {
	case SizeThumb:
		maxDim, quality = maxSizeThumb, qualityThumb
	case SizeMedium:
		maxDim, quality = maxSizeMedium, qualityMedium
	case SizeFull:
		maxDim, quality = maxSizeFull, qualityFull
	default:
		maxDim, quality = maxSizeMedium, qualityMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var resized image.Image = img
	if width > maxDim || height > maxDim {
		// imaging.Fit keeps the aspect ratio
		resized = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
