package covers

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
	_ "image/gif"
)

// downscale shrinks image data to fit within maxSize pixels, keeping
// the aspect ratio. Images already small enough pass through.
func downscale(imgData []byte, maxSize, quality int) ([]byte, error) {
	if maxSize <= 0 {
		return imgData, nil
	}

	img, format, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return imgData, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxSize && height <= maxSize {
		return imgData, nil
	}

	if width > height {
		height = (height * maxSize) / width
		width = maxSize
	} else {
		width = (width * maxSize) / height
		height = maxSize
	}
	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	if quality <= 0 {
		quality = 85
	}
	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, resized)
	default:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return imgData, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}
