package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	// Register decoders for uploads that are re-encoded as JPEG.
	_ "image/gif"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// MaxFileSize in bytes (10MB)
const MaxFileSize int64 = 10 * 1024 * 1024

// Variant is one encoded rendition of an uploaded photo.
type Variant struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Processed holds the display image and its thumbnail.
type Processed struct {
	Display   Variant
	Thumbnail Variant
}

// Config for image processing
type Config struct {
	MaxWidth    int // longest allowed display width
	MaxHeight   int // longest allowed display height
	ThumbWidth  int
	ThumbHeight int
	Quality     int // JPEG quality 1-100
}

// DefaultConfig matches the portfolio grid (3:4 thumbnails).
func DefaultConfig() Config {
	return Config{
		MaxWidth:    2000,
		MaxHeight:   2000,
		ThumbWidth:  300,
		ThumbHeight: 400,
		Quality:     85,
	}
}

// Processor resizes uploads and cuts thumbnails.
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes data, fits it within the display bounds and produces a
// center-cropped thumbnail. PNG stays PNG; everything else becomes JPEG.
func (p *Processor) Process(data []byte) (*Processed, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	display := img
	b := img.Bounds()
	if b.Dx() > p.config.MaxWidth || b.Dy() > p.config.MaxHeight {
		display = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
	}
	thumb := imaging.Fill(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Center, imaging.Lanczos)

	displayVariant, err := p.encode(display, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode display image: %w", err)
	}
	thumbVariant, err := p.encode(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &Processed{Display: *displayVariant, Thumbnail: *thumbVariant}, nil
}

func (p *Processor) encode(img image.Image, format string) (*Variant, error) {
	var buf bytes.Buffer
	contentType := "image/jpeg"

	if format == "png" {
		contentType = "image/png"
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	} else if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
		return nil, err
	}

	return &Variant{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}, nil
}

// Extension returns the file extension for an encoded content type.
func Extension(contentType string) string {
	if contentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}

// Keys builds the object keys for a photo and its thumbnail.
func Keys(photographerID, photoID, contentType string) (display, thumb string) {
	ext := Extension(contentType)
	display = fmt.Sprintf("portfolio/%s/%s%s", photographerID, photoID, ext)
	thumb = fmt.Sprintf("portfolio/%s/%s_thumb%s", photographerID, photoID, ext)
	return
}
