package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestProcessFitsLargeImageAndCutsThumbnail(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 100, MaxHeight: 100, ThumbWidth: 30, ThumbHeight: 40, Quality: 80})

	out, err := p.Process(encodePNG(t, 400, 200))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Display.Width != 100 || out.Display.Height != 50 {
		t.Fatalf("expected 100x50 display, got %dx%d", out.Display.Width, out.Display.Height)
	}
	if out.Thumbnail.Width != 30 || out.Thumbnail.Height != 40 {
		t.Fatalf("expected 30x40 thumbnail, got %dx%d", out.Thumbnail.Width, out.Thumbnail.Height)
	}
	if out.Display.ContentType != "image/png" {
		t.Fatalf("expected png to stay png, got %s", out.Display.ContentType)
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	if _, err := NewProcessor(DefaultConfig()).Process([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestKeys(t *testing.T) {
	display, thumb := Keys("p1", "ph1", "image/jpeg")
	if display != "portfolio/p1/ph1.jpg" || thumb != "portfolio/p1/ph1_thumb.jpg" {
		t.Fatalf("unexpected keys %q %q", display, thumb)
	}
}
