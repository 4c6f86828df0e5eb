package swiftdaddy

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"
)

func encodeTestImage(t *testing.T, w, h int, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	var err error
	if format == "png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestResizeImage(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		ext          string
		changed      bool
		wantW, wantH int
	}{
		{"wide png", 400, 100, ".png", true, 200, 50},
		{"wide jpeg", 400, 200, ".jpg", true, 200, 100},
		{"narrow png", 150, 100, ".png", false, 150, 100},
		{"exact width", 200, 10, ".png", false, 200, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := "png"
			if tt.ext == ".jpg" {
				format = "jpeg"
			}
			out, changed, err := resizeImage(encodeTestImage(t, tt.w, tt.h, format), tt.ext, 200)
			if err != nil {
				t.Fatalf("resizeImage: %v", err)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			cfg, gotFormat, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
			if gotFormat != format {
				t.Errorf("format = %q, want %q", gotFormat, format)
			}
		})
	}
}

func TestResizeImageInvalid(t *testing.T) {
	if _, _, err := resizeImage([]byte("not an image"), ".png", 200); err == nil {
		t.Error("resizeImage should fail on invalid data")
	}
}

func TestOptimizeImages(t *testing.T) {
	pc := testContext(t)
	if err := pc.WriteFile("images/big.png", encodeTestImage(t, 800, 400, "png")); err != nil {
		t.Fatal(err)
	}
	if err := pc.WriteFile("styles.css", []byte("body {}")); err != nil {
		t.Fatal(err)
	}
	if err := OptimizeImages(100).Run(context.Background(), pc); err != nil {
		t.Fatalf("OptimizeImages: %v", err)
	}
	data, err := os.ReadFile(pc.OutputPath("images/big.png"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("size = %dx%d, want 100x50", cfg.Width, cfg.Height)
	}
}
