package swiftdaddy

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path"
	"strings"

	"golang.org/x/image/draw"
)

const (
	defaultMaxImageWidth = 1600
	jpegQuality          = 80
)

// OptimizeImages downsizes JPEG and PNG files in the output that are wider
// than maxWidth pixels, keeping their aspect ratio and format. A maxWidth
// of zero uses 1600.
func OptimizeImages(maxWidth int) Step {
	if maxWidth <= 0 {
		maxWidth = defaultMaxImageWidth
	}
	return Step{
		Name: "Optimize images",
		Kind: KindIO,
		Run: func(ctx context.Context, pc *Context) error {
			resized := 0
			for _, rel := range pc.Outputs() {
				ext := strings.ToLower(path.Ext(rel))
				if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
					continue
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := os.ReadFile(pc.OutputPath(rel))
				if err != nil {
					return err
				}
				out, changed, err := resizeImage(data, ext, maxWidth)
				if err != nil {
					return fmt.Errorf("swiftdaddy: %s: %w", rel, err)
				}
				if !changed {
					continue
				}
				if err := pc.WriteFile(rel, out); err != nil {
					return err
				}
				resized++
			}
			pc.Logger().Infof("resized %d images wider than %dpx", resized, maxWidth)
			return nil
		},
	}
}

// resizeImage decodes data and, if wider than maxWidth, scales it down and
// re-encodes it in the format given by ext.
func resizeImage(data []byte, ext string, maxWidth int) ([]byte, bool, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= maxWidth {
		return data, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newH := h * maxWidth / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}
