// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resize

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	_ "image/gif"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/cloudchore/cloudchore/internal/log"
)

// ErrInvalidImage indicates the payload could not be decoded as an image.
var ErrInvalidImage = errors.New("invalid image input")

// jpegQuality matches the quality the resized artifacts are encoded with.
const jpegQuality = 85

// Options controls one resize operation. Width/Height of zero mean
// "unspecified"; DefaultWidth/DefaultHeight bound the fallback fit.
type Options struct {
	Width         int
	Height        int
	DefaultWidth  int
	DefaultHeight int
}

// Result is the resized artifact.
type Result struct {
	Data        []byte
	ContentType string
	Format      string
	Width       int
	Height      int
}

// Resize decodes data, scales it per the dimension policy, and re-encodes it.
//
// Dimension policy:
//   - both Width and Height set: exact dimensions (stretch, aspect ratio is
//     the caller's problem).
//   - only Width: height scales by the same ratio.
//   - only Height: width scales by the same ratio.
//   - neither: fit within DefaultWidth x DefaultHeight preserving aspect
//     ratio (min ratio, never upscaled beyond the defaults box).
//
// PNG input stays PNG; all other formats are re-encoded as JPEG. Images with
// an alpha channel are flattened onto white before JPEG encoding.
func Resize(data []byte, opt Options) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	if opt.Width < 0 || opt.Height < 0 {
		return Result{}, fmt.Errorf("%w: negative dimensions", ErrInvalidImage)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: decode: %v", ErrInvalidImage, err)
	}

	bounds := src.Bounds()
	w, h := targetSize(bounds.Dx(), bounds.Dy(), opt)
	log.Debugf("resize: format=%s src=%dx%d dst=%dx%d", format, bounds.Dx(), bounds.Dy(), w, h)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	out, contentType, err := encode(dst, format)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:        out,
		ContentType: contentType,
		Format:      format,
		Width:       w,
		Height:      h,
	}, nil
}

// targetSize applies the dimension policy to the source size.
func targetSize(srcW, srcH int, opt Options) (int, int) {
	switch {
	case opt.Width > 0 && opt.Height > 0:
		return opt.Width, opt.Height
	case opt.Width > 0:
		ratio := float64(opt.Width) / float64(srcW)
		return opt.Width, max(1, int(float64(srcH)*ratio))
	case opt.Height > 0:
		ratio := float64(opt.Height) / float64(srcH)
		return max(1, int(float64(srcW)*ratio)), opt.Height
	default:
		ratio := min(
			float64(opt.DefaultWidth)/float64(srcW),
			float64(opt.DefaultHeight)/float64(srcH),
		)
		return max(1, int(float64(srcW)*ratio)), max(1, int(float64(srcH)*ratio))
	}
}

// encode serializes the scaled image. PNG keeps its format to preserve
// transparency; everything else becomes JPEG.
func encode(img *image.RGBA, format string) ([]byte, string, error) {
	var buf bytes.Buffer

	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}

	flat := flatten(img)
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// flatten composites img over a white background. JPEG has no alpha channel,
// so transparent regions would otherwise come out black.
func flatten(img *image.RGBA) *image.RGBA {
	if img.Opaque() {
		return img
	}
	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)
	return flat
}
