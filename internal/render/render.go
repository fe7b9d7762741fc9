// Package render is the raster collaborator: image open/resize/save and
// shadowed caption drawing.
package render

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/johananj/geocaption/internal/caption"
)

// Renderer draws captions onto images with a fixed face and color pair.
type Renderer struct {
	face   font.Face
	fg     color.Color
	shadow color.Color
}

// New creates a Renderer.
func New(face font.Face, fg, shadow color.Color) *Renderer {
	return &Renderer{face: face, fg: fg, shadow: shadow}
}

// Metrics returns the text measurer backed by the renderer's face.
func (r *Renderer) Metrics() caption.Metrics {
	return caption.FaceMetrics{Face: r.face}
}

// Open decodes the image at path.
func Open(path string) (image.Image, error) {
	return imaging.Open(path)
}

// Fit downscales img, preserving aspect ratio, so that its longer dimension
// does not exceed max. Smaller images pass through untouched.
func Fit(img image.Image, max int) image.Image {
	if max <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= max && b.Dy() <= max {
		return img
	}
	return imaging.Fit(img, max, max, imaging.Lanczos)
}

// Draw lays out text against img's dimensions and burns it into the
// bottom-right corner, drawing each line's shadow before its foreground.
func (r *Renderer) Draw(img image.Image, text string) *image.NRGBA {
	dst := imaging.Clone(img)

	block := caption.Layout(text, dst.Bounds().Dx(), dst.Bounds().Dy(), r.Metrics())
	ascent := r.face.Metrics().Ascent.Ceil()

	y := block.Y
	for _, line := range block.Lines {
		r.drawString(dst, line.Text, block.X+caption.ShadowOffset, y+ascent+caption.ShadowOffset, r.shadow)
		r.drawString(dst, line.Text, block.X, y+ascent, r.fg)
		y += line.Height + caption.Padding
	}
	return dst
}

func (r *Renderer) drawString(dst *image.NRGBA, text string, x, y int, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func isJPEG(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}
