package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func solidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFitPassThrough(t *testing.T) {
	img := solidImage(300, 200, color.White)

	assert.Equal(t, img, Fit(img, 0), "non-positive max disables resizing")
	assert.Equal(t, img, Fit(img, 300), "image already within bounds")
}

func TestFitDownscalesLongerDimension(t *testing.T) {
	img := solidImage(800, 400, color.White)

	fitted := Fit(img, 200)
	assert.Equal(t, 200, fitted.Bounds().Dx())
	assert.Equal(t, 100, fitted.Bounds().Dy())
}

func TestDrawAltersBottomRightRegion(t *testing.T) {
	base := solidImage(400, 300, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	r := New(basicfont.Face7x13, color.White, color.Black)

	out := r.Draw(base, "Date and Time: 2022:01:01 10:00:00\nLocation: Testville")
	require.Equal(t, base.Bounds(), out.Bounds())

	// White glyph pixels must appear in the lower half of the image.
	touched := false
	for y := 150; y < 300 && !touched; y++ {
		for x := 0; x < 400; x++ {
			if out.NRGBAAt(x, y) == (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
				touched = true
				break
			}
		}
	}
	assert.True(t, touched, "expected caption pixels in the lower image half")

	// The source image is never mutated.
	assert.Equal(t, color.NRGBA{R: 10, G: 10, B: 10, A: 255}, base.NRGBAAt(380, 290))
}

func TestDrawEmptyCaptionLeavesImageUntouched(t *testing.T) {
	base := solidImage(100, 100, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	r := New(basicfont.Face7x13, color.White, color.Black)

	out := r.Draw(base, "")
	assert.Equal(t, base.Pix, out.Pix)
}

func TestIsJPEG(t *testing.T) {
	assert.True(t, isJPEG("a.jpg"))
	assert.True(t, isJPEG("b.JPEG"))
	assert.False(t, isJPEG("c.png"))
	assert.False(t, isJPEG("d"))
}
