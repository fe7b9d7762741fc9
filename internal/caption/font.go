package caption

import (
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/johananj/geocaption/internal/logger"
)

// FaceMetrics measures text with a font.Face.
type FaceMetrics struct {
	Face font.Face
}

// Measure returns the advance width of text and the face line height.
func (fm FaceMetrics) Measure(text string) (int, int) {
	w := font.MeasureString(fm.Face, text).Ceil()
	m := fm.Face.Metrics()
	return w, m.Ascent.Ceil() + m.Descent.Ceil()
}

// LoadFace opens the TrueType font at path at the given point size. A
// missing or unparseable font file falls back to the built-in fixed face
// instead of aborting.
func LoadFace(path string, size float64) font.Face {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("font not found at %s: %v, using default font", path, err)
			return basicfont.Face7x13
		}
		ft, err := truetype.Parse(data)
		if err != nil {
			logger.Warn("could not parse font %s: %v, using default font", path, err)
			return basicfont.Face7x13
		}
		return truetype.NewFace(ft, &truetype.Options{Size: size, DPI: 72})
	}
	return basicfont.Face7x13
}
