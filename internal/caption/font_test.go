package caption

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"
)

func TestLoadFaceFallsBackWithoutPath(t *testing.T) {
	assert.Equal(t, basicfont.Face7x13, LoadFace("", 40))
}

func TestLoadFaceFallsBackOnMissingFile(t *testing.T) {
	assert.Equal(t, basicfont.Face7x13, LoadFace(filepath.Join(t.TempDir(), "nope.ttf"), 40))
}

func TestLoadFaceFallsBackOnGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	assert.NoError(t, os.WriteFile(path, []byte("not a font"), 0644))

	assert.Equal(t, basicfont.Face7x13, LoadFace(path, 40))
}

func TestFaceMetricsMeasure(t *testing.T) {
	fm := FaceMetrics{Face: basicfont.Face7x13}

	w, h := fm.Measure("hello")
	assert.Equal(t, 5*7, w, "fixed 7px advance per glyph")
	assert.Equal(t, 13, h)

	wider, _ := fm.Measure("hello world")
	assert.Greater(t, wider, w)
}
