// internal/exif/exif.go
package exif

import (
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/johananj/geocaption/internal/gps"
)

// Tag names probed by the extractor, re-exported so callers don't import
// goexif directly.
var (
	DateTimeOriginal  = exif.DateTimeOriginal
	DateTime          = exif.DateTime
	DateTimeDigitized = exif.DateTimeDigitized
	GPSLatitude       = exif.GPSLatitude
	GPSLatitudeRef    = exif.GPSLatitudeRef
	GPSLongitude      = exif.GPSLongitude
	GPSLongitudeRef   = exif.GPSLongitudeRef
)

// FieldName identifies an EXIF tag.
type FieldName = exif.FieldName

// File is a decoded EXIF block for one image.
type File struct {
	x *exif.Exif
}

// Load reads and decodes the EXIF block of the image at path. It returns an
// error both for unreadable files and for images without EXIF data; callers
// treat the latter as missing metadata, not a failure.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}
	return &File{x: x}, nil
}

// StringTag returns the tag decoded as text.
func (f *File) StringTag(name FieldName) (string, bool) {
	tag, err := f.x.Get(name)
	if err != nil {
		return "", false
	}
	s, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	return s, true
}

// RationalTag returns all rational values of the tag.
func (f *File) RationalTag(name FieldName) ([]gps.Rational, bool) {
	tag, err := f.x.Get(name)
	if err != nil {
		return nil, false
	}

	rats := make([]gps.Rational, 0, tag.Count)
	for i := 0; i < int(tag.Count); i++ {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return nil, false
		}
		rats = append(rats, gps.Rational{Num: num, Den: den})
	}
	return rats, true
}
