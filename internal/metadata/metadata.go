// Package metadata extracts the caption record for one image from its EXIF
// tags.
package metadata

import (
	"fmt"
	"strings"

	"github.com/johananj/geocaption/internal/exif"
	"github.com/johananj/geocaption/internal/gps"
	"github.com/johananj/geocaption/internal/logger"
)

// UnknownDate is the timestamp sentinel used when no date tag is present.
const UnknownDate = "Unknown Date"

// TagSource is the slice of an EXIF block the extractor needs. *exif.File
// implements it; tests use a map-backed double.
type TagSource interface {
	StringTag(name exif.FieldName) (string, bool)
	RationalTag(name exif.FieldName) ([]gps.Rational, bool)
}

// Record holds the caption inputs for one image. Coordinate is nil when the
// image carries no usable GPS data; Place is filled in by the resolver.
type Record struct {
	Timestamp  string
	Coordinate *gps.Coordinate
	Place      string
}

// timestamp tags in priority order
var dateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTime,
	exif.DateTimeDigitized,
}

// Extract builds a Record from the tags of one image. It is total: missing
// or malformed tags degrade to sentinels and a nil coordinate, never an
// error.
func Extract(src TagSource) Record {
	rec := Record{Timestamp: UnknownDate}

	for _, name := range dateTags {
		if s, ok := src.StringTag(name); ok {
			// raw EXIF date text, e.g. "2021:06:04 14:22:01"
			rec.Timestamp = s
			break
		}
	}

	rec.Coordinate = extractCoordinate(src)
	return rec
}

func extractCoordinate(src TagSource) *gps.Coordinate {
	lat, latOK := src.RationalTag(exif.GPSLatitude)
	lon, lonOK := src.RationalTag(exif.GPSLongitude)
	latRef, latRefOK := src.StringTag(exif.GPSLatitudeRef)
	lonRef, lonRefOK := src.StringTag(exif.GPSLongitudeRef)

	// No GPS block at all: silently no coordinate.
	if !latOK && !lonOK && !latRefOK && !lonRefOK {
		return nil
	}

	if !latOK || !lonOK || !latRefOK || !lonRefOK {
		logger.Warn("incomplete GPS block: lat=%v lon=%v latRef=%v lonRef=%v",
			latOK, lonOK, latRefOK, lonRefOK)
		return nil
	}
	if len(lat) < 3 || len(lon) < 3 {
		logger.Warn("short GPS rational triple: lat has %d values, lon has %d", len(lat), len(lon))
		return nil
	}

	coord, err := gps.NewCoordinate(
		gps.DMS{Degrees: lat[0], Minutes: lat[1], Seconds: lat[2]}, latRef,
		gps.DMS{Degrees: lon[0], Minutes: lon[1], Seconds: lon[2]}, lonRef,
	)
	if err != nil {
		logger.Warn("malformed GPS data: %v", err)
		return nil
	}
	return &coord
}

// Caption renders the record as the multi-line overlay text. The coordinate
// line is omitted when no coordinate exists.
func (r Record) Caption() string {
	lines := []string{"Date and Time: " + r.Timestamp}
	if r.Coordinate != nil {
		lines = append(lines, fmt.Sprintf("Latitude, Longitude: %.6f, %.6f",
			r.Coordinate.Latitude, r.Coordinate.Longitude))
	}
	lines = append(lines, "Location: "+r.Place)
	return strings.Join(lines, "\n")
}
