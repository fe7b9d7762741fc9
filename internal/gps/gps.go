// Package gps converts EXIF degree/minute/second rationals into signed
// decimal coordinates.
package gps

import "fmt"

// Rational is an EXIF rational value, an exact numerator/denominator pair.
type Rational struct {
	Num int64
	Den int64
}

// DMS is a degrees/minutes/seconds triple as stored in the GPS IFD.
type DMS struct {
	Degrees Rational
	Minutes Rational
	Seconds Rational
}

// Hemisphere identifies the side of the equator or prime meridian a
// coordinate lies on.
type Hemisphere int

const (
	North Hemisphere = iota
	South
	East
	West
)

// ConversionError reports a rational quadruple that cannot be converted to a
// decimal coordinate.
type ConversionError struct {
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("gps conversion: %s", e.Reason)
}

// ParseLatitudeRef decodes a GPSLatitudeRef tag value. Only "N" and "S" are
// valid; anything else (including an empty ref) is an error rather than an
// implicit hemisphere.
func ParseLatitudeRef(ref string) (Hemisphere, error) {
	switch ref {
	case "N":
		return North, nil
	case "S":
		return South, nil
	}
	return 0, &ConversionError{Reason: fmt.Sprintf("unrecognized latitude ref %q", ref)}
}

// ParseLongitudeRef decodes a GPSLongitudeRef tag value ("E" or "W").
func ParseLongitudeRef(ref string) (Hemisphere, error) {
	switch ref {
	case "E":
		return East, nil
	case "W":
		return West, nil
	}
	return 0, &ConversionError{Reason: fmt.Sprintf("unrecognized longitude ref %q", ref)}
}

// Float evaluates the rational. A zero denominator is an error, not an Inf.
func (r Rational) Float() (float64, error) {
	if r.Den == 0 {
		return 0, &ConversionError{Reason: fmt.Sprintf("zero denominator in rational %d/0", r.Num)}
	}
	return float64(r.Num) / float64(r.Den), nil
}

// Decimal converts the triple to decimal degrees, negated for South/West.
func (d DMS) Decimal(h Hemisphere) (float64, error) {
	deg, err := d.Degrees.Float()
	if err != nil {
		return 0, err
	}
	min, err := d.Minutes.Float()
	if err != nil {
		return 0, err
	}
	sec, err := d.Seconds.Float()
	if err != nil {
		return 0, err
	}

	dec := deg + min/60 + sec/3600
	if h == South || h == West {
		dec = -dec
	}
	return dec, nil
}

// Coordinate is a decoded GPS position. Sign encodes hemisphere
// (negative = South/West).
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinate builds a Coordinate from two complete DMS quadruples. It
// fails on any malformed component so a partial position never escapes.
func NewCoordinate(lat DMS, latRef string, lon DMS, lonRef string) (Coordinate, error) {
	latHemi, err := ParseLatitudeRef(latRef)
	if err != nil {
		return Coordinate{}, err
	}
	lonHemi, err := ParseLongitudeRef(lonRef)
	if err != nil {
		return Coordinate{}, err
	}

	latDec, err := lat.Decimal(latHemi)
	if err != nil {
		return Coordinate{}, err
	}
	lonDec, err := lon.Decimal(lonHemi)
	if err != nil {
		return Coordinate{}, err
	}

	if latDec < -90 || latDec > 90 {
		return Coordinate{}, &ConversionError{Reason: fmt.Sprintf("latitude %f out of range", latDec)}
	}
	if lonDec < -180 || lonDec > 180 {
		return Coordinate{}, &ConversionError{Reason: fmt.Sprintf("longitude %f out of range", lonDec)}
	}

	return Coordinate{Latitude: latDec, Longitude: lonDec}, nil
}
