package geo

import (
	"errors"
	"strconv"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Coordinates are carried as canonical strings with exactly five fractional
// digits (WGS84 degrees). Exact string equality on the canonical form is the
// collection's notion of "same place", so every coordinate entering the
// system goes through Normalize first.

// ErrInvalidCoordinates is returned when a coordinate cannot be parsed or is
// outside WGS84 bounds.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Format renders a coordinate value in the canonical 5-decimal form,
// e.g. 48.586 becomes "48.58600".
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}

// Normalize parses a raw coordinate string and re-renders it canonically.
// Malformed input normalizes to "0.00000".
func Normalize(raw string) string {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Format(0)
	}
	return Format(v)
}

// Parse converts a canonical (or raw) coordinate string to a float64.
func Parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidCoordinates
	}
	return v, nil
}

// ValidLatitude reports whether lat parses to a value within [-90, 90].
func ValidLatitude(lat string) bool {
	v, err := Parse(lat)
	return err == nil && v >= -90 && v <= 90
}

// ValidLongitude reports whether lng parses to a value within [-180, 180].
func ValidLongitude(lng string) bool {
	v, err := Parse(lng)
	return err == nil && v >= -180 && v <= 180
}

// PointFrom4326 projects a WGS84 longitude/latitude pair to a web-mercator
// (EPSG:3857) point for storage backends that keep planar geometry.
func PointFrom4326(longitude, latitude float64) geom.Point {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(longitude, latitude, 0)
	return geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
			Z:  0,
		},
	)
}
