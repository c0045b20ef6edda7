package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a WGS 84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// String renders the coordinate in the "lat, lon" form used for the
// start/end location columns of the audit report.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon)
}

// ParseCoordinate parses a "lat, lon" string as produced by Coordinate.String.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("malformed coordinate %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("malformed latitude in %q: %v", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("malformed longitude in %q: %v", s, err)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
	MinLon float64 `yaml:"min_lon"`
	MaxLon float64 `yaml:"max_lon"`
}

func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// GlobalBounds is the full range of valid geographic coordinates.
var GlobalBounds = Bounds{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}

// DefaultRegionBounds is the region-of-interest box applied after the global
// range check. The default covers the India region; override it through
// configuration when auditing routes elsewhere.
var DefaultRegionBounds = Bounds{MinLat: 6, MaxLat: 38, MinLon: 68, MaxLon: 98}

// Validator rejects coordinates that fall outside the global geographic
// range or outside the configured region of interest.
type Validator struct {
	Region Bounds
}

func NewValidator(region Bounds) Validator {
	return Validator{Region: region}
}

// Valid reports whether the pair lies within both the global and the
// region-of-interest bounds.
func (v Validator) Valid(lat, lon float64) bool {
	return GlobalBounds.Contains(lat, lon) && v.Region.Contains(lat, lon)
}

// ParseValid converts raw cell values to floats and validates the result.
// Conversion failure means invalid; it never panics.
func (v Validator) ParseValid(lat, lon string) (Coordinate, bool) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinate{}, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coordinate{}, false
	}
	if !v.Valid(la, lo) {
		return Coordinate{}, false
	}
	return Coordinate{Lat: la, Lon: lo}, true
}
