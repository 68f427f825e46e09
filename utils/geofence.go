package utils

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Garden boundary helpers. Boundaries arrive as GeoJSON (a Feature or bare
// geometry) drawn in the mapping tool; we validate the polygon, measure its
// area and answer point-in-plot queries for weighing-location checks.

// ParseBoundary accepts a GeoJSON Feature or Geometry document and returns
// its polygon. MultiPolygons are rejected: a garden is one contiguous plot.
func ParseBoundary(raw []byte) (orb.Polygon, error) {
	var geom orb.Geometry

	if feature, err := geojson.UnmarshalFeature(raw); err == nil {
		geom = feature.Geometry
	} else {
		g, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GeoJSON: %w", err)
		}
		geom = g.Geometry()
	}

	polygon, ok := geom.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("boundary must be a Polygon, got %s", geom.GeoJSONType())
	}
	return polygon, ValidateBoundary(polygon)
}

// ValidateBoundary checks the polygon is usable: a ring of at least 3
// distinct points with coordinates in range.
func ValidateBoundary(polygon orb.Polygon) error {
	if len(polygon) == 0 {
		return errors.New("boundary polygon has no rings")
	}
	ring := polygon[0]
	// A closed ring repeats its first point, so 4 points make a triangle.
	if len(ring) < 4 {
		return errors.New("boundary must have at least 3 coordinates to form a polygon")
	}
	for i, pt := range ring {
		if pt.Lat() < -90 || pt.Lat() > 90 {
			return fmt.Errorf("invalid latitude %f at index %d", pt.Lat(), i)
		}
		if pt.Lon() < -180 || pt.Lon() > 180 {
			return fmt.Errorf("invalid longitude %f at index %d", pt.Lon(), i)
		}
	}
	return nil
}

// BoundaryContains reports whether a (lat, lng) reading falls inside the
// plot.
func BoundaryContains(polygon orb.Polygon, lat, lng float64) bool {
	return planar.PolygonContains(polygon, orb.Point{lng, lat})
}

// AreaDecares returns the polygon's geodesic area in decares (1 decare =
// 1000 m²), the unit Turkish farms are sized in.
func AreaDecares(polygon orb.Polygon) float64 {
	return geo.Area(polygon) / 1000.0
}
