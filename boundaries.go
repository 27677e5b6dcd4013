package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// BoundaryFeature is one administrative boundary read from a source
// FeatureCollection: its display name, its admin unit, its 1-based position
// in the source, and one ring per boundary line, already in radians.
type BoundaryFeature struct {
	Name  string
	Admin string
	Seq   int
	Rings [][]Point
}

// LoadBoundaries reads a GeoJSON FeatureCollection and extracts the boundary
// rings of every feature. A feature with unsupported geometry is reported
// through the observer and skipped, but still consumes its sequence number so
// packet ids stay stable across skips. A nonexistent path is reported as
// ErrMissingInput.
func LoadBoundaries(path string, obs Observer) ([]BoundaryFeature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrMissingInput, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	features := make([]BoundaryFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		seq := i + 1
		name := propertyString(f.Properties, "name", fmt.Sprintf("Feature_%d", seq))
		admin := propertyString(f.Properties, "admin", "Unknown")

		rings, err := extractRings(f.Geometry)
		if err != nil {
			obs.Warning(fmt.Sprintf("skipping feature %d (%s): %v", seq, name, err))
			continue
		}

		features = append(features, BoundaryFeature{Name: name, Admin: admin, Seq: seq, Rings: rings})
	}
	return features, nil
}

// extractRings pulls the drawable boundary lines out of a geometry and
// converts them to radians. The supported set is closed: LineString,
// MultiLineString, Polygon (exterior ring only) and MultiPolygon (exterior
// ring of each member). Anything else is ErrUnsupportedGeometry.
func extractRings(g orb.Geometry) ([][]Point, error) {
	if g == nil {
		return nil, errors.Wrap(ErrUnsupportedGeometry, "missing geometry")
	}

	switch geom := g.(type) {
	case orb.LineString:
		return [][]Point{ringFromPoints(geom)}, nil

	case orb.MultiLineString:
		rings := make([][]Point, 0, len(geom))
		for _, line := range geom {
			rings = append(rings, ringFromPoints(line))
		}
		return rings, nil

	case orb.Polygon:
		if len(geom) == 0 {
			return nil, nil
		}
		return [][]Point{ringFromPoints(geom[0])}, nil

	case orb.MultiPolygon:
		rings := make([][]Point, 0, len(geom))
		for _, poly := range geom {
			if len(poly) == 0 {
				continue
			}
			rings = append(rings, ringFromPoints(poly[0]))
		}
		return rings, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedGeometry, "%s", g.GeoJSONType())
	}
}

// ringFromPoints converts source vertices (degrees) into a radian ring.
func ringFromPoints(pts []orb.Point) []Point {
	ring := make([]Point, 0, len(pts))
	for _, pt := range pts {
		ring = append(ring, pointFromDegrees(pt.Lon(), pt.Lat()))
	}
	return ring
}

// propertyString pulls a string property, trying the exact key first and a
// case-insensitive match second, before falling back.
func propertyString(props geojson.Properties, key, fallback string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	for k, raw := range props {
		if strings.EqualFold(k, key) {
			if v, ok := raw.(string); ok {
				return v
			}
		}
	}
	return fallback
}
