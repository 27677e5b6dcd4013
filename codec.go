package main

import (
	"github.com/pkg/errors"
)

// EncodeCartographic flattens a ring into the CZML cartographicRadians layout:
// one (longitude, latitude, elevation) triple per point, elevation fixed at 0.
// The result length is always a multiple of 3.
func EncodeCartographic(ring []Point) []float64 {
	flat := make([]float64, 0, len(ring)*3)
	for _, p := range ring {
		flat = append(flat, p.Lon, p.Lat, 0)
	}
	return flat
}

// DecodeCartographic rebuilds a ring from a flat cartographicRadians array.
// Elevation values are read and discarded. A length that is not a multiple of
// 3 is a malformed encoding.
func DecodeCartographic(flat []float64) ([]Point, error) {
	if len(flat)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformedEncoding, "positions length %d is not divisible by 3", len(flat))
	}
	ring := make([]Point, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		ring = append(ring, Point{Lon: flat[i], Lat: flat[i+1]})
	}
	return ring, nil
}
