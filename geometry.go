package main

import "math"

// Point is a geographic coordinate with longitude and latitude in radians.
// All pipeline geometry is carried in radians; the single degrees-to-radians
// conversion happens at ring extraction time, never inside the codec or the
// simplifier.
type Point struct {
	Lon float64
	Lat float64
}

// pointFromDegrees converts a source coordinate (degrees) into a Point.
func pointFromDegrees(lon, lat float64) Point {
	return Point{Lon: radians(lon), Lat: radians(lat)}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
