package main

import (
	"math"
)

// SimplifyRing reduces a boundary ring's vertex count using the
// Douglas-Peucker algorithm. Every discarded point lies within tolerance
// perpendicular distance of the simplified line; the first and last points
// are always kept. Tolerance is in radians, the same unit as the points.
//
// A closed ring (last point repeating the first) needs no special handling:
// both endpoints are pinned, so closure survives simplification.
func SimplifyRing(ring []Point, tolerance float64) []Point {
	if len(ring) < 3 {
		return ring
	}
	return douglasPeucker(ring, tolerance)
}

// douglasPeucker implements the recursive Douglas-Peucker reduction
func douglasPeucker(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		return points
	}

	// Find the point with maximum distance from the first-to-last baseline
	dmax := 0.0
	index := 0
	end := len(points) - 1

	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	// If the farthest point still deviates beyond tolerance, split there and
	// recurse on both halves
	if dmax > tolerance {
		left := douglasPeucker(points[0:index+1], tolerance)
		right := douglasPeucker(points[index:], tolerance)

		// Combine results, sharing the split point once
		result := make([]Point, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	// Everything in between sits within tolerance of the baseline
	return []Point{points[0], points[end]}
}

// perpendicularDistance calculates the planar perpendicular distance from a
// point to the line through lineStart and lineEnd. Coordinates are small
// angles, so no geodesic correction is applied.
func perpendicularDistance(point, lineStart, lineEnd Point) float64 {
	dx := lineEnd.Lon - lineStart.Lon
	dy := lineEnd.Lat - lineStart.Lat

	// Normalize
	mag := math.Sqrt(dx*dx + dy*dy)
	if mag > 0 {
		dx /= mag
		dy /= mag
	}

	pvx := point.Lon - lineStart.Lon
	pvy := point.Lat - lineStart.Lat

	// Project pv onto the normalized direction
	pvdot := dx*pvx + dy*pvy

	ax := pvx - pvdot*dx
	ay := pvy - pvdot*dy

	return math.Sqrt(ax*ax + ay*ay)
}
