package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wavyRing builds a deterministic wiggly line for property tests.
func wavyRing(n int) []Point {
	ring := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 0.001
		y := 0.002*math.Sin(float64(i)*0.7) + 0.0005*math.Cos(float64(i)*2.3)
		ring = append(ring, Point{Lon: x, Lat: y})
	}
	return ring
}

func TestSimplifyRingNearCollinear(t *testing.T) {
	ring := []Point{{0, 0}, {0.0001, 0.00005}, {0.0002, 0}}

	got := SimplifyRing(ring, 0.001)

	require.Equal(t, []Point{{0, 0}, {0.0002, 0}}, got)
}

func TestSimplifyRingKeepsZigzag(t *testing.T) {
	// Middle points deviate by 0.01, well beyond the tolerance
	ring := []Point{{0, 0}, {0.01, 0.01}, {0.02, 0}, {0.03, 0.01}, {0.04, 0}}

	got := SimplifyRing(ring, 0.001)

	require.Equal(t, ring, got)
}

func TestSimplifyRingPinsEndpoints(t *testing.T) {
	ring := wavyRing(40)

	for _, tol := range []float64{0, 0.0001, 0.001, 0.01, 1} {
		got := SimplifyRing(ring, tol)
		require.GreaterOrEqual(t, len(got), 2, "tolerance %g", tol)
		assert.Equal(t, ring[0], got[0], "tolerance %g", tol)
		assert.Equal(t, ring[len(ring)-1], got[len(got)-1], "tolerance %g", tol)
	}
}

func TestSimplifyRingMonotonicOverTolerance(t *testing.T) {
	ring := wavyRing(60)
	tolerances := []float64{0, 0.0002, 0.0005, 0.001, 0.005}

	prev := SimplifyRing(ring, tolerances[0])
	for _, tol := range tolerances[1:] {
		got := SimplifyRing(ring, tol)

		assert.LessOrEqual(t, len(got), len(prev), "tolerance %g", tol)
		for _, p := range got {
			assert.Contains(t, prev, p, "tolerance %g dropped a point the looser pass kept", tol)
		}
		prev = got
	}
}

func TestSimplifyRingShortInputsUnchanged(t *testing.T) {
	require.Empty(t, SimplifyRing(nil, 0.1))

	one := []Point{{1, 2}}
	require.Equal(t, one, SimplifyRing(one, 0.1))

	two := []Point{{1, 2}, {3, 4}}
	require.Equal(t, two, SimplifyRing(two, 0.1))
}

func TestSimplifyRingCoincidentPoints(t *testing.T) {
	p := Point{Lon: 0.5, Lat: -0.25}
	ring := []Point{p, p, p, p, p}

	got := SimplifyRing(ring, 0.001)

	require.Equal(t, []Point{p, p}, got)
}

func TestSimplifyRingZeroTolerance(t *testing.T) {
	collinear := []Point{{0, 0}, {0.25, 0}, {0.5, 0}}
	require.Equal(t, []Point{{0, 0}, {0.5, 0}}, SimplifyRing(collinear, 0))

	bent := []Point{{0, 0}, {0.25, 0.1}, {0.5, 0}}
	require.Equal(t, bent, SimplifyRing(bent, 0))
}

func TestSimplifyRingIdempotent(t *testing.T) {
	ring := wavyRing(60)

	for _, tol := range []float64{0.0002, 0.001, 0.01} {
		once := SimplifyRing(ring, tol)
		twice := SimplifyRing(once, tol)
		require.Equal(t, once, twice, "tolerance %g", tol)
	}
}

func TestSimplifyRingDeviationBound(t *testing.T) {
	ring := wavyRing(80)
	tolerance := 0.0008

	got := SimplifyRing(ring, tolerance)
	require.Less(t, len(got), len(ring), "tolerance should drop at least one point")

	// Every source point stays within tolerance of some simplified segment
	for _, p := range ring {
		closest := math.Inf(1)
		for i := 0; i+1 < len(got); i++ {
			if d := perpendicularDistance(p, got[i], got[i+1]); d < closest {
				closest = d
			}
		}
		require.LessOrEqual(t, closest, tolerance)
	}
}

func TestSimplifyRingPreservesClosure(t *testing.T) {
	ring := []Point{{0, 0}, {0.01, 0.0001}, {0.02, 0.01}, {0.0001, 0.02}, {0, 0}}

	got := SimplifyRing(ring, 0.001)

	require.Equal(t, got[0], got[len(got)-1])
}
