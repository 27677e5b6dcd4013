package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeCartographic(t *testing.T) {
	ring := []Point{{Lon: 0.1, Lat: 0.2}, {Lon: -0.3, Lat: 0.4}}

	flat := EncodeCartographic(ring)

	require.Equal(t, []float64{0.1, 0.2, 0, -0.3, 0.4, 0}, flat)
}

func TestEncodeCartographicEmpty(t *testing.T) {
	require.Empty(t, EncodeCartographic(nil))
}

func TestDecodeCartographicRoundTrip(t *testing.T) {
	ring := []Point{
		{Lon: 0.5235987755982988, Lat: 0.7853981633974483},
		{Lon: -1.0471975511965976, Lat: 0},
		{Lon: 0, Lat: -0.6108652381980153},
	}

	decoded, err := DecodeCartographic(EncodeCartographic(ring))

	require.NoError(t, err)
	require.Equal(t, ring, decoded)
}

func TestDecodeCartographicDiscardsElevation(t *testing.T) {
	decoded, err := DecodeCartographic([]float64{0.1, 0.2, 42.0})

	require.NoError(t, err)
	require.Equal(t, []Point{{Lon: 0.1, Lat: 0.2}}, decoded)
}

func TestDecodeCartographicMalformed(t *testing.T) {
	for _, n := range []int{1, 2, 4, 5, 7} {
		t.Run(fmt.Sprintf("len_%d", n), func(t *testing.T) {
			flat := make([]float64, n)

			_, err := DecodeCartographic(flat)

			require.ErrorIs(t, err, ErrMalformedEncoding)
			require.Contains(t, err.Error(), fmt.Sprintf("length %d", n))
		})
	}
}
