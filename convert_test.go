package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentName(t *testing.T) {
	require.Equal(t, "States and Provinces Borders 10m", DocumentName("10m"))
}

func TestBuildDocument(t *testing.T) {
	features := []BoundaryFeature{
		{Name: "Texas", Admin: "United States", Seq: 1, Rings: [][]Point{{{0, 0}, {0.1, 0.1}}}},
		{Name: "Coahuila", Admin: "Mexico", Seq: 3, Rings: [][]Point{{{0.2, 0.2}}, {{0.3, 0.3}}}},
	}
	rec := &recordingObserver{}

	doc := BuildDocument(features, "borders", rec)

	require.Equal(t, "borders", doc.Name)
	require.Len(t, doc.Packets, 3)
	assert.Equal(t, "Texas_United States_1_0", doc.Packets[0].ID)
	assert.Equal(t, "Coahuila_Mexico_3_0", doc.Packets[1].ID)
	assert.Equal(t, "Coahuila_Mexico_3_1", doc.Packets[2].ID)
	assert.Equal(t, []int{1, 3}, rec.features)
}

func TestBuildDocumentEmpty(t *testing.T) {
	doc := BuildDocument(nil, "empty", NopObserver())

	require.Equal(t, "empty", doc.Name)
	require.Empty(t, doc.Packets)
}

func TestConvertFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.czml")
	rec := &recordingObserver{}

	stats, err := ConvertFile(writeFixture(t, mixedFixture), output, "mixed set", rec)

	require.NoError(t, err)
	require.Equal(t, 2, stats.Features)
	require.Equal(t, 2, stats.Polylines)

	doc, size, err := ReadDocument(output)
	require.NoError(t, err)
	require.Equal(t, stats.Bytes, size)
	require.Equal(t, "mixed set", doc.Name)
	require.Len(t, doc.Packets, 2)
	assert.Equal(t, "Alpha_Wonderland_1_0", doc.Packets[0].ID)
	assert.Equal(t, "Gamma_Wonderland_3_0", doc.Packets[1].ID)
	assert.Equal(t, "Alpha, Wonderland", doc.Packets[0].Label.Text)
	require.Len(t, rec.warnings, 1)
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := ConvertFile(filepath.Join(dir, "absent.geojson"), filepath.Join(dir, "out.czml"), "x", NopObserver())

	require.ErrorIs(t, err, ErrMissingInput)
}
