package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Viewport is a rectangular region of interest in radians, optionally named.
type Viewport struct {
	Name   string
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// FilterStats summarizes one viewport extraction.
type FilterStats struct {
	Kept   int
	Total  int
	Output string
}

// ParseViewport parses "name:minLon,minLat,maxLon,maxLat" into a viewport.
// Coordinates are degrees on the way in and radians on the way out; the
// "name:" prefix is optional.
func ParseViewport(s string) (Viewport, error) {
	name := ""
	coords := s
	if i := strings.Index(s, ":"); i >= 0 {
		name = s[:i]
		coords = s[i+1:]
	}

	parts := strings.Split(coords, ",")
	if len(parts) != 4 {
		return Viewport{}, errors.Errorf("viewport %q: want minLon,minLat,maxLon,maxLat", s)
	}

	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Viewport{}, errors.Wrapf(err, "viewport %q", s)
		}
		vals[i] = v
	}

	v := Viewport{
		Name:   name,
		MinLon: radians(vals[0]),
		MinLat: radians(vals[1]),
		MaxLon: radians(vals[2]),
		MaxLat: radians(vals[3]),
	}
	if v.MinLon > v.MaxLon || v.MinLat > v.MaxLat {
		return Viewport{}, errors.Errorf("viewport %q: min corner exceeds max corner", s)
	}
	return v, nil
}

// FilterDocument extracts the sub-document whose polylines intersect the
// viewport. Packet order is preserved; the header name gains a " (<name>)"
// suffix when the viewport is named.
func FilterDocument(doc Document, v Viewport, obs Observer) Document {
	out := Document{Name: doc.Name, Packets: []Packet{}}
	if v.Name != "" {
		out.Name = fmt.Sprintf("%s (%s)", doc.Name, v.Name)
	}

	index := NewSpatialIndex(doc, obs)
	for _, i := range index.Query(v.MinLon, v.MinLat, v.MaxLon, v.MaxLat) {
		out.Packets = append(out.Packets, doc.Packets[i])
	}
	return out
}

// FilterFile filters one document file. An empty outputPath derives one from
// the input path and the viewport name.
func FilterFile(inputPath, outputPath string, v Viewport, obs Observer) (FilterStats, error) {
	doc, _, err := ReadDocument(inputPath)
	if err != nil {
		return FilterStats{}, err
	}

	out := FilterDocument(doc, v, obs)

	if outputPath == "" {
		outputPath = defaultFilterOutput(inputPath, v.Name)
	}
	if _, err := WriteDocument(out, outputPath); err != nil {
		return FilterStats{}, err
	}
	return FilterStats{Kept: len(out.Packets), Total: len(doc.Packets), Output: outputPath}, nil
}

// defaultFilterOutput derives an output path from the input stem and the
// viewport name, e.g. borders.czml -> borders_texas.czml.
func defaultFilterOutput(inputPath, name string) string {
	slug := "filtered"
	if name != "" {
		slug = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_" + slug + ext
}
