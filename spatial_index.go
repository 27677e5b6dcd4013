package main

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// degenerateExtent widens zero-width or zero-height bounding boxes just
// enough for the R-tree to accept them; rtreego rejects rects with
// non-positive lengths, and single-point or axis-aligned polylines produce
// exactly those.
const degenerateExtent = 1e-12

// PacketEntry wraps one document packet for R-tree storage.
type PacketEntry struct {
	Index int
	BBox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *PacketEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex answers viewport queries over a document's polylines.
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex builds an R-tree over the bounding box of every polyline
// in the document. Packets without positions are skipped; packets with
// malformed positions are reported through the observer and skipped.
func NewSpatialIndex(doc Document, obs Observer) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for i, p := range doc.Packets {
		flat := p.Polyline.Positions.CartographicRadians
		if len(flat) == 0 {
			continue
		}

		ring, err := DecodeCartographic(flat)
		if err != nil {
			obs.Warning(fmt.Sprintf("packet %s not indexed: %v", p.ID, err))
			continue
		}

		bbox, err := packetBounds(ring)
		if err != nil {
			obs.Warning(fmt.Sprintf("packet %s not indexed: %v", p.ID, err))
			continue
		}
		tree.Insert(&PacketEntry{Index: i, BBox: bbox})
	}

	return &SpatialIndex{tree: tree}
}

// Query returns the indexes of packets whose bounding boxes intersect the
// given region, in document order. Coordinates are radians.
func (si *SpatialIndex) Query(minLon, minLat, maxLon, maxLat float64) []int {
	bbox, err := rtreego.NewRect(
		rtreego.Point{minLon, minLat},
		[]float64{extent(maxLon - minLon), extent(maxLat - minLat)},
	)
	if err != nil {
		return []int{}
	}

	results := si.tree.SearchIntersect(bbox)
	indexes := make([]int, 0, len(results))
	for _, item := range results {
		entry := item.(*PacketEntry)
		indexes = append(indexes, entry.Index)
	}

	sort.Ints(indexes)
	return indexes
}

// packetBounds computes the axis-aligned bounding box for a ring
func packetBounds(ring []Point) (rtreego.Rect, error) {
	minLon, minLat := ring[0].Lon, ring[0].Lat
	maxLon, maxLat := ring[0].Lon, ring[0].Lat

	for _, p := range ring[1:] {
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
	}

	return rtreego.NewRect(
		rtreego.Point{minLon, minLat},
		[]float64{extent(maxLon - minLon), extent(maxLat - minLat)},
	)
}

// extent widens a zero span to the minimum the R-tree accepts.
func extent(d float64) float64 {
	if d <= 0 {
		return degenerateExtent
	}
	return d
}
