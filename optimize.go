package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// OptimizeStats summarizes one optimization pass.
type OptimizeStats struct {
	Polylines    int
	PointsBefore int
	PointsAfter  int
	BytesBefore  int
	BytesAfter   int
	Skipped      int
}

// PointReduction returns the percentage of vertices removed, 0 for a
// document that had none.
func (s OptimizeStats) PointReduction() float64 {
	if s.PointsBefore == 0 {
		return 0
	}
	return float64(s.PointsBefore-s.PointsAfter) / float64(s.PointsBefore) * 100
}

// SizeReduction returns the percentage of bytes removed, 0 when the input
// size is unknown.
func (s OptimizeStats) SizeReduction() float64 {
	if s.BytesBefore == 0 {
		return 0
	}
	return float64(s.BytesBefore-s.BytesAfter) / float64(s.BytesBefore) * 100
}

// AvgPointsPerLine returns the mean vertex count per polyline after
// optimization, 0 for a document with no lines.
func (s OptimizeStats) AvgPointsPerLine() float64 {
	if s.Polylines == 0 {
		return 0
	}
	return float64(s.PointsAfter) / float64(s.Polylines)
}

// packetResult carries one worker's output back to the reducer.
type packetResult struct {
	packet       Packet
	pointsBefore int
	pointsAfter  int
	err          error
}

// OptimizeDocument produces a new document whose polylines are simplified
// with the given tolerance. The input document is never modified. Packets
// are processed concurrently but the output order equals the input order. A
// packet with malformed positions is carried over unchanged and counted as
// skipped, with a diagnostic naming the packet id. A non-empty targetName
// replaces the document name.
func OptimizeDocument(doc Document, tolerance float64, targetName string, obs Observer) (Document, OptimizeStats) {
	out := Document{Name: doc.Name, Packets: []Packet{}}
	if targetName != "" {
		out.Name = targetName
	}
	if len(doc.Packets) == 0 {
		obs.Warning(ErrEmptyDocument.Error())
		return out, OptimizeStats{}
	}

	results := make([]packetResult, len(doc.Packets))
	var processed atomic.Int64

	workers := runtime.NumCPU()
	if workers > len(doc.Packets) {
		workers = len(doc.Packets)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = optimizePacket(doc.Packets[i], tolerance)
				obs.PacketProcessed(int(processed.Add(1)))
			}
		}()
	}
	for i := range doc.Packets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Reduce in input order so stats and warnings are deterministic
	stats := OptimizeStats{Polylines: len(doc.Packets)}
	out.Packets = make([]Packet, len(doc.Packets))
	for i, r := range results {
		out.Packets[i] = r.packet
		stats.PointsBefore += r.pointsBefore
		stats.PointsAfter += r.pointsAfter
		if r.err != nil {
			stats.Skipped++
			obs.Warning(fmt.Sprintf("packet %s: %v", doc.Packets[i].ID, r.err))
		}
	}
	return out, stats
}

// optimizePacket simplifies a single packet's polyline, leaving id, style
// and label untouched. On a malformed positions array the packet is returned
// unchanged along with the decode error.
func optimizePacket(p Packet, tolerance float64) packetResult {
	flat := p.Polyline.Positions.CartographicRadians
	before := len(flat) / 3

	ring, err := DecodeCartographic(flat)
	if err != nil {
		return packetResult{packet: p, pointsBefore: before, pointsAfter: before, err: err}
	}

	simplified := SimplifyRing(ring, tolerance)
	p.Polyline.Positions.CartographicRadians = EncodeCartographic(simplified)
	return packetResult{packet: p, pointsBefore: before, pointsAfter: len(simplified)}
}

// OptimizeFile optimizes one document file end to end, filling the byte
// statistics from the input and output sizes.
func OptimizeFile(inputPath, outputPath string, tolerance float64, targetName string, obs Observer) (OptimizeStats, error) {
	doc, bytesIn, err := ReadDocument(inputPath)
	if err != nil {
		return OptimizeStats{}, err
	}

	out, stats := OptimizeDocument(doc, tolerance, targetName, obs)

	bytesOut, err := WriteDocument(out, outputPath)
	if err != nil {
		return OptimizeStats{}, err
	}
	stats.BytesBefore = bytesIn
	stats.BytesAfter = bytesOut
	return stats, nil
}
