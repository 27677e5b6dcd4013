package main

import "fmt"

// ConvertStats summarizes one conversion run.
type ConvertStats struct {
	Features  int
	Polylines int
	Bytes     int
}

// DocumentName assembles the standard header name for a resolution label,
// e.g. "States and Provinces Borders 10m".
func DocumentName(resolution string) string {
	return fmt.Sprintf("States and Provinces Borders %s", resolution)
}

// BuildDocument assembles a CZML document from boundary features: one packet
// per ring, in feature then ring order. The observer is notified once per
// feature with its sequence number.
func BuildDocument(features []BoundaryFeature, docName string, obs Observer) Document {
	doc := Document{Name: docName, Packets: []Packet{}}
	for _, f := range features {
		for idx, ring := range f.Rings {
			doc.Packets = append(doc.Packets, BuildPacket(ring, f.Name, f.Admin, f.Seq, idx))
		}
		obs.FeatureProcessed(f.Seq)
	}
	return doc
}

// ConvertFile runs one full conversion: read the source FeatureCollection,
// build the document, write it to outputPath.
func ConvertFile(inputPath, outputPath, docName string, obs Observer) (ConvertStats, error) {
	features, err := LoadBoundaries(inputPath, obs)
	if err != nil {
		return ConvertStats{}, err
	}

	doc := BuildDocument(features, docName, obs)

	n, err := WriteDocument(doc, outputPath)
	if err != nil {
		return ConvertStats{}, err
	}
	return ConvertStats{Features: len(features), Polylines: len(doc.Packets), Bytes: n}, nil
}
