package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

const (
	documentID  = "document"
	czmlVersion = "1.0"
)

// Positions holds the flat cartographicRadians encoding of a polyline.
type Positions struct {
	CartographicRadians []float64 `json:"cartographicRadians"`
}

// Color is an RGBA quadruplet, each channel in 0..255.
type Color struct {
	RGBA [4]int `json:"rgba"`
}

// SolidColor wraps a color per the CZML material schema.
type SolidColor struct {
	Color Color `json:"color"`
}

// Material describes how a polyline is painted. Only solid color is emitted.
type Material struct {
	SolidColor SolidColor `json:"solidColor"`
}

// Polyline is the drawable body of a line record.
type Polyline struct {
	Positions     Positions `json:"positions"`
	Material      Material  `json:"material"`
	Width         int       `json:"width"`
	ClampToGround bool      `json:"clampToGround"`
}

// Label carries the text shown alongside a polyline.
type Label struct {
	Text string `json:"text"`
}

// Packet is one CZML line record: an identified polyline plus its label.
type Packet struct {
	ID       string   `json:"id"`
	Polyline Polyline `json:"polyline"`
	Label    Label    `json:"label"`
}

// documentHeader is the mandatory first record of every CZML document.
type documentHeader struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Document is an ordered CZML document: a named header record followed by
// line packets. Order is significant on the wire and the header always comes
// first.
type Document struct {
	Name    string
	Packets []Packet
}

// BuildPacketID produces the stable identity for one ring of one feature:
// "<name>_<admin>_<featureSeq>_<ringIndex>". Feature sequence numbers start
// at 1 and ring indexes at 0, which keeps ids unique within a document.
func BuildPacketID(name, admin string, featureSeq, ringIndex int) string {
	return fmt.Sprintf("%s_%s_%d_%d", name, admin, featureSeq, ringIndex)
}

// BuildPacket assembles the CZML line record for one boundary ring: solid
// white, width 1, clamped to ground, labeled "<name>, <admin>".
func BuildPacket(ring []Point, name, admin string, featureSeq, ringIndex int) Packet {
	return Packet{
		ID: BuildPacketID(name, admin, featureSeq, ringIndex),
		Polyline: Polyline{
			Positions:     Positions{CartographicRadians: EncodeCartographic(ring)},
			Material:      Material{SolidColor: SolidColor{Color: Color{RGBA: [4]int{255, 255, 255, 255}}}},
			Width:         1,
			ClampToGround: true,
		},
		Label: Label{Text: fmt.Sprintf("%s, %s", name, admin)},
	}
}

// PointCount reports the number of vertices carried by the packet's polyline.
func (p Packet) PointCount() int {
	return len(p.Polyline.Positions.CartographicRadians) / 3
}

// PointCount sums vertices across every line record in the document.
func (d Document) PointCount() int {
	total := 0
	for _, p := range d.Packets {
		total += p.PointCount()
	}
	return total
}

// MarshalJSON renders the document as the order-significant CZML array: the
// header record first, then every packet in document order. Output is compact.
func (d Document) MarshalJSON() ([]byte, error) {
	records := make([]interface{}, 0, len(d.Packets)+1)
	records = append(records, documentHeader{ID: documentID, Name: d.Name, Version: czmlVersion})
	for _, p := range d.Packets {
		records = append(records, p)
	}
	return json.Marshal(records)
}

// UnmarshalJSON parses the CZML array form. The first record must be the
// header (id "document"); every record after it is a line packet.
func (d *Document) UnmarshalJSON(data []byte) error {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.Wrap(ErrMalformedEncoding, "document array has no header record")
	}

	var header documentHeader
	if err := json.Unmarshal(records[0], &header); err != nil {
		return errors.Wrap(err, "decoding document header")
	}
	if header.ID != documentID {
		return errors.Wrapf(ErrMalformedEncoding, "first record id %q, want %q", header.ID, documentID)
	}

	packets := make([]Packet, 0, len(records)-1)
	for i, raw := range records[1:] {
		var p Packet
		if err := json.Unmarshal(raw, &p); err != nil {
			return errors.Wrapf(err, "decoding packet %d", i)
		}
		packets = append(packets, p)
	}

	d.Name = header.Name
	d.Packets = packets
	return nil
}

// WriteDocument marshals the document and writes it to path, returning the
// number of bytes written.
func WriteDocument(doc Document, path string) (int, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, errors.Wrap(err, "encoding document")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, errors.Wrapf(err, "writing %s", path)
	}
	return len(data), nil
}

// ReadDocument loads a CZML document from path, returning it together with
// the on-disk byte size. A nonexistent file is reported as ErrMissingInput so
// batch callers can skip the entry and continue.
func ReadDocument(path string) (Document, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, 0, errors.Wrapf(ErrMissingInput, "%s", path)
		}
		return Document{}, 0, errors.Wrapf(err, "reading %s", path)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, 0, errors.Wrapf(err, "parsing %s", path)
	}
	return doc, len(data), nil
}
