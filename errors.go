package main

import "errors"

// Errors reported by the pipeline. All of them are recoverable at the batch
// level: callers skip the offending feature, packet, or batch entry and keep
// going, attaching a diagnostic that names what was skipped.
var (
	ErrMalformedEncoding   = errors.New("malformed cartographic encoding")
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	ErrMissingInput        = errors.New("input file not found")
	ErrEmptyDocument       = errors.New("document contains no records")
)
