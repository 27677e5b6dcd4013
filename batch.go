package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConvertJob is one entry of the conversion batch: a source
// FeatureCollection and its CZML destination.
type ConvertJob struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	Resolution string `json:"resolution"`
}

// OptimizeJob is one entry of the optimization batch.
type OptimizeJob struct {
	Input     string  `json:"input"`
	Output    string  `json:"output"`
	Tolerance float64 `json:"tolerance"`
	Name      string  `json:"name"`
}

// Manifest lists the work of one batch run. Either list may be empty.
type Manifest struct {
	Convert  []ConvertJob  `json:"convert"`
	Optimize []OptimizeJob `json:"optimize"`
}

// BatchResult counts batch entries by outcome.
type BatchResult struct {
	Converted int
	Optimized int
	Skipped   int
}

// DefaultManifest mirrors the standard Natural Earth tables: convert the
// 10m, 50m and 110m states/provinces sets, then derive three optimization
// levels from the 10m output. dataDir prefixes every path when non-empty.
func DefaultManifest(dataDir string) Manifest {
	var m Manifest
	for _, res := range []string{"10m", "50m", "110m"} {
		m.Convert = append(m.Convert, ConvertJob{
			Input:      filepath.Join(dataDir, fmt.Sprintf("ne_%s_admin_1_states_provinces.geojson", res)),
			Output:     filepath.Join(dataDir, fmt.Sprintf("states_provinces_%s.czml", res)),
			Resolution: res,
		})
	}

	input := filepath.Join(dataDir, "states_provinces_10m.czml")
	m.Optimize = []OptimizeJob{
		// ~300m, ~600m and ~1.2km at the equator
		{Input: input, Output: filepath.Join(dataDir, "states_provinces_10m_optimized.czml"), Tolerance: 0.00005, Name: DocumentName("10m (Optimized)")},
		{Input: input, Output: filepath.Join(dataDir, "states_provinces_10m_light.czml"), Tolerance: 0.0001, Name: DocumentName("10m (Light)")},
		{Input: input, Output: filepath.Join(dataDir, "states_provinces_10m_ultralight.czml"), Tolerance: 0.0002, Name: DocumentName("10m (Ultra Light)")},
	}
	return m
}

// LoadManifest reads a batch manifest from a JSON file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, errors.Wrapf(ErrMissingInput, "%s", path)
		}
		return Manifest{}, errors.Wrapf(err, "reading %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Wrapf(err, "parsing %s", path)
	}
	return m, nil
}

// RunBatch executes every manifest entry in order, conversions first so the
// optimization rows can consume their outputs. A failed or missing entry is
// logged and skipped; the run always continues to the remaining entries.
func RunBatch(m Manifest, log *zap.SugaredLogger) BatchResult {
	obs := NewLogObserver(log)
	var res BatchResult

	for _, job := range m.Convert {
		log.Infof("converting %s -> %s (%s)", job.Input, job.Output, job.Resolution)
		stats, err := ConvertFile(job.Input, job.Output, DocumentName(job.Resolution), obs)
		if err != nil {
			if errors.Is(err, ErrMissingInput) {
				log.Infof("%s not found, skipping", job.Input)
			} else {
				log.Warnf("skipping %s: %v", job.Input, err)
			}
			res.Skipped++
			continue
		}
		log.Infof("✓ %s: %d features, %d polylines, %.1f MB",
			job.Output, stats.Features, stats.Polylines, float64(stats.Bytes)/(1024*1024))
		res.Converted++
	}

	for _, job := range m.Optimize {
		log.Infof("optimizing %s -> %s (tolerance %g)", job.Input, job.Output, job.Tolerance)
		stats, err := OptimizeFile(job.Input, job.Output, job.Tolerance, job.Name, obs)
		if err != nil {
			if errors.Is(err, ErrMissingInput) {
				log.Infof("%s not found, skipping", job.Input)
			} else {
				log.Warnf("skipping %s: %v", job.Input, err)
			}
			res.Skipped++
			continue
		}
		log.Infof("✓ %s: %.1f%% size reduction, %.1f%% point reduction, avg %.1f points/line",
			job.Output, stats.SizeReduction(), stats.PointReduction(), stats.AvgPointsPerLine())
		res.Optimized++
	}

	log.Infof("batch complete: %d converted, %d optimized, %d skipped",
		res.Converted, res.Optimized, res.Skipped)
	return res
}
