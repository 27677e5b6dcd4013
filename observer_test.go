package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recordingObserver captures every event so tests can assert on reporting.
type recordingObserver struct {
	mu       sync.Mutex
	features []int
	packets  []int
	warnings []string
}

func (r *recordingObserver) FeatureProcessed(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.features = append(r.features, count)
}

func (r *recordingObserver) PacketProcessed(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets = append(r.packets, count)
}

func (r *recordingObserver) Warning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

func TestLogObserverCadence(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewLogObserver(zap.New(core).Sugar())

	for i := 1; i <= 250; i++ {
		obs.FeatureProcessed(i)
	}
	require.Equal(t, 2, logs.FilterMessageSnippet("features").Len(), "expected lines at 100 and 200")

	for i := 1; i <= 2500; i++ {
		obs.PacketProcessed(i)
	}
	require.Equal(t, 2, logs.FilterMessageSnippet("polylines").Len(), "expected lines at 1000 and 2000")
}

func TestLogObserverWarning(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewLogObserver(zap.New(core).Sugar())

	obs.Warning("packet X: malformed")

	warnings := logs.FilterMessageSnippet("packet X")
	require.Equal(t, 1, warnings.Len())
	require.Equal(t, zapcore.WarnLevel, warnings.All()[0].Level)
}

func TestNopObserver(t *testing.T) {
	obs := NopObserver()
	obs.FeatureProcessed(1)
	obs.PacketProcessed(1)
	obs.Warning("ignored")
}
