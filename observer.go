package main

import "go.uber.org/zap"

// Observer receives progress counts and diagnostics from the pipeline. The
// transformation code never logs directly; it reports through this interface
// so tests can capture events and the CLI can throttle console output.
// Implementations must be safe for concurrent use because optimize workers
// report from multiple goroutines.
type Observer interface {
	FeatureProcessed(count int)
	PacketProcessed(count int)
	Warning(msg string)
}

// Progress cadence: a line every 100 features while converting and every
// 1000 polylines while optimizing.
const (
	featureProgressEvery = 100
	packetProgressEvery  = 1000
)

// logObserver throttles progress events onto a zap logger.
type logObserver struct {
	log *zap.SugaredLogger
}

// NewLogObserver wraps a logger into the pipeline's default Observer.
func NewLogObserver(log *zap.SugaredLogger) Observer {
	return &logObserver{log: log}
}

func (o *logObserver) FeatureProcessed(count int) {
	if count%featureProgressEvery == 0 {
		o.log.Infof("processed %d features...", count)
	}
}

func (o *logObserver) PacketProcessed(count int) {
	if count%packetProgressEvery == 0 {
		o.log.Infof("optimized %d polylines...", count)
	}
}

func (o *logObserver) Warning(msg string) {
	o.log.Warn(msg)
}

// nopObserver discards every event.
type nopObserver struct{}

// NopObserver returns an Observer that ignores all events. Callers that do
// not care about progress pass it instead of wiring a logger.
func NopObserver() Observer {
	return nopObserver{}
}

func (nopObserver) FeatureProcessed(int) {}
func (nopObserver) PacketProcessed(int)  {}
func (nopObserver) Warning(string)       {}
