// Package errmetrics tracks in-process error counts by source and kind so
// the admin HTTP surface can report them without touching a database.
package errmetrics

import (
	"sync"
	"time"

	"github.com/Aharonba/mstnet/internal/logger"
)

var log = logger.WithComponent("errmetrics")

// Metrics tracks error statistics across the server's lifetime.
type Metrics struct {
	mu             sync.RWMutex
	TotalErrors    int64
	ErrorsByKind   map[string]int64
	ErrorsBySource map[string]int64
	LastError      time.Time
	LastErrorMsg   string
	startTime      time.Time
}

// New creates an empty error metrics tracker.
func New() *Metrics {
	return &Metrics{
		ErrorsByKind:   make(map[string]int64),
		ErrorsBySource: make(map[string]int64),
		startTime:      time.Now(),
	}
}

// Record registers one error occurrence. source names the component
// (e.g. "listener", "handler"); kind names the failure category
// (e.g. "accept", "unsupported-algorithm", "solve").
func (m *Metrics) Record(source, kind string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalErrors++
	m.ErrorsByKind[kind]++
	m.ErrorsBySource[source]++
	m.LastError = time.Now()
	if err != nil {
		m.LastErrorMsg = err.Error()
	}

	log.Debug("error recorded: source=%s, kind=%s, total=%d", source, kind, m.TotalErrors)
}

// Stats is a point-in-time snapshot of Metrics, safe to serialize.
type Stats struct {
	TotalErrors    int64
	ErrorsByKind   map[string]int64
	ErrorsBySource map[string]int64
	LastError      time.Time
	LastErrorMsg   string
	Uptime         time.Duration
	ErrorRate      float64 // errors per minute
}

// Snapshot returns the current statistics.
func (m *Metrics) Snapshot() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byKind := make(map[string]int64, len(m.ErrorsByKind))
	for k, v := range m.ErrorsByKind {
		byKind[k] = v
	}
	bySource := make(map[string]int64, len(m.ErrorsBySource))
	for k, v := range m.ErrorsBySource {
		bySource[k] = v
	}

	return Stats{
		TotalErrors:    m.TotalErrors,
		ErrorsByKind:   byKind,
		ErrorsBySource: bySource,
		LastError:      m.LastError,
		LastErrorMsg:   m.LastErrorMsg,
		Uptime:         time.Since(m.startTime),
		ErrorRate:      m.errorRate(),
	}
}

func (m *Metrics) errorRate() float64 {
	uptime := time.Since(m.startTime)
	if uptime == 0 {
		return 0
	}
	return float64(m.TotalErrors) / uptime.Minutes()
}
