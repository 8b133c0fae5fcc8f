package observability

import (
	"sync"
	"time"

	"github.com/mwestbrook/genstudio/internal/genai"
)

// Stats contains aggregate statistics across all model calls.
type Stats struct {
	TotalAttempts int
	TotalElapsed  time.Duration
	ErrorCount    int
	ByTask        map[string]TaskMetrics
}

// TaskMetrics contains per-task statistics.
type TaskMetrics struct {
	Attempts int
	Elapsed  time.Duration
	Errors   int
}

// Metrics provides thread-safe in-memory aggregation of attempt
// observations.
type Metrics struct {
	mu    sync.RWMutex
	stats Stats
}

// NewMetrics creates a metrics aggregator.
func NewMetrics() *Metrics {
	return &Metrics{stats: Stats{ByTask: make(map[string]TaskMetrics)}}
}

// RecordAttempt folds one observation into the aggregates.
func (m *Metrics) RecordAttempt(obs genai.Observation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.TotalAttempts++
	m.stats.TotalElapsed += obs.Elapsed
	if obs.Err != nil {
		m.stats.ErrorCount++
	}

	tm := m.stats.ByTask[obs.Task]
	tm.Attempts++
	tm.Elapsed += obs.Elapsed
	if obs.Err != nil {
		tm.Errors++
	}
	m.stats.ByTask[obs.Task] = tm
}

// GetStats returns a copy of current statistics.
func (m *Metrics) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statsCopy := Stats{
		TotalAttempts: m.stats.TotalAttempts,
		TotalElapsed:  m.stats.TotalElapsed,
		ErrorCount:    m.stats.ErrorCount,
		ByTask:        make(map[string]TaskMetrics, len(m.stats.ByTask)),
	}
	for task, tm := range m.stats.ByTask {
		statsCopy.ByTask[task] = tm
	}
	return statsCopy
}
