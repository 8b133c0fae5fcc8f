package observability

import (
	"context"

	"github.com/mwestbrook/genstudio/internal/genai"
)

// Sink fans attempt observations out to the logger and the metrics
// aggregator. It implements genai.Observer and is fire-and-forget: it never
// blocks on I/O errors and never fails the caller.
type Sink struct {
	logger  *CallLogger
	metrics *Metrics
}

// NewSink creates an observation sink. Either component may be nil.
func NewSink(logger *CallLogger, metrics *Metrics) *Sink {
	return &Sink{logger: logger, metrics: metrics}
}

// ObserveAttempt implements genai.Observer.
func (s *Sink) ObserveAttempt(_ context.Context, obs genai.Observation) {
	if s.metrics != nil {
		s.metrics.RecordAttempt(obs)
	}
	if s.logger != nil {
		s.logger.LogAttempt(obs)
	}
}
