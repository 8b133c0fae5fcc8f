// Package studio implements the generation tasks of the application: prompt
// rewriting, media description and critique, structured extraction, and
// image generation. Every task follows the same shape: build a multimodal
// request, run it through the invocation envelope, decode the response into
// its typed result, and record a call-analytics row.
package studio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mwestbrook/genstudio/internal/adapter/storage"
	"github.com/mwestbrook/genstudio/internal/config"
	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// Recorder persists call-analytics records.
type Recorder interface {
	RecordCall(ctx context.Context, record domain.CallRecord) error
}

// Warner receives non-fatal diagnostics. The observability logger satisfies
// it.
type Warner interface {
	LogWarning(message string)
}

// Service executes generation tasks against the invocation envelope.
type Service struct {
	envelope *genai.Envelope
	models   config.ModelsConfig
	temps    config.TemperatureConfig
	objects  storage.ObjectStore
	recorder Recorder
	warner   Warner
}

// NewService wires a task service. The object store is only needed by
// image generation; recorder and warner may be nil.
func NewService(
	envelope *genai.Envelope,
	models config.ModelsConfig,
	temps config.TemperatureConfig,
	objects storage.ObjectStore,
	recorder Recorder,
	warner Warner,
) *Service {
	return &Service{
		envelope: envelope,
		models:   models,
		temps:    temps,
		objects:  objects,
		recorder: recorder,
		warner:   warner,
	}
}

// invokeText runs one request through the envelope, decodes the free-text
// payload, and records the call including the decode outcome. The analytics
// write is fire-and-forget: a failed insert is logged as a warning and never
// fails the task.
func (s *Service) invokeText(ctx context.Context, task string, req genai.GenerationRequest) (string, error) {
	started := time.Now()
	result, err := s.envelope.Invoke(ctx, task, req)
	if err != nil {
		s.record(ctx, task, req.Model, started, result, err)
		return "", err
	}

	text, err := genai.DecodeText(result.Response)
	s.record(ctx, task, req.Model, started, result, err)
	return text, err
}

// invokeJSON is invokeText's structured counterpart: envelope call, schema
// decode into T, and one call record covering both. A schema violation or
// malformed payload is recorded as a failed call even though the transport
// round trip succeeded.
func invokeJSON[T any](ctx context.Context, s *Service, task string, req genai.GenerationRequest, schema *genai.SchemaDescriptor) (T, error) {
	started := time.Now()
	result, err := s.envelope.Invoke(ctx, task, req)
	if err != nil {
		var zero T
		s.record(ctx, task, req.Model, started, result, err)
		return zero, err
	}

	value, err := genai.DecodeJSON[T](result.Response, schema)
	s.record(ctx, task, req.Model, started, result, err)
	return value, err
}

func (s *Service) record(ctx context.Context, task, model string, started time.Time, result *genai.Result, err error) {
	if s.recorder == nil {
		return
	}

	record := domain.CallRecord{
		ID:        uuid.NewString(),
		Task:      task,
		Model:     model,
		Attempts:  1,
		Elapsed:   time.Since(started),
		Outcome:   "success",
		CreatedAt: time.Now(),
	}
	if result != nil {
		record.Attempts = result.Attempts
		record.Elapsed = result.Elapsed
	}
	if err != nil {
		record.Outcome = "failure"
		record.ErrorType = classifyError(err)
		var exhausted *genai.RetriesExhausted
		if errors.As(err, &exhausted) {
			record.Attempts = exhausted.Attempts
		}
	}

	if recordErr := s.recorder.RecordCall(ctx, record); recordErr != nil && s.warner != nil {
		s.warner.LogWarning("call record dropped: " + recordErr.Error())
	}
}

// classifyError maps the error taxonomy to the analytics error_type column.
func classifyError(err error) string {
	var transportErr *genai.TransportError
	var malformed *genai.MalformedJSONError
	var schemaErr *genai.SchemaValidationError

	switch {
	case errors.Is(err, genai.ErrEmptyResponse):
		return "empty_response"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &malformed):
		return "malformed_json"
	case errors.As(err, &schemaErr):
		return "schema_validation"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
