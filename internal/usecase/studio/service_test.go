package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestbrook/genstudio/internal/adapter/storage"
	"github.com/mwestbrook/genstudio/internal/config"
	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

func testModels() config.ModelsConfig {
	return config.ModelsConfig{
		Default:              "gemini-2.0-flash",
		ImageGeneration:      "gemini-2.0-flash-exp",
		AudioAnalysis:        "gemini-2.5-pro",
		CharacterConsistency: "gemini-2.5-flash",
	}
}

func testTemps() config.TemperatureConfig {
	return config.TemperatureConfig{
		Extraction:     0.1,
		Description:    0.2,
		Evaluation:     0.2,
		Questions:      0.5,
		Transformation: 0.8,
	}
}

// fastRetry keeps test runs instant when an operation fails through all
// attempts.
func fastRetry() genai.RetryConfig {
	retry := genai.DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	retry.MaxBackoff = time.Millisecond
	return retry
}

// newTestService builds a Service around a canned invoker. The invoker also
// captures the last request it saw so tests can assert on request shape.
func newTestService(t *testing.T, invoke func(req genai.GenerationRequest) (*genai.RawResponse, error)) (*Service, *capturedRequests) {
	t.Helper()
	captured := &capturedRequests{}
	invoker := genai.InvokerFunc(func(_ context.Context, req genai.GenerationRequest) (*genai.RawResponse, error) {
		captured.add(req)
		return invoke(req)
	})
	envelope := genai.NewEnvelope(invoker, fastRetry(), nil)
	svc := NewService(envelope, testModels(), testTemps(), storage.NewFileStore(t.TempDir()), nil, nil)
	return svc, captured
}

type capturedRequests struct {
	mu   sync.Mutex
	reqs []genai.GenerationRequest
}

func (c *capturedRequests) add(req genai.GenerationRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqs = append(c.reqs, req)
}

func (c *capturedRequests) last(t *testing.T) genai.GenerationRequest {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.reqs)
	return c.reqs[len(c.reqs)-1]
}

func textResponse(text string) *genai.RawResponse {
	return &genai.RawResponse{Parts: []genai.ResponsePart{{Text: text}}}
}

func TestRewritePrompt(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("  A lone oak at golden hour, backlit, 85mm.  "), nil
	})

	rewritten, err := svc.RewritePrompt(context.Background(), "a tree")
	require.NoError(t, err)
	assert.Equal(t, "A lone oak at golden hour, backlit, 85mm.", rewritten)

	req := captured.last(t)
	assert.Equal(t, "gemini-2.0-flash", req.Model)
	assert.NotEmpty(t, req.Options.System)
}

func TestRewritePromptEmptyFallsBack(t *testing.T) {
	svc, _ := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("   "), nil
	})

	rewritten, err := svc.RewritePrompt(context.Background(), "a tree")
	require.NoError(t, err)
	assert.Equal(t, "a tree", rewritten)
}

func TestRewritePromptWhitespaceOnlyMediaPresent(t *testing.T) {
	// A response carrying media but blank text decodes to an empty string;
	// the caller gets the original prompt back.
	svc, _ := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return &genai.RawResponse{Parts: []genai.ResponsePart{
			{Text: "   "},
			{Media: &genai.MediaPayload{Data: []byte{1}, MIMEType: "image/png"}},
		}}, nil
	})

	rewritten, err := svc.RewritePrompt(context.Background(), "a tree")
	require.NoError(t, err)
	assert.Equal(t, "a tree", rewritten)
}

func TestExtractRoomNames(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"rooms": [{"room_name": "Kitchen"}, {"room_name": "Bedroom 1"}]}`), nil
	})

	list, err := svc.ExtractRoomNames(context.Background(), "gs://plans/unit-4b.png")
	require.NoError(t, err)
	require.Len(t, list.Rooms, 2)
	assert.Equal(t, "Kitchen", list.Rooms[0].RoomName)

	req := captured.last(t)
	assert.Equal(t, genai.FormatJSON, req.Options.ResponseFormat)
	require.NotNil(t, req.Options.Temperature)
	assert.InDelta(t, 0.1, *req.Options.Temperature, 1e-9)
	require.Len(t, req.Segments, 2)
	assert.True(t, req.Segments[0].IsText())
	assert.Equal(t, "gs://plans/unit-4b.png", req.Segments[1].URI)
}

func TestExtractRoomNamesSchemaViolation(t *testing.T) {
	svc, _ := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"rooms": [{"name": "Kitchen"}]}`), nil
	})

	_, err := svc.ExtractRoomNames(context.Background(), "gs://plans/unit-4b.png")
	require.Error(t, err)
	var schemaErr *genai.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "rooms[0].room_name", schemaErr.Path)
}

func TestDescribeImage(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("A cat sleeps on a windowsill. Soft morning light fills the frame."), nil
	})

	desc, err := svc.DescribeImage(context.Background(), "gs://media/cat.jpg")
	require.NoError(t, err)
	assert.Contains(t, desc, "windowsill")

	req := captured.last(t)
	require.NotNil(t, req.Options.Temperature)
	assert.InDelta(t, 0.2, *req.Options.Temperature, 1e-9)
	require.Len(t, req.Segments, 2)
	assert.Equal(t, "image/png", req.Segments[1].MIMEType)
}

func TestDescribeVideoUsesVideoPrompt(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("A drone shot over a coastline."), nil
	})

	_, err := svc.DescribeVideo(context.Background(), "gs://media/clip.mp4")
	require.NoError(t, err)

	req := captured.last(t)
	require.Len(t, req.Segments, 2)
	assert.Contains(t, req.Segments[0].Text, "video")
	assert.Equal(t, "video/mp4", req.Segments[1].MIMEType)
}

func TestGenerateText(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("The receipt totals $42.17."), nil
	})

	text, err := svc.GenerateText(context.Background(), "What is the total on this receipt?", []string{"gs://docs/receipt.jpg"})
	require.NoError(t, err)
	assert.Contains(t, text, "42.17")

	req := captured.last(t)
	// Free-form generation leaves sampling to the provider.
	assert.Nil(t, req.Options.Temperature)
	require.Len(t, req.Segments, 2)
	assert.Equal(t, "What is the total on this receipt?", req.Segments[0].Text)
	assert.Equal(t, "gs://docs/receipt.jpg", req.Segments[1].URI)
}

func TestAnalyzeAudio(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{
			"audio-analysis": "A slow-building ambient piece with tape-saturated pads.",
			"genre-quality": ["ambient", "lo-fi"],
			"prompt-alignment": "Matches the requested late-night mood closely."
		}`), nil
	})

	analysis, err := svc.AnalyzeAudio(context.Background(), "gs://media/track.wav", "late night ambient")
	require.NoError(t, err)
	assert.Contains(t, analysis.AudioAnalysis, "ambient")
	assert.Equal(t, []string{"ambient", "lo-fi"}, analysis.GenreQuality)

	req := captured.last(t)
	assert.Equal(t, "gemini-2.5-pro", req.Model)
	assert.True(t, req.Options.RelaxSafety)
	assert.NotEmpty(t, req.Options.System)
	assert.Contains(t, req.Segments[0].Text, "late night ambient")
}

func TestImageCritique(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("The set holds together, though the second frame is underexposed."), nil
	})

	critique, err := svc.ImageCritique(context.Background(), "a red barn", []string{"gs://out/a.png", "gs://out/b.png"})
	require.NoError(t, err)
	assert.Contains(t, critique, "underexposed")

	req := captured.last(t)
	assert.True(t, req.Options.RelaxSafety)
	assert.Equal(t, critiqueMaxOutputTokens, req.Options.MaxOutputTokens)
	require.Len(t, req.Segments, 3)
	assert.Contains(t, req.Segments[0].Text, "a red barn")
}

func TestCritiqueQuestionsCountEnforced(t *testing.T) {
	svc, _ := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"questions": [{"question": "Is there a barn?"}, {"question": "Is it red?"}]}`), nil
	})

	_, err := svc.CritiqueQuestions(context.Background(), "a red barn")
	require.Error(t, err)
	var schemaErr *genai.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "questions", schemaErr.Path)
}

func TestEvaluateMedia(t *testing.T) {
	questions := []domain.CritiqueQuestion{
		{Question: "Is there a barn?"},
		{Question: "Is it red?"},
	}
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"answers": [
			{"question": "Is there a barn?", "answer": true},
			{"question": "Is it red?", "answer": false}
		]}`), nil
	})

	result, err := svc.EvaluateMedia(context.Background(), "gs://out/a.png", questions)
	require.NoError(t, err)
	require.Len(t, result.Answers, 2)
	assert.True(t, result.Answers[0].Answer)
	assert.False(t, result.Answers[1].Answer)

	req := captured.last(t)
	prompt := req.Segments[0].Text
	assert.Contains(t, prompt, "Is there a barn?")
	assert.Contains(t, prompt, "Is it red?")
	require.NotNil(t, req.Options.Temperature)
	assert.InDelta(t, 0.1, *req.Options.Temperature, 1e-9)
}

func TestTransformationPrompts(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"transformations": [
			{"title": "Winter Scene", "prompt": "Cover everything in fresh snow."},
			{"title": "Oil Painting", "prompt": "Render as a thick impasto oil painting."},
			{"title": "Night Shift", "prompt": "Relight the scene as a moonlit night."}
		]}`), nil
	})

	prompts, err := svc.TransformationPrompts(context.Background(), []string{"gs://in/photo.jpg"})
	require.NoError(t, err)
	require.Len(t, prompts.Transformations, 3)
	assert.Equal(t, "Winter Scene", prompts.Transformations[0].Title)

	req := captured.last(t)
	require.NotNil(t, req.Options.Temperature)
	assert.InDelta(t, 0.8, *req.Options.Temperature, 1e-9)
}

func TestEvaluateTTS(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"quality_score": 87, "justification": "Clear and well paced.", "key_tags": ["warm", "measured"]}`), nil
	})

	eval, err := svc.EvaluateTTS(context.Background(), "gs://tts/clip.wav", "Welcome aboard.", "warm, unhurried")
	require.NoError(t, err)
	assert.Equal(t, 87, eval.QualityScore)
	assert.Equal(t, []string{"warm", "measured"}, eval.KeyTags)

	req := captured.last(t)
	assert.Equal(t, "gemini-2.5-pro", req.Model)
	assert.Contains(t, req.Segments[0].Text, "Welcome aboard.")
	assert.Contains(t, req.Segments[0].Text, "warm, unhurried")
}

func TestEvaluateTTSScoreOutOfRange(t *testing.T) {
	svc, _ := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"quality_score": 140, "justification": "x", "key_tags": []}`), nil
	})

	_, err := svc.EvaluateTTS(context.Background(), "gs://tts/clip.wav", "hi", "flat")
	require.Error(t, err)
	var schemaErr *genai.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "quality_score", schemaErr.Path)
}

func TestGenerateImages(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return &genai.RawResponse{
			Parts: []genai.ResponsePart{
				{Text: "A red barn at dawn."},
				{Media: &genai.MediaPayload{Data: png, MIMEType: "image/png"}},
				{Text: "The same barn, closer."},
				{Media: &genai.MediaPayload{Data: png, MIMEType: ""}},
			},
			Grounding: map[string]any{"webSearchQueries": []any{"red barn"}},
		}, nil
	})

	result, err := svc.GenerateImages(context.Background(), "a red barn", nil, "session-1")
	require.NoError(t, err)
	require.Len(t, result.Images, 2)
	assert.Equal(t, "A red barn at dawn.", result.Images[0].Caption)
	assert.Equal(t, "The same barn, closer.", result.Images[1].Caption)
	assert.Equal(t, "image/png", result.Images[1].MIMEType)
	for _, img := range result.Images {
		assert.True(t, strings.HasSuffix(img.Locator, ".png"), img.Locator)
	}
	assert.Contains(t, result.Grounding, "webSearchQueries")
	assert.Greater(t, result.Elapsed, time.Duration(0))

	req := captured.last(t)
	assert.Equal(t, "gemini-2.0-flash-exp", req.Model)
	assert.True(t, req.Options.WantImages)
	assert.True(t, req.Options.EnableSearch)
}

func TestGenerateImagesReferenceOrder(t *testing.T) {
	svc, captured := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return &genai.RawResponse{Parts: []genai.ResponsePart{
			{Media: &genai.MediaPayload{Data: []byte{1}, MIMEType: "image/png"}},
		}}, nil
	})

	_, err := svc.GenerateImages(context.Background(), "make it snow", []string{"gs://in/a.png", "gs://in/b.png"}, "s")
	require.NoError(t, err)

	req := captured.last(t)
	require.Len(t, req.Segments, 3)
	assert.Equal(t, "gs://in/a.png", req.Segments[0].URI)
	assert.Equal(t, "gs://in/b.png", req.Segments[1].URI)
	assert.Equal(t, "make it snow", req.Segments[2].Text)
}

func TestGenerateImagesNoMedia(t *testing.T) {
	svc, _ := newTestService(t, func(genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("I cannot generate that image."), nil
	})

	_, err := svc.GenerateImages(context.Background(), "a red barn", nil, "s")
	require.Error(t, err)
	assert.ErrorIs(t, err, genai.ErrEmptyResponse)
}

type memoryRecorder struct {
	mu      sync.Mutex
	records []domain.CallRecord
	fail    bool
}

func (m *memoryRecorder) RecordCall(_ context.Context, record domain.CallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("db locked")
	}
	m.records = append(m.records, record)
	return nil
}

type memoryWarner struct {
	mu       sync.Mutex
	warnings []string
}

func (m *memoryWarner) LogWarning(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, message)
}

func TestCallRecording(t *testing.T) {
	recorder := &memoryRecorder{}
	invoker := genai.InvokerFunc(func(context.Context, genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("rewritten"), nil
	})
	envelope := genai.NewEnvelope(invoker, fastRetry(), nil)
	svc := NewService(envelope, testModels(), testTemps(), nil, recorder, nil)

	_, err := svc.RewritePrompt(context.Background(), "a tree")
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, "rewrite_prompt", record.Task)
	assert.Equal(t, "gemini-2.0-flash", record.Model)
	assert.Equal(t, 1, record.Attempts)
	assert.Equal(t, "success", record.Outcome)
	assert.NotEmpty(t, record.ID)
}

func TestCallRecordingFailureClassified(t *testing.T) {
	recorder := &memoryRecorder{}
	invoker := genai.InvokerFunc(func(context.Context, genai.GenerationRequest) (*genai.RawResponse, error) {
		return nil, genai.NewTransportError(503, "overloaded", true)
	})
	envelope := genai.NewEnvelope(invoker, fastRetry(), nil)
	svc := NewService(envelope, testModels(), testTemps(), nil, recorder, nil)

	_, err := svc.RewritePrompt(context.Background(), "a tree")
	require.Error(t, err)

	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, "failure", record.Outcome)
	assert.Equal(t, "transport", record.ErrorType)
	assert.Equal(t, 3, record.Attempts)
}

func TestCallRecordingSchemaViolationRecordedAsFailure(t *testing.T) {
	// The transport round trip succeeds but the payload violates the schema:
	// the call is still recorded, as a failure with the decode error class.
	recorder := &memoryRecorder{}
	invoker := genai.InvokerFunc(func(context.Context, genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse(`{"rooms": [{"name": "Kitchen"}]}`), nil
	})
	envelope := genai.NewEnvelope(invoker, fastRetry(), nil)
	svc := NewService(envelope, testModels(), testTemps(), nil, recorder, nil)

	_, err := svc.ExtractRoomNames(context.Background(), "gs://plans/unit-4b.png")
	require.Error(t, err)

	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, "failure", record.Outcome)
	assert.Equal(t, "schema_validation", record.ErrorType)
	assert.Equal(t, 1, record.Attempts)
}

func TestCallRecordingGenerateImagesNoMedia(t *testing.T) {
	// A generation call that returned only text produced no usable image;
	// analytics should show a failed call, not a success with zero outputs.
	recorder := &memoryRecorder{}
	invoker := genai.InvokerFunc(func(context.Context, genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("I cannot generate that image."), nil
	})
	envelope := genai.NewEnvelope(invoker, fastRetry(), nil)
	svc := NewService(envelope, testModels(), testTemps(), storage.NewFileStore(t.TempDir()), recorder, nil)

	_, err := svc.GenerateImages(context.Background(), "a red barn", nil, "s")
	require.Error(t, err)

	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, "generate_images", record.Task)
	assert.Equal(t, "failure", record.Outcome)
	assert.Equal(t, "empty_response", record.ErrorType)
}

func TestCallRecordingInsertFailureWarnsOnly(t *testing.T) {
	recorder := &memoryRecorder{fail: true}
	warner := &memoryWarner{}
	invoker := genai.InvokerFunc(func(context.Context, genai.GenerationRequest) (*genai.RawResponse, error) {
		return textResponse("ok"), nil
	})
	envelope := genai.NewEnvelope(invoker, fastRetry(), nil)
	svc := NewService(envelope, testModels(), testTemps(), nil, recorder, warner)

	_, err := svc.RewritePrompt(context.Background(), "a tree")
	require.NoError(t, err)
	require.Len(t, warner.warnings, 1)
	assert.Contains(t, warner.warnings[0], "call record dropped")
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty response", genai.ErrEmptyResponse, "empty_response"},
		{"transport", genai.NewTransportError(500, "boom", true), "transport"},
		{"malformed json", &genai.MalformedJSONError{Cause: errors.New("bad")}, "malformed_json"},
		{"schema", &genai.SchemaValidationError{Path: "x", Reason: "missing"}, "schema_validation"},
		{"canceled", context.Canceled, "canceled"},
		{"other", errors.New("surprise"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyError(tt.err))
		})
	}
}
