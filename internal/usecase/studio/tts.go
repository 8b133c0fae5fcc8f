package studio

import (
	"context"
	"fmt"

	"github.com/mwestbrook/genstudio/internal/config"
	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// EvaluateTTS scores a synthesized speech clip against the text and the
// delivery directions it was generated from.
func (s *Service) EvaluateTTS(ctx context.Context, audioURI, text, directions string) (domain.TTSEvaluation, error) {
	instruction := fmt.Sprintf(ttsEvaluationPrompt, text, directions)
	req, err := genai.BuildRequest(s.models.ModelFor(config.WorkloadAudioAnalysis), instruction, []string{audioURI}, genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Evaluation),
		ResponseFormat: genai.FormatJSON,
		Schema:         ttsEvaluationSchema,
	})
	if err != nil {
		return domain.TTSEvaluation{}, fmt.Errorf("building tts evaluation request: %w", err)
	}

	return invokeJSON[domain.TTSEvaluation](ctx, s, "evaluate_tts", req, ttsEvaluationSchema)
}
