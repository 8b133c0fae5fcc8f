package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

const critiqueMaxOutputTokens = 8192

// ImageCritique reviews a set of generated images against the prompt that
// produced them, in the voice of a magazine photo editor. Safety filtering
// is relaxed so the critique is not blocked by its own subject matter.
func (s *Service) ImageCritique(ctx context.Context, prompt string, imageURIs []string) (string, error) {
	instruction := fmt.Sprintf(magazineEditorPrompt, prompt)
	req, err := genai.BuildRequest(s.models.Default, instruction, imageURIs, genai.Options{
		Temperature:     genai.FloatPtr(s.temps.Evaluation),
		RelaxSafety:     true,
		MaxOutputTokens: critiqueMaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("building critique request: %w", err)
	}

	return s.invokeText(ctx, "image_critique", req)
}

// CritiqueQuestions derives five yes/no questions from a generation prompt.
// The questions are later put to the generated media by EvaluateMedia.
func (s *Service) CritiqueQuestions(ctx context.Context, prompt string) (domain.CritiqueQuestionList, error) {
	instruction := fmt.Sprintf(questionGenerationPrompt, prompt)
	req, err := genai.NewRequest(s.models.Default, genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Questions),
		ResponseFormat: genai.FormatJSON,
		Schema:         critiqueQuestionsSchema,
	}, genai.TextSegment(instruction))
	if err != nil {
		return domain.CritiqueQuestionList{}, fmt.Errorf("building question request: %w", err)
	}

	return invokeJSON[domain.CritiqueQuestionList](ctx, s, "critique_questions", req, critiqueQuestionsSchema)
}

// EvaluateMedia answers each critique question with yes or no for a single
// piece of generated media.
func (s *Service) EvaluateMedia(ctx context.Context, mediaURI string, questions []domain.CritiqueQuestion) (domain.EvaluationResult, error) {
	var b strings.Builder
	b.WriteString(evaluationPromptHeader)
	b.WriteString("\n\nQuestions:\n")
	for _, q := range questions {
		b.WriteString("- ")
		b.WriteString(q.Question)
		b.WriteString("\n")
	}

	req, err := genai.BuildRequest(s.models.Default, b.String(), []string{mediaURI}, genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Extraction),
		ResponseFormat: genai.FormatJSON,
		Schema:         evaluationSchema,
	})
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("building evaluation request: %w", err)
	}

	return invokeJSON[domain.EvaluationResult](ctx, s, "evaluate_media", req, evaluationSchema)
}
