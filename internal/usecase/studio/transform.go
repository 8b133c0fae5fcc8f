package studio

import (
	"context"
	"fmt"

	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// TransformationPrompts suggests three image transformations for a set of
// input images. Runs hot so the suggestions stay interesting.
func (s *Service) TransformationPrompts(ctx context.Context, imageURIs []string) (domain.TransformationPrompts, error) {
	req, err := genai.BuildRequest(s.models.Default, transformationPrompt, imageURIs, genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Transformation),
		ResponseFormat: genai.FormatJSON,
		Schema:         transformationPromptsSchema,
	})
	if err != nil {
		return domain.TransformationPrompts{}, fmt.Errorf("building transformation request: %w", err)
	}

	return invokeJSON[domain.TransformationPrompts](ctx, s, "transformation_prompts", req, transformationPromptsSchema)
}
