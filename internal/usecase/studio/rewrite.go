package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mwestbrook/genstudio/internal/genai"
)

// RewritePrompt asks the model to enrich a user prompt for image generation.
// An empty rewrite falls back to the original prompt so callers always get
// something usable.
func (s *Service) RewritePrompt(ctx context.Context, prompt string) (string, error) {
	req, err := genai.NewRequest(s.models.Default, genai.Options{
		System:      rewriterPrompt,
		Temperature: genai.FloatPtr(s.temps.Transformation),
	}, genai.TextSegment(prompt))
	if err != nil {
		return "", fmt.Errorf("building rewrite request: %w", err)
	}

	rewritten, err := s.invokeText(ctx, "rewrite_prompt", req)
	if errors.Is(err, genai.ErrEmptyResponse) {
		return prompt, nil
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(rewritten) == "" {
		return prompt, nil
	}
	return rewritten, nil
}
