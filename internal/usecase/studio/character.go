package studio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwestbrook/genstudio/internal/config"
	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// Character-consistency tasks: build a structured facial profile from a
// reference photo, turn it into prose a generation model can use, compose
// a scene prompt around it, and judge which generated candidate matches
// the person best.

// FacialCompositeProfile extracts a structured facial profile from a
// reference photo of a person.
func (s *Service) FacialCompositeProfile(ctx context.Context, image []byte) (domain.FacialCompositeProfile, error) {
	req, err := genai.NewRequest(s.models.ModelFor(config.WorkloadCharacterConsistency), genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Extraction),
		ResponseFormat: genai.FormatJSON,
		Schema:         facialProfileSchema,
	},
		genai.TextSegment(facialProfilePrompt),
		genai.BytesSegment(image, "image/png"),
	)
	if err != nil {
		return domain.FacialCompositeProfile{}, fmt.Errorf("building facial profile request: %w", err)
	}

	return invokeJSON[domain.FacialCompositeProfile](ctx, s, "facial_composite_profile", req, facialProfileSchema)
}

// NaturalLanguageDescription renders a facial profile as prose suitable for
// an image generation prompt.
func (s *Service) NaturalLanguageDescription(ctx context.Context, profile domain.FacialCompositeProfile) (string, error) {
	encoded, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding facial profile: %w", err)
	}

	req, err := genai.NewRequest(s.models.ModelFor(config.WorkloadCharacterConsistency), genai.Options{
		Temperature: genai.FloatPtr(s.temps.Description),
	},
		genai.TextSegment(fmt.Sprintf(profileDescriptionPrompt, encoded)),
	)
	if err != nil {
		return "", fmt.Errorf("building profile description request: %w", err)
	}

	return s.invokeText(ctx, "natural_language_description", req)
}

// FinalScenePrompt merges a person description with the scene the user asked
// for and returns a ready-to-use generation prompt plus a negative prompt.
func (s *Service) FinalScenePrompt(ctx context.Context, personDescription, scene string) (domain.GeneratedPrompts, error) {
	req, err := genai.NewRequest(s.models.ModelFor(config.WorkloadCharacterConsistency), genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Transformation),
		ResponseFormat: genai.FormatJSON,
		Schema:         generatedPromptsSchema,
	},
		genai.TextSegment(fmt.Sprintf(scenePromptTemplate, personDescription, scene)),
	)
	if err != nil {
		return domain.GeneratedPrompts{}, fmt.Errorf("building scene prompt request: %w", err)
	}

	return invokeJSON[domain.GeneratedPrompts](ctx, s, "final_scene_prompt", req, generatedPromptsSchema)
}

// SelectBestImage asks the model which generated candidate best matches the
// person shown in the real reference photos. Candidates carry a locator so
// the model can name its pick.
func (s *Service) SelectBestImage(ctx context.Context, realImages [][]byte, candidates []domain.ImageCandidate) (domain.BestImage, error) {
	if len(realImages) == 0 {
		return domain.BestImage{}, fmt.Errorf("at least one real reference image is required")
	}
	if len(candidates) == 0 {
		return domain.BestImage{}, fmt.Errorf("at least one generated candidate is required")
	}

	segments := []genai.Segment{
		genai.TextSegment(bestImageIntroPrompt),
		genai.TextSegment(bestImageTaskPrompt),
		genai.TextSegment(realImagesMarker),
	}
	for _, image := range realImages {
		segments = append(segments, genai.BytesSegment(image, "image/png"))
	}
	segments = append(segments, genai.TextSegment(generatedImagesMarker))
	for _, candidate := range candidates {
		segments = append(segments,
			genai.TextSegment(fmt.Sprintf("Image path: %s", candidate.Locator)),
			genai.BytesSegment(candidate.Data, "image/png"),
		)
	}

	req, err := genai.NewRequest(s.models.ModelFor(config.WorkloadCharacterConsistency), genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Evaluation),
		ResponseFormat: genai.FormatJSON,
		Schema:         bestImageSchema,
	}, segments...)
	if err != nil {
		return domain.BestImage{}, fmt.Errorf("building image selection request: %w", err)
	}

	return invokeJSON[domain.BestImage](ctx, s, "select_best_image", req, bestImageSchema)
}
