package studio

import (
	"context"
	"fmt"

	"github.com/mwestbrook/genstudio/internal/config"
	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// DescribeImage returns a two-sentence description of an image.
func (s *Service) DescribeImage(ctx context.Context, imageURI string) (string, error) {
	return s.describe(ctx, "describe_image", describeImagePrompt, imageURI)
}

// DescribeVideo returns a two-sentence description of a video clip.
func (s *Service) DescribeVideo(ctx context.Context, videoURI string) (string, error) {
	return s.describe(ctx, "describe_video", describeVideoPrompt, videoURI)
}

func (s *Service) describe(ctx context.Context, task, prompt, mediaURI string) (string, error) {
	req, err := genai.BuildRequest(s.models.Default, prompt, []string{mediaURI}, genai.Options{
		Temperature: genai.FloatPtr(s.temps.Description),
	})
	if err != nil {
		return "", fmt.Errorf("building %s request: %w", task, err)
	}

	return s.invokeText(ctx, task, req)
}

// GenerateText runs an arbitrary prompt with optional media attachments and
// returns the free-text response. The workhorse behind ad-hoc prompting:
// no temperature is forced, so the provider default applies.
func (s *Service) GenerateText(ctx context.Context, prompt string, attachments []string) (string, error) {
	req, err := genai.BuildRequest(s.models.Default, prompt, attachments, genai.Options{})
	if err != nil {
		return "", fmt.Errorf("building text request: %w", err)
	}

	return s.invokeText(ctx, "generate_text", req)
}

// AnalyzeAudio critiques a generated music clip against the prompt that
// produced it. The model is steered with a music-critic persona and safety
// filtering is relaxed so lyrical content does not get blocked.
func (s *Service) AnalyzeAudio(ctx context.Context, audioURI, originalPrompt string) (domain.AudioAnalysis, error) {
	instruction := fmt.Sprintf(audioAnalysisPrompt, originalPrompt)
	req, err := genai.BuildRequest(s.models.ModelFor(config.WorkloadAudioAnalysis), instruction, []string{audioURI}, genai.Options{
		System:         musicCriticSystemPrompt,
		Temperature:    genai.FloatPtr(s.temps.Evaluation),
		ResponseFormat: genai.FormatJSON,
		Schema:         audioAnalysisSchema,
		RelaxSafety:    true,
	})
	if err != nil {
		return domain.AudioAnalysis{}, fmt.Errorf("building audio analysis request: %w", err)
	}

	return invokeJSON[domain.AudioAnalysis](ctx, s, "analyze_audio", req, audioAnalysisSchema)
}
