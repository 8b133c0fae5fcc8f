package studio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwestbrook/genstudio/internal/config"
	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// extensionByMIME maps the MIME types the model emits for generated images
// to artifact file extensions.
var extensionByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// GenerateImages runs an image-generation call, pairs each returned image
// with the caption text preceding it, and persists every artifact through
// the object store. Reference images, when given, are sent ahead of the
// prompt so edits and transformations see their source.
func (s *Service) GenerateImages(ctx context.Context, prompt string, referenceURIs []string, folder string) (domain.ImageGenerationResult, error) {
	segments := make([]genai.Segment, 0, len(referenceURIs)+1)
	for _, uri := range referenceURIs {
		segments = append(segments, genai.URISegment(uri, ""))
	}
	segments = append(segments, genai.TextSegment(prompt))

	req, err := genai.NewRequest(s.models.ModelFor(config.WorkloadImageGeneration), genai.Options{
		Temperature:  genai.FloatPtr(s.temps.Transformation),
		WantImages:   true,
		EnableSearch: true,
	}, segments...)
	if err != nil {
		return domain.ImageGenerationResult{}, fmt.Errorf("building image generation request: %w", err)
	}

	const task = "generate_images"
	started := time.Now()
	result, err := s.envelope.Invoke(ctx, task, req)
	if err != nil {
		s.record(ctx, task, req.Model, started, result, err)
		return domain.ImageGenerationResult{}, err
	}

	paired := genai.PairCaptions(result.Response)
	if len(paired) == 0 {
		// A call that produced no media counts as a failed generation.
		s.record(ctx, task, req.Model, started, result, genai.ErrEmptyResponse)
		return domain.ImageGenerationResult{}, genai.ErrEmptyResponse
	}
	s.record(ctx, task, req.Model, started, result, nil)

	batch := uuid.NewString()
	images := make([]domain.GeneratedImage, 0, len(paired))
	for i, cm := range paired {
		ext := extensionByMIME[cm.Media.MIMEType]
		if ext == "" {
			ext = ".png"
		}
		name := fmt.Sprintf("image_%s_%d%s", batch, i, ext)
		locator, saveErr := s.objects.Save(ctx, folder, name, cm.Media.MIMEType, cm.Media.Data)
		if saveErr != nil {
			return domain.ImageGenerationResult{}, fmt.Errorf("persisting generated image %d: %w", i, saveErr)
		}
		images = append(images, domain.GeneratedImage{
			Locator:  locator,
			Caption:  cm.Caption,
			MIMEType: cm.Media.MIMEType,
		})
	}

	return domain.ImageGenerationResult{
		Images:    images,
		Grounding: result.Response.Grounding,
		Elapsed:   time.Since(started),
	}, nil
}
