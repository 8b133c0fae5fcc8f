package studio

import (
	"context"
	"fmt"

	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// ExtractRoomNames analyzes a floor plan image and returns the labeled
// rooms it contains.
func (s *Service) ExtractRoomNames(ctx context.Context, floorPlanURI string) (domain.RoomList, error) {
	req, err := genai.BuildRequest(s.models.Default, roomExtractionPrompt, []string{floorPlanURI}, genai.Options{
		Temperature:    genai.FloatPtr(s.temps.Extraction),
		ResponseFormat: genai.FormatJSON,
		Schema:         roomListSchema,
	})
	if err != nil {
		return domain.RoomList{}, fmt.Errorf("building room extraction request: %w", err)
	}

	return invokeJSON[domain.RoomList](ctx, s, "extract_room_names", req, roomListSchema)
}
