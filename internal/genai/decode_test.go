package genai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestbrook/genstudio/internal/genai"
)

func textResponse(text string) *genai.RawResponse {
	return &genai.RawResponse{Parts: []genai.ResponsePart{{Text: text}}}
}

type roomList struct {
	Rooms []struct {
		RoomName string `json:"room_name"`
	} `json:"rooms"`
}

func TestDecodeText(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		text, err := genai.DecodeText(textResponse("  a critique\n"))
		require.NoError(t, err)
		assert.Equal(t, "a critique", text)
	})

	t.Run("empty text and no media fails", func(t *testing.T) {
		_, err := genai.DecodeText(textResponse("   "))
		assert.ErrorIs(t, err, genai.ErrEmptyResponse)
	})

	t.Run("media-only response is not empty", func(t *testing.T) {
		raw := &genai.RawResponse{Parts: []genai.ResponsePart{
			{Media: &genai.MediaPayload{Data: []byte{0x1}, MIMEType: "image/png"}},
		}}
		text, err := genai.DecodeText(raw)
		require.NoError(t, err)
		assert.Equal(t, "", text)
	})
}

func TestDecodeJSON_RoundTrip(t *testing.T) {
	payload := `{"rooms":[{"room_name":"Living Room"},{"room_name":"Bedroom 1"}]}`

	result, err := genai.DecodeJSON[roomList](textResponse(payload), roomListSchema())
	require.NoError(t, err)

	require.Len(t, result.Rooms, 2)
	assert.Equal(t, "Living Room", result.Rooms[0].RoomName)
	assert.Equal(t, "Bedroom 1", result.Rooms[1].RoomName)
}

func TestDecodeJSON_StripsMarkdownFence(t *testing.T) {
	payload := "```json\n{\"rooms\":[{\"room_name\":\"Kitchen\"}]}\n```"

	result, err := genai.DecodeJSON[roomList](textResponse(payload), roomListSchema())
	require.NoError(t, err)
	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "Kitchen", result.Rooms[0].RoomName)
}

func TestDecodeJSON_RepairsSloppyJSON(t *testing.T) {
	// Single quotes and a trailing comma, the usual model output sins.
	payload := `{'rooms': [{'room_name': 'Kitchen'},]}`

	result, err := genai.DecodeJSON[roomList](textResponse(payload), roomListSchema())
	require.NoError(t, err)
	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "Kitchen", result.Rooms[0].RoomName)
}

func TestDecodeJSON_EmptyResponse(t *testing.T) {
	_, err := genai.DecodeJSON[roomList](textResponse(""), roomListSchema())
	assert.ErrorIs(t, err, genai.ErrEmptyResponse)
}

func TestDecodeJSON_MalformedJSON(t *testing.T) {
	_, err := genai.DecodeJSON[roomList](textResponse("the model apologizes instead of answering"), roomListSchema())

	var malformed *genai.MalformedJSONError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecodeJSON_SchemaViolation(t *testing.T) {
	_, err := genai.DecodeJSON[roomList](textResponse(`{"rooms":[{}]}`), roomListSchema())

	var schemaErr *genai.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "rooms[0].room_name", schemaErr.Path)
}

func TestPairCaptions(t *testing.T) {
	media1 := &genai.MediaPayload{Data: []byte{0x1}, MIMEType: "image/png"}
	media2 := &genai.MediaPayload{Data: []byte{0x2}, MIMEType: "image/jpeg"}

	raw := &genai.RawResponse{Parts: []genai.ResponsePart{
		{Text: "A"},
		{Media: media1},
		{Text: "B"},
		{Media: media2},
	}}

	paired := genai.PairCaptions(raw)
	require.Len(t, paired, 2)

	assert.Equal(t, "A", paired[0].Caption)
	assert.Equal(t, []byte{0x1}, paired[0].Media.Data)
	assert.Equal(t, "B", paired[1].Caption)
	assert.Equal(t, []byte{0x2}, paired[1].Media.Data)
}

func TestPairCaptions_AccumulatesAndResets(t *testing.T) {
	raw := &genai.RawResponse{Parts: []genai.ResponsePart{
		{Text: "first "},
		{Text: "part"},
		{Media: &genai.MediaPayload{Data: []byte{0x1}, MIMEType: "image/png"}},
		{Media: &genai.MediaPayload{Data: []byte{0x2}, MIMEType: "image/png"}},
		{Text: "trailing text claims nothing"},
	}}

	paired := genai.PairCaptions(raw)
	require.Len(t, paired, 2)

	// Multiple text parts accumulate into one caption.
	assert.Equal(t, "first part", paired[0].Caption)
	// The buffer was claimed by the first payload; the second gets none.
	assert.Equal(t, "", paired[1].Caption)
}

func TestPairCaptions_DefaultsMissingMIMEType(t *testing.T) {
	raw := &genai.RawResponse{Parts: []genai.ResponsePart{
		{Media: &genai.MediaPayload{Data: []byte{0x1}}},
	}}

	paired := genai.PairCaptions(raw)
	require.Len(t, paired, 1)
	assert.Equal(t, "image/png", paired[0].Media.MIMEType)
}

func TestRawResponseAccessors(t *testing.T) {
	raw := &genai.RawResponse{Parts: []genai.ResponsePart{
		{Text: "a"},
		{Media: &genai.MediaPayload{Data: []byte{0x1}, MIMEType: "image/png"}},
		{Text: "b"},
	}}

	assert.Equal(t, "ab", raw.Text())
	assert.Len(t, raw.Media(), 1)
}
