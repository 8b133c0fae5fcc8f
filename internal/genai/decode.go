package genai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// fallbackMIMEType is assumed for media payloads that arrive without a
// declared type. The model service omits it for inline images.
const fallbackMIMEType = "image/png"

// MediaPayload is one inline media artifact produced by the model.
type MediaPayload struct {
	Data     []byte
	MIMEType string
}

// ResponsePart is one element of the ordered response stream: either a text
// fragment or a media payload.
type ResponsePart struct {
	Text  string
	Media *MediaPayload
}

// RawResponse is the provider-agnostic result of a single successful call.
// Each attempt produces a fresh instance; it is owned exclusively by the
// call that produced it.
type RawResponse struct {
	Parts     []ResponsePart
	Grounding map[string]any
}

// Text returns the concatenation of all text parts in stream order.
func (r *RawResponse) Text() string {
	var b strings.Builder
	for _, part := range r.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// Media returns the media payloads in stream order.
func (r *RawResponse) Media() []MediaPayload {
	var media []MediaPayload
	for _, part := range r.Parts {
		if part.Media != nil {
			media = append(media, *part.Media)
		}
	}
	return media
}

// DecodeText extracts the trimmed free-text payload. It fails with
// ErrEmptyResponse when the response carries neither text nor media.
func DecodeText(raw *RawResponse) (string, error) {
	text := strings.TrimSpace(raw.Text())
	if text == "" && len(raw.Media()) == 0 {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Matches a ```json (or bare ```) fenced block. Greedy to the last fence so
// code examples nested inside string values do not cut the block short.
var jsonFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*([\\s\\S]*)```")

// extractJSONText strips a markdown code fence if the model wrapped its JSON
// in one, otherwise returns the trimmed text unchanged.
func extractJSONText(text string) string {
	matches := jsonFenceRegex.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return strings.TrimSpace(text)
}

// DecodeJSON parses the response text as JSON, validates it structurally
// against the schema descriptor, and unmarshals it into T.
//
// Parse failures are retried once through jsonrepair before giving up, which
// recovers the usual model sins (single quotes, trailing commas, unquoted
// keys). Failure classes, in order of detection: ErrEmptyResponse,
// *MalformedJSONError, *SchemaValidationError.
func DecodeJSON[T any](raw *RawResponse, schema *SchemaDescriptor) (T, error) {
	var result T

	text := extractJSONText(raw.Text())
	if text == "" {
		return result, ErrEmptyResponse
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return result, &MalformedJSONError{Cause: err}
		}
		if err := json.Unmarshal([]byte(repaired), &decoded); err != nil {
			return result, &MalformedJSONError{Cause: err}
		}
		text = repaired
	}

	if !schema.IsEmpty() {
		if err := schema.Validate(decoded); err != nil {
			return result, err
		}
	}

	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return result, &MalformedJSONError{Cause: err}
	}
	return result, nil
}

// CaptionedMedia pairs a media payload with the caption text that
// immediately preceded it in the response stream.
type CaptionedMedia struct {
	Caption string
	Media   MediaPayload
}

// PairCaptions reconstructs the ordered (caption, media) association from an
// interleaved text/media response. It folds over the parts carrying a
// caption accumulator: text accumulates, each media payload claims the
// accumulated caption and resets the buffer. Payloads without a declared
// MIME type default to image/png rather than failing.
func PairCaptions(raw *RawResponse) []CaptionedMedia {
	var paired []CaptionedMedia
	caption := ""

	for _, part := range raw.Parts {
		if part.Text != "" {
			caption += part.Text
			continue
		}
		if part.Media == nil {
			continue
		}
		media := *part.Media
		if media.MIMEType == "" {
			media.MIMEType = fallbackMIMEType
		}
		paired = append(paired, CaptionedMedia{
			Caption: strings.TrimSpace(caption),
			Media:   media,
		})
		caption = ""
	}
	return paired
}
