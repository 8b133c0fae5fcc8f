package genai

import "fmt"

// ResponseFormat selects how the model is asked to shape its output.
type ResponseFormat int

const (
	// FormatText requests free-form text output.
	FormatText ResponseFormat = iota
	// FormatJSON requests JSON output conforming to a schema descriptor.
	FormatJSON
)

// Segment is one atomic unit of a multimodal request: a text block, a media
// reference, or an inline byte payload. Segment order is semantically
// significant; interleaved text and media form one logical turn.
type Segment struct {
	Text     string // text segments
	URI      string // media references
	Data     []byte // inline payloads
	MIMEType string // media and inline segments only
}

// IsText reports whether the segment is a text block.
func (s Segment) IsText() bool { return s.URI == "" && s.Data == nil }

// TextSegment builds a text segment.
func TextSegment(text string) Segment {
	return Segment{Text: text}
}

// URISegment builds a media-reference segment. When mimeType is empty it is
// inferred from the locator's suffix.
func URISegment(uri, mimeType string) Segment {
	if mimeType == "" {
		mimeType = InferMediaKind(uri).MIMEType()
	}
	return Segment{URI: uri, MIMEType: mimeType}
}

// BytesSegment builds an inline payload segment.
func BytesSegment(data []byte, mimeType string) Segment {
	return Segment{Data: data, MIMEType: mimeType}
}

// Options holds the recognized generation options for a single call.
// Temperature is a pointer so an explicit 0 (deterministic output) stays
// distinguishable from "not set, use the provider default".
type Options struct {
	Temperature     *float64
	ResponseFormat  ResponseFormat
	Schema          *SchemaDescriptor
	System          string
	RelaxSafety     bool
	MaxOutputTokens int
	EnableSearch    bool
	WantImages      bool
}

// GenerationRequest is a self-contained, provider-agnostic request payload.
// It is constructed fresh per call, must not be mutated after construction,
// and is discarded once the call completes.
type GenerationRequest struct {
	Model    string
	Segments []Segment
	Options  Options
}

// NewRequest assembles a request from explicitly ordered segments. The
// segment order is preserved exactly.
func NewRequest(model string, opts Options, segments ...Segment) (GenerationRequest, error) {
	if model == "" {
		return GenerationRequest{}, fmt.Errorf("model identifier is required")
	}
	if len(segments) == 0 {
		return GenerationRequest{}, fmt.Errorf("request needs at least one segment")
	}
	if opts.Temperature != nil && (*opts.Temperature < 0 || *opts.Temperature > 2) {
		return GenerationRequest{}, fmt.Errorf("temperature %v out of range [0,2]", *opts.Temperature)
	}
	if opts.ResponseFormat == FormatJSON && opts.Schema.IsEmpty() {
		return GenerationRequest{}, fmt.Errorf("json response format requires a non-empty schema")
	}

	copied := make([]Segment, len(segments))
	copy(copied, segments)

	return GenerationRequest{
		Model:    model,
		Segments: copied,
		Options:  opts,
	}, nil
}

// BuildRequest assembles the common call shape: one instruction text segment
// followed by media references in caller-supplied order. MIME types for the
// attachments are inferred from their locator suffixes.
func BuildRequest(model, instruction string, attachments []string, opts Options) (GenerationRequest, error) {
	segments := make([]Segment, 0, len(attachments)+1)
	segments = append(segments, TextSegment(instruction))
	for _, uri := range attachments {
		segments = append(segments, URISegment(uri, ""))
	}
	return NewRequest(model, opts, segments...)
}
