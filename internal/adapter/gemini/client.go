package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mwestbrook/genstudio/internal/genai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 60 * time.Second
)

// Client is a raw HTTP client for the generateContent API. It performs a
// single call per Invoke; retries belong to the envelope wrapping it. The
// client is created once at startup and is safe for concurrent reuse.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a generateContent client. A zero timeout falls back to
// the default.
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// Invoke implements genai.Invoker: one request, one HTTP round trip, one
// provider-agnostic response.
func (c *Client) Invoke(ctx context.Context, req genai.GenerationRequest) (*genai.RawResponse, error) {
	body, err := json.Marshal(buildWireRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, req.Model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		// Network failures are retryable by default.
		return nil, genai.NewTransportError(0, err.Error(), true)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, genai.NewTransportError(0, fmt.Sprintf("read response body: %v", err), true)
	}

	if resp.StatusCode >= 400 {
		return nil, mapStatusError(resp.StatusCode, respBody)
	}

	return parseResponse(respBody)
}

// buildWireRequest translates the provider-agnostic request into the wire
// payload, preserving segment order exactly.
func buildWireRequest(req genai.GenerationRequest) generateContentRequest {
	parts := make([]part, 0, len(req.Segments))
	for _, seg := range req.Segments {
		switch {
		case seg.URI != "":
			parts = append(parts, part{FileData: &fileData{FileURI: seg.URI, MIMEType: seg.MIMEType}})
		case seg.Data != nil:
			parts = append(parts, part{InlineData: &inlineData{
				MIMEType: seg.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(seg.Data),
			}})
		default:
			parts = append(parts, part{Text: seg.Text})
		}
	}

	wire := generateContentRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	}

	opts := req.Options
	if opts.System != "" {
		wire.SystemInstruction = &content{Parts: []part{{Text: opts.System}}}
	}

	config := &generationConfig{CandidateCount: 1}
	if opts.Temperature != nil {
		temp := *opts.Temperature
		config.Temperature = &temp
	}
	if opts.MaxOutputTokens > 0 {
		config.MaxOutputTokens = opts.MaxOutputTokens
	}
	if opts.ResponseFormat == genai.FormatJSON {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = responseSchema(opts.Schema)
	}
	if opts.WantImages {
		config.ResponseModalities = []string{"IMAGE", "TEXT"}
	}
	wire.GenerationConfig = config

	threshold := "BLOCK_ONLY_HIGH"
	if opts.RelaxSafety {
		threshold = "BLOCK_NONE"
	}
	for _, category := range []string{
		"HARM_CATEGORY_DANGEROUS_CONTENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	} {
		wire.SafetySettings = append(wire.SafetySettings, safetySetting{Category: category, Threshold: threshold})
	}

	if opts.EnableSearch {
		wire.Tools = []tool{{GoogleSearch: &googleSearch{}}}
	}

	return wire
}

// parseResponse extracts the ordered text/media stream and grounding
// metadata from a successful wire response.
func parseResponse(body []byte) (*genai.RawResponse, error) {
	var wire generateContentResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, genai.NewTransportError(0, fmt.Sprintf("unparseable response body: %v", err), true)
	}

	if len(wire.Candidates) == 0 {
		return nil, genai.NewTransportError(0, "no candidates in response", true)
	}

	cand := wire.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		return nil, genai.NewTransportError(0, "content blocked by safety filters", false)
	}

	raw := &genai.RawResponse{Grounding: cand.GroundingMetadata}
	for _, p := range cand.Content.Parts {
		switch {
		case p.InlineData != nil:
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, genai.NewTransportError(0, fmt.Sprintf("undecodable inline payload: %v", err), true)
			}
			raw.Parts = append(raw.Parts, genai.ResponsePart{
				Media: &genai.MediaPayload{Data: data, MIMEType: p.InlineData.MIMEType},
			})
		case p.Text != "":
			raw.Parts = append(raw.Parts, genai.ResponsePart{Text: p.Text})
		}
	}
	return raw, nil
}

// mapStatusError maps HTTP status codes to typed transport errors. Rate
// limits and server-side failures are retryable; client-side mistakes are
// not.
func mapStatusError(statusCode int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", statusCode)
	var wire errorResponse
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error.Message != "" {
		message = wire.Error.Message
	}

	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return genai.NewTransportError(statusCode, message, true)
	default:
		return genai.NewTransportError(statusCode, message, false)
	}
}
