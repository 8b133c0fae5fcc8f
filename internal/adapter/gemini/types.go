package gemini

// generateContentRequest is the wire payload for the generateContent API.
type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	SafetySettings    []safetySetting   `json:"safetySettings,omitempty"`
	Tools             []tool            `json:"tools,omitempty"`
}

// content is one conversational turn.
type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"` // "user" or "model"
}

// part carries exactly one of text, a file reference, or inline bytes.
type part struct {
	Text       string      `json:"text,omitempty"`
	FileData   *fileData   `json:"fileData,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

// fileData references media by locator.
type fileData struct {
	FileURI  string `json:"fileUri"`
	MIMEType string `json:"mimeType"`
}

// inlineData carries media bytes, base64-encoded on the wire.
type inlineData struct {
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data"`
}

// generationConfig controls generation parameters.
type generationConfig struct {
	Temperature        *float64       `json:"temperature,omitempty"`
	MaxOutputTokens    int            `json:"maxOutputTokens,omitempty"`
	CandidateCount     int            `json:"candidateCount,omitempty"`
	ResponseMIMEType   string         `json:"responseMimeType,omitempty"`
	ResponseSchema     map[string]any `json:"responseSchema,omitempty"`
	ResponseModalities []string       `json:"responseModalities,omitempty"`
}

// safetySetting configures content filtering.
type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// tool enables a model-side tool. Only search grounding is used here.
type tool struct {
	GoogleSearch *googleSearch `json:"googleSearch,omitempty"`
}

type googleSearch struct{}

// generateContentResponse is the wire response.
type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// candidate is one generated answer.
type candidate struct {
	Content           content        `json:"content"`
	FinishReason      string         `json:"finishReason"`
	GroundingMetadata map[string]any `json:"groundingMetadata,omitempty"`
}

// errorResponse is the wire error envelope.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
