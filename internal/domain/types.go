// Package domain holds the typed result shapes shared across the task layer,
// the stores, and the output writers. Types here carry no behavior beyond
// their JSON mapping.
package domain

import "time"

// Room is a single room identified in a floor plan.
type Room struct {
	RoomName string `json:"room_name"`
}

// RoomList is the structured result of floor plan analysis.
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// Transformation is one suggested image transformation: a short button
// title and the full generation prompt behind it.
type Transformation struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// TransformationPrompts wraps the fixed-size transformation suggestion list.
type TransformationPrompts struct {
	Transformations []Transformation `json:"transformations"`
}

// CritiqueQuestion is a single yes/no question used to evaluate generated
// media against the user's intent.
type CritiqueQuestion struct {
	Question string `json:"question"`
}

// CritiqueQuestionList wraps the fixed-size question list.
type CritiqueQuestionList struct {
	Questions []CritiqueQuestion `json:"questions"`
}

// QuestionAnswer is one answered evaluation question.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   bool   `json:"answer"`
}

// EvaluationResult holds the answers from a media evaluation call.
type EvaluationResult struct {
	Answers []QuestionAnswer `json:"answers"`
}

// AudioAnalysis is the structured critique of a generated music clip.
type AudioAnalysis struct {
	AudioAnalysis   string   `json:"audio-analysis"`
	GenreQuality    []string `json:"genre-quality"`
	PromptAlignment string   `json:"prompt-alignment"`
}

// TTSEvaluation scores a synthesized speech clip.
type TTSEvaluation struct {
	QualityScore  int      `json:"quality_score"`
	Justification string   `json:"justification"`
	KeyTags       []string `json:"key_tags"`
}

// FacialCompositeProfile is the structured forensic description of a face,
// extracted from a reference photo for character-consistent generation.
type FacialCompositeProfile struct {
	FaceShape           string   `json:"face_shape"`
	SkinTone            string   `json:"skin_tone"`
	HairColor           string   `json:"hair_color"`
	HairStyle           string   `json:"hair_style"`
	EyeColor            string   `json:"eye_color"`
	EyeShape            string   `json:"eye_shape"`
	NoseShape           string   `json:"nose_shape"`
	LipShape            string   `json:"lip_shape"`
	ApparentAgeRange    string   `json:"apparent_age_range"`
	DistinguishingMarks []string `json:"distinguishing_marks"`
}

// GeneratedPrompts is a scene prompt pair produced for the image model: the
// positive prompt placing a described person in the requested scene, and a
// negative prompt guarding against common artifacts.
type GeneratedPrompts struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// BestImage names the generated candidate that best matches a set of real
// reference photos, with the model's reasoning.
type BestImage struct {
	BestImagePath string `json:"best_image_path"`
	Reasoning     string `json:"reasoning"`
}

// ImageCandidate is one generated image offered for best-image selection:
// its locator (echoed back in BestImagePath) and its raw bytes.
type ImageCandidate struct {
	Locator string
	Data    []byte
}

// GeneratedImage is one persisted image artifact with the caption the model
// emitted alongside it.
type GeneratedImage struct {
	Locator  string `json:"locator"`
	Caption  string `json:"caption"`
	MIMEType string `json:"mime_type"`
}

// ImageGenerationResult bundles everything a generation call produced.
type ImageGenerationResult struct {
	Images    []GeneratedImage `json:"images"`
	Grounding map[string]any   `json:"grounding,omitempty"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// SessionReport collects everything a generation session produced for the
// markdown report writer.
type SessionReport struct {
	OutputDir       string
	Model           string
	Prompt          string
	RewrittenPrompt string
	Images          []GeneratedImage
	Critique        string
	Answers         []QuestionAnswer
	Grounding       map[string]any
	Elapsed         time.Duration
}

// CallRecord is the analytics row persisted for every model call.
type CallRecord struct {
	ID        string
	Task      string
	Model     string
	Attempts  int
	Elapsed   time.Duration
	Outcome   string
	ErrorType string
	CreatedAt time.Time
}

// TaskStats aggregates call records per task for reporting.
type TaskStats struct {
	Task         string
	Calls        int
	Failures     int
	TotalElapsed time.Duration
}
