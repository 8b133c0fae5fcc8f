package studio

import "github.com/mwestbrook/genstudio/internal/genai"

// Schema descriptors for the structured tasks. Each result shape declares
// its descriptor once; the decoder validates every response against it
// before unmarshaling.

var roomListSchema = &genai.SchemaDescriptor{
	Title: "Room List",
	Fields: []genai.FieldSpec{
		{
			Name:        "rooms",
			Type:        genai.TypeArray,
			Description: "A list of rooms identified in the floor plan.",
			Required:    true,
			Items: &genai.FieldSpec{
				Type: genai.TypeObject,
				Fields: []genai.FieldSpec{
					{
						Name:        "room_name",
						Type:        genai.TypeString,
						Description: "The name of a room identified in the floor plan, e.g., 'Living Room' or 'Bedroom 1'.",
						Required:    true,
					},
				},
			},
		},
	},
}

var transformationPromptsSchema = &genai.SchemaDescriptor{
	Title: "Transformation Prompts",
	Fields: []genai.FieldSpec{
		{
			Name:        "transformations",
			Type:        genai.TypeArray,
			Description: "A list of three interesting transformation instructions.",
			Required:    true,
			MinItems:    genai.IntPtr(3),
			MaxItems:    genai.IntPtr(3),
			Items: &genai.FieldSpec{
				Type: genai.TypeObject,
				Fields: []genai.FieldSpec{
					{
						Name:        "title",
						Type:        genai.TypeString,
						Description: "A short, three-word maximum title for the transformation button.",
						Required:    true,
					},
					{
						Name:        "prompt",
						Type:        genai.TypeString,
						Description: "The detailed prompt to be used for image generation.",
						Required:    true,
					},
				},
			},
		},
	},
}

var critiqueQuestionsSchema = &genai.SchemaDescriptor{
	Title: "Critique Questions",
	Fields: []genai.FieldSpec{
		{
			Name:     "questions",
			Type:     genai.TypeArray,
			Required: true,
			MinItems: genai.IntPtr(5),
			MaxItems: genai.IntPtr(5),
			Items: &genai.FieldSpec{
				Type: genai.TypeObject,
				Fields: []genai.FieldSpec{
					{
						Name:        "question",
						Type:        genai.TypeString,
						Description: "A yes/no question to evaluate an image.",
						Required:    true,
					},
				},
			},
		},
	},
}

var evaluationSchema = &genai.SchemaDescriptor{
	Title: "Evaluation Result",
	Fields: []genai.FieldSpec{
		{
			Name:     "answers",
			Type:     genai.TypeArray,
			Required: true,
			Items: &genai.FieldSpec{
				Type: genai.TypeObject,
				Fields: []genai.FieldSpec{
					{Name: "question", Type: genai.TypeString, Required: true},
					{
						Name:        "answer",
						Type:        genai.TypeBoolean,
						Description: "True for 'yes', False for 'no'.",
						Required:    true,
					},
				},
			},
		},
	},
}

var audioAnalysisSchema = &genai.SchemaDescriptor{
	Title: "Music Analysis and Alignment Response",
	Fields: []genai.FieldSpec{
		{
			Name:        "audio-analysis",
			Type:        genai.TypeString,
			Description: "A single-paragraph description of the provided audio or suggested musical direction.",
			Required:    true,
		},
		{
			Name:        "genre-quality",
			Type:        genai.TypeArray,
			Description: "A list of suggested genres and descriptive musical qualities.",
			Required:    true,
			MinItems:    genai.IntPtr(1),
			Items:       &genai.FieldSpec{Type: genai.TypeString},
		},
		{
			Name:        "prompt-alignment",
			Type:        genai.TypeString,
			Description: "An evaluation of how well the audio aligns with the original prompt's requirements.",
			Required:    true,
		},
	},
}

var facialProfileSchema = &genai.SchemaDescriptor{
	Title: "Facial Composite Profile",
	Fields: []genai.FieldSpec{
		{Name: "face_shape", Type: genai.TypeString, Description: "Overall shape of the face, e.g., 'oval' or 'square'.", Required: true},
		{Name: "skin_tone", Type: genai.TypeString, Required: true},
		{Name: "hair_color", Type: genai.TypeString, Required: true},
		{Name: "hair_style", Type: genai.TypeString, Required: true},
		{Name: "eye_color", Type: genai.TypeString, Required: true},
		{Name: "eye_shape", Type: genai.TypeString, Required: true},
		{Name: "nose_shape", Type: genai.TypeString, Required: true},
		{Name: "lip_shape", Type: genai.TypeString, Required: true},
		{Name: "apparent_age_range", Type: genai.TypeString, Description: "Estimated age range, e.g., '30-40'.", Required: true},
		{
			Name:        "distinguishing_marks",
			Type:        genai.TypeArray,
			Description: "Visible marks such as scars, moles, or freckles. Empty when none are visible.",
			Required:    true,
			Items:       &genai.FieldSpec{Type: genai.TypeString},
		},
	},
}

var generatedPromptsSchema = &genai.SchemaDescriptor{
	Title: "Generated Prompts",
	Fields: []genai.FieldSpec{
		{
			Name:        "prompt",
			Type:        genai.TypeString,
			Description: "The complete, detailed prompt for the image generation model.",
			Required:    true,
		},
		{
			Name:        "negative_prompt",
			Type:        genai.TypeString,
			Description: "A standard negative prompt listing artifacts to avoid.",
			Required:    true,
		},
	},
}

var bestImageSchema = &genai.SchemaDescriptor{
	Title: "Best Image",
	Fields: []genai.FieldSpec{
		{
			Name:        "best_image_path",
			Type:        genai.TypeString,
			Description: "The path of the generated image that best matches the person.",
			Required:    true,
		},
		{
			Name:        "reasoning",
			Type:        genai.TypeString,
			Description: "Why this image was selected over the other candidates.",
			Required:    true,
		},
	},
}

var ttsEvaluationSchema = &genai.SchemaDescriptor{
	Title: "TTS Evaluation",
	Fields: []genai.FieldSpec{
		{
			Name:        "quality_score",
			Type:        genai.TypeInteger,
			Description: "Integer score between 1 and 100.",
			Required:    true,
			Minimum:     genai.FloatPtr(1),
			Maximum:     genai.FloatPtr(100),
		},
		{
			Name:        "justification",
			Type:        genai.TypeString,
			Description: "A single sentence summarizing the main reason for the score.",
			Required:    true,
		},
		{
			Name:        "key_tags",
			Type:        genai.TypeArray,
			Description: "List of tags describing style, tone, pace, content, voice.",
			Required:    true,
			Items:       &genai.FieldSpec{Type: genai.TypeString},
		},
	},
}
