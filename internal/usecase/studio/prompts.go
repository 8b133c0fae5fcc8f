package studio

// Prompt templates for the generation tasks.

const rewriterPrompt = `You are an expert prompt writer for generative image models. Rewrite the following prompt to be more vivid and specific: add concrete visual details, lighting, composition, and style, while preserving the user's intent. Return only the rewritten prompt, with no preamble.`

const magazineEditorPrompt = `You are a sharp-eyed magazine photo editor reviewing images produced for the brief: "%s". Critique the images as a set: composition, lighting, subject fidelity to the brief, and overall coherence. Be specific and constructive, in a few short paragraphs.`

const roomExtractionPrompt = `Analyze this floor plan image and identify all the labeled rooms. Return a JSON list of the room names.`

const describeImagePrompt = `Describe this image in two sentences.`

const describeVideoPrompt = `Describe this video in two sentences, focusing on the main subject, action, and overall visual style.`

const musicCriticSystemPrompt = `You're a music producer and critic with a keen ear for describing musical qualities and soundscapes. If you're given audio, describe it. If you're given an idea or a scenario, describe the music that would represent that. Aim for a single paragraph description of musical direction and optionally any explanation of your direction. As a rule, don't refer to any particular artist, but instead describe their style.`

const audioAnalysisPrompt = `Describe this musical clip ("audio-analysis"), then suggest a list of genres and qualities.

The original prompt was the following:

"%s"

Then, review the original prompt with your description.

Output this as JSON.`

const transformationPrompt = `Analyze these images and come up with 3 interesting transformations.

For each transformation, provide a short title (max 3 words) and a detailed prompt for the image generation model.`

const questionGenerationPrompt = `Using the following prompt, come up with 5 yes/no questions that we could ask of a generated image to identify whether it meets the intent of the user:

Prompt: %s`

const evaluationPromptHeader = `For the following media, answer each of the following questions with a simple 'yes' or 'no'. Return the answers as a structured JSON list of question and answer pairs.`

const facialProfilePrompt = `You are a forensic analyst. Analyze the following image and extract a detailed, structured facial profile.`

const profileDescriptionPrompt = `Based on the following structured JSON data of a person's facial features, write a concise, natural language description suitable for an image generation model. Focus on key physical traits.

%s`

const scenePromptTemplate = `You are an expert prompt engineer for a text-to-image generation model. Combine the person description and the desired scene below into a single, detailed generation prompt.

Person Description: %s

User's Desired Scene: %s

Instructions: Write a photorealistic prompt that keeps the person's physical traits intact while placing them in the requested scene. Include photography details such as an 85mm lens and cinematic lighting. Also generate a standard negative prompt.`

const bestImageIntroPrompt = `Please analyze the following images. The first set of images are real photos of a person. The second set of images are AI-generated.`

const bestImageTaskPrompt = `Your task is to select the generated image that best represents the person from the real photos, focusing on facial and physical traits, not clothing or style.

Provide the path of the best image and your reasoning.`

const realImagesMarker = "\n--- REAL IMAGES ---"

const generatedImagesMarker = "\n--- GENERATED IMAGES ---"

const ttsEvaluationPrompt = `You are evaluating a synthesized speech clip. Score the audio quality from 1 to 100, considering clarity, naturalness, pacing, and how faithfully the delivery follows the generation directions.

The text that was converted to speech:

"%s"

The directions used to generate the audio:

"%s"

Return the score, a one-sentence justification, and a list of descriptive tags as JSON.`
