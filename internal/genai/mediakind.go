package genai

import "strings"

// MediaKind classifies an attachment by its broad content category.
type MediaKind int

const (
	KindBinary MediaKind = iota
	KindImage
	KindAudio
	KindVideo
	KindDocument
)

// String returns a human-readable name for the media kind.
func (k MediaKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	case KindDocument:
		return "document"
	default:
		return "binary"
	}
}

// MIMEType returns the generic MIME type sent to the model service for this
// kind. The service accepts a family-level type, so the exact container
// format does not need to be known.
func (k MediaKind) MIMEType() string {
	switch k {
	case KindImage:
		return "image/png"
	case KindAudio:
		return "audio/wav"
	case KindVideo:
		return "video/mp4"
	case KindDocument:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

var kindBySuffix = map[string]MediaKind{
	".mp4": KindVideo, ".mov": KindVideo, ".avi": KindVideo, ".mkv": KindVideo, ".webm": KindVideo,
	".wav": KindAudio, ".mp3": KindAudio, ".flac": KindAudio,
	".png": KindImage, ".jpg": KindImage, ".jpeg": KindImage, ".webp": KindImage, ".gif": KindImage,
	".pdf": KindDocument,
}

// InferMediaKind guesses the media kind from a locator's trailing extension.
//
// This is a best-effort heuristic, not a content-sniffing guarantee: a file
// with a misleading extension will be misclassified. Locators without a
// recognized suffix fall back to KindBinary.
func InferMediaKind(locator string) MediaKind {
	lower := strings.ToLower(locator)
	for suffix, kind := range kindBySuffix {
		if strings.HasSuffix(lower, suffix) {
			return kind
		}
	}
	return KindBinary
}
