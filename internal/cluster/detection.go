package cluster

import (
	"github.com/google/uuid"

	"github.com/quintrel/balloontool/internal/geometry"
)

// Source identifies which detector produced a detection.
type Source string

const (
	// SourceText marks detections from the text/OCR extraction pass.
	SourceText Source = "text_extraction"

	// SourceObject marks detections from the object detector.
	SourceObject Source = "object_detection"
)

// Detection is a single raw observation from one source. Detections are
// created per page-processing pass and replaced wholesale on reprocess;
// they are never persisted directly.
type Detection struct {
	// ID is a per-pass trace identifier, used to tie callouts back to
	// the observations that produced them.
	ID string `json:"id"`

	// Source tags which detector produced this observation.
	Source Source `json:"source"`

	// Text is the extracted string. Present only for SourceText.
	Text string `json:"text,omitempty"`

	// Box is the detection's 4-corner polygon in rotation-0 page-pixel
	// coordinates.
	Box geometry.Polygon `json:"box"`

	// Confidence is the detector's score in [0, 1].
	Confidence float64 `json:"confidence"`

	// ClassLabel is the object detector's class name. Empty for
	// SourceText.
	ClassLabel string `json:"class_label,omitempty"`

	// Rotation records which extraction pass produced the detection:
	// 0, 90, 180 or 270 degrees. The box is already normalized to the
	// rotation-0 frame.
	Rotation int `json:"rotation"`
}

// NewText builds a text-extraction detection.
func NewText(text string, box geometry.Polygon, confidence float64, rotation int) Detection {
	return Detection{
		ID:         uuid.NewString(),
		Source:     SourceText,
		Text:       text,
		Box:        box,
		Confidence: confidence,
		Rotation:   rotation,
	}
}

// NewObject builds an object-detector detection. Object detections are
// always in the rotation-0 frame.
func NewObject(box geometry.Polygon, confidence float64, classLabel string) Detection {
	return Detection{
		ID:         uuid.NewString(),
		Source:     SourceObject,
		Box:        box,
		Confidence: confidence,
		ClassLabel: classLabel,
	}
}
