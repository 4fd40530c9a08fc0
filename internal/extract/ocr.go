// Package extract adapts Tesseract OCR output into text detections for
// the reconciliation engine.
//
// OCR runs twice per page — once on the upright render and once on a
// 90°-rotated copy — because vertical dimension text on drawings is
// unreadable in the upright pass. Boxes from the rotated pass are mapped
// back into the rotation-0 page frame before they reach clustering, per
// the engine's coordinate contract.
package extract

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/quintrel/balloontool/internal/cluster"
	"github.com/quintrel/balloontool/internal/geometry"
)

// Options controls OCR extraction.
type Options struct {
	// Language is the Tesseract language code, e.g. "eng".
	Language string

	// MinConfidence drops words below this OCR confidence (0 to 1).
	MinConfidence float64

	// Boundary, when set, crops OCR input to the detected content
	// boundary so border text and title-block noise never reach the
	// engine. Output boxes stay in full-page coordinates.
	Boundary *geometry.Rect
}

// DefaultOptions returns English OCR at the confidence floor used by the
// original extraction pipeline.
func DefaultOptions() Options {
	return Options{Language: "eng", MinConfidence: 0.70}
}

// TextDetections OCRs the page at the given rotation pass and returns
// text detections in the rotation-0 page frame.
//
// rotation is the counter-clockwise angle the page is turned before OCR;
// only 0, 90, 180 and 270 are meaningful. The returned detections carry
// the pass rotation for downstream tie-breaking but their boxes are
// already unrotated.
func TextDetections(img image.Image, rotation int, opts Options) ([]cluster.Detection, error) {
	var offsetX, offsetY float64
	input := img
	if opts.Boundary != nil {
		b := opts.Boundary.Normalize()
		input = imaging.Crop(img, image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2)))
		offsetX, offsetY = b.X1, b.Y1
	}

	switch rotation {
	case 0:
	case 90:
		input = imaging.Rotate90(input)
	case 180:
		input = imaging.Rotate180(input)
	case 270:
		input = imaging.Rotate270(input)
	default:
		return nil, fmt.Errorf("unsupported rotation %d", rotation)
	}

	words, err := recognize(input, opts.Language)
	if err != nil {
		return nil, err
	}

	inW := float64(input.Bounds().Dx())
	inH := float64(input.Bounds().Dy())
	// Unrotation happens in the cropped frame; pick the frame dims the
	// rotated image was derived from.
	frameW, frameH := inW, inH
	if rotation == 90 || rotation == 270 {
		frameW, frameH = inH, inW
	}

	dets := make([]cluster.Detection, 0, len(words))
	for _, w := range words {
		if w.Text == "" || w.Confidence < opts.MinConfidence {
			continue
		}
		r := UnrotateRect(w.Box, rotation, frameW, frameH)
		r.X1 += offsetX
		r.X2 += offsetX
		r.Y1 += offsetY
		r.Y2 += offsetY
		dets = append(dets, cluster.NewText(w.Text, r.ToPolygon(), w.Confidence, rotation))
	}
	return dets, nil
}

// DualPass runs the upright and 90° extraction passes and returns the
// combined detections. A failure in one pass degrades gracefully: the
// other pass's detections are still returned, and an error comes back
// only when both passes fail.
func DualPass(img image.Image, opts Options) ([]cluster.Detection, error) {
	upright, errUp := TextDetections(img, 0, opts)
	rotated, errRot := TextDetections(img, 90, opts)

	if errUp != nil && errRot != nil {
		return nil, fmt.Errorf("both extraction passes failed: %v; %v", errUp, errRot)
	}
	return append(upright, rotated...), nil
}

// UnrotateRect maps a rectangle from a rotated image frame back into the
// rotation-0 frame. rotation is the counter-clockwise angle the frame
// was turned; frameW and frameH are the rotation-0 frame dimensions.
func UnrotateRect(r geometry.Rect, rotation int, frameW, frameH float64) geometry.Rect {
	r = r.Normalize()
	switch rotation {
	case 90:
		// CCW 90: rotated (x', y') came from original (frameW - y', x').
		return geometry.Rect{
			X1: frameW - r.Y2, Y1: r.X1,
			X2: frameW - r.Y1, Y2: r.X2,
		}
	case 180:
		return geometry.Rect{
			X1: frameW - r.X2, Y1: frameH - r.Y2,
			X2: frameW - r.X1, Y2: frameH - r.Y1,
		}
	case 270:
		return geometry.Rect{
			X1: r.Y1, Y1: frameH - r.X2,
			X2: r.Y2, Y2: frameH - r.X1,
		}
	default:
		return r
	}
}

// word is a recognized OCR word with its box in the OCR input frame.
type word struct {
	Text       string
	Confidence float64
	Box        geometry.Rect
}

// recognize runs Tesseract over the image at word granularity.
// Tesseract needs a file path, so the image round-trips through a temp
// PNG.
func recognize(img image.Image, language string) ([]word, error) {
	tmp, err := os.CreateTemp("", "extract-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmp.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]word, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		words = append(words, word{
			Text:       b.Word,
			Confidence: float64(b.Confidence) / 100.0,
			Box: geometry.Rect{
				X1: float64(b.Box.Min.X), Y1: float64(b.Box.Min.Y),
				X2: float64(b.Box.Max.X), Y2: float64(b.Box.Max.Y),
			},
		})
	}
	return words, nil
}
