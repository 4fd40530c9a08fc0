package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quintrel/balloontool/internal/cluster"
	"github.com/quintrel/balloontool/internal/geometry"
)

// textSpan is the wire shape of one text-extraction span. The box holds
// either 4 corner pairs (8 values) or two opposite corners (4 values).
type textSpan struct {
	Text       string    `json:"text"`
	Box        []float64 `json:"box"`
	Confidence float64   `json:"confidence"`
	Rotation   int       `json:"rotation"`
}

// objectBox is the wire shape of one object-detector box, pre-filtered
// by the caller at its own confidence threshold.
type objectBox struct {
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Confidence float64 `json:"confidence"`
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name"`
}

// readTextDetections loads text-extraction spans from a JSON file.
// Spans with malformed boxes are skipped, matching the engine's
// never-fatal contract; only unreadable files are errors.
func readTextDetections(path string) ([]cluster.Detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read text detections: %w", err)
	}

	var spans []textSpan
	if err := json.Unmarshal(data, &spans); err != nil {
		return nil, fmt.Errorf("failed to parse text detections: %w", err)
	}

	dets := make([]cluster.Detection, 0, len(spans))
	for _, s := range spans {
		poly, ok := geometry.PolygonFromFlat(s.Box)
		if !ok {
			if verbose {
				fmt.Fprintf(os.Stderr, "Skipping text span %q: box needs 4 or 8 values, got %d\n", s.Text, len(s.Box))
			}
			continue
		}
		dets = append(dets, cluster.NewText(s.Text, poly, s.Confidence, s.Rotation))
	}
	return dets, nil
}

// readObjectDetections loads object-detector boxes from a JSON file.
func readObjectDetections(path string) ([]cluster.Detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object detections: %w", err)
	}

	var boxes []objectBox
	if err := json.Unmarshal(data, &boxes); err != nil {
		return nil, fmt.Errorf("failed to parse object detections: %w", err)
	}

	dets := make([]cluster.Detection, 0, len(boxes))
	for _, b := range boxes {
		rect := geometry.Rect{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2}
		dets = append(dets, cluster.NewObject(rect.ToPolygon(), b.Confidence, b.ClassName))
	}
	return dets, nil
}
