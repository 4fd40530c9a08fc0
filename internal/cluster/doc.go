// Package cluster reconciles raw detections from the text extractor and
// the object detector into canonical dimension callouts.
//
// Detections arrive noisy: the two sources report overlapping boxes with
// different coordinate semantics, the dual-rotation text pass reports the
// same dimension twice, and both sources emit degenerate or
// non-dimensional boxes. Clustering turns that into a clean, deduplicated,
// zone-addressed list of callouts, one per measurable characteristic.
//
// # Pipeline
//
//  1. Pre-filter: degenerate boxes are dropped; text detections must pass
//     the dimensional-value pre-filter. Object boxes are never
//     text-filtered — they carry their own class confidence, thresholded
//     upstream.
//  2. Cross-source matching: text boxes contained in (or sufficiently
//     overlapping) an object box join its cluster; unmatched text boxes
//     form singleton clusters.
//  3. Canonical box: the minimal enclosing rectangle of every member box.
//  4. Text resolution: highest-confidence text per cluster, rotation-0
//     detections preferred on ties.
//  5. Cross-rotation dedup: clusters whose resolved texts are similar
//     (identical after whitespace/case stripping, or numerically equal
//     within a small epsilon) collapse into the highest-confidence one.
//  6. Zone assignment from the canonical-box midpoint.
//  7. Serial numbering in reading order (top-to-bottom, left-to-right).
//
// # Failure semantics
//
// Clustering never fails: malformed geometry is filtered, unparseable
// text surfaces as an editable Unknown callout, and a cluster with no
// resolvable text is retained rather than dropped so the operator can
// still inspect the detected characteristic on the drawing. The worst
// case is an empty result, never an error.
//
// # Coordinate frame
//
// All boxes are in the page's rotation-0 pixel space. Callers normalize
// rotated-pass detections into that frame before clustering; the rotation
// field records only which pass produced a detection.
package cluster
