package cluster

import (
	"fmt"

	"github.com/quintrel/balloontool/internal/dimension"
	"github.com/quintrel/balloontool/internal/geometry"
	"github.com/quintrel/balloontool/internal/zone"
)

// Callout is the canonical, deduplicated output unit of reconciliation:
// one measurable characteristic with its merged geometry, parsed
// dimension data and drawing zone.
type Callout struct {
	// ID is the 1-based serial number, contiguous across the active set.
	ID int `json:"id"`

	// Box is the canonical 4-corner polygon: the minimal enclosing
	// rectangle of every contributing detection, in rotation-0
	// page-pixel coordinates.
	Box geometry.Polygon `json:"box"`

	// Dimension is the parsed interpretation of the resolved text. Nil
	// when the cluster had no resolvable text at all; an unclassified
	// (Type Unknown) value when text was present but unparseable.
	Dimension *dimension.Parsed `json:"dimension,omitempty"`

	// Zone is the drawing-zone label of the canonical-box midpoint, or
	// "N/A" when no boundary grid is known.
	Zone string `json:"zone"`

	// Detections are the raw observations this callout was built from,
	// kept for traceability and undo.
	Detections []Detection `json:"detections,omitempty"`
}

// Type returns the callout's dimension type, Unknown when no dimension
// was resolved.
func (c *Callout) Type() dimension.Type {
	if c.Dimension == nil {
		return dimension.Unknown
	}
	return c.Dimension.Type
}

// RecomputeZone re-derives the callout's zone from its current canonical
// box against the given grid. Idempotent: it depends only on the box
// midpoint and the grid. Call after a manual box edit.
func (c *Callout) RecomputeZone(g *zone.Grid) {
	c.Zone = g.ZoneForPoint(c.Box.Midpoint())
}

// RecomputeZones refreshes every callout's zone in one pass, as after a
// boundary re-detection or a grid-convention change.
func RecomputeZones(callouts []Callout, g *zone.Grid) {
	for i := range callouts {
		callouts[i].RecomputeZone(g)
	}
}

// Renumber swaps the identity of the callouts at the two positions while
// keeping each row's geometry in place: dimensions and zones trade rows,
// boxes and contributing detections stay put, and serials remain the
// contiguous 1..N sequence. After a renumber, reading order is no longer
// guaranteed — that is the manual-correction workflow, not a defect.
func Renumber(callouts []Callout, oldIdx, newIdx int) error {
	if oldIdx == newIdx {
		return nil
	}
	if oldIdx < 0 || newIdx < 0 || oldIdx >= len(callouts) || newIdx >= len(callouts) {
		return fmt.Errorf("renumber: index out of range (%d, %d of %d)", oldIdx, newIdx, len(callouts))
	}

	a, b := &callouts[oldIdx], &callouts[newIdx]
	a.Dimension, b.Dimension = b.Dimension, a.Dimension
	a.Zone, b.Zone = b.Zone, a.Zone

	renumberSequential(callouts)
	return nil
}

// Delete removes the callout at idx and compacts the remaining serials
// back to a contiguous 1..N.
func Delete(callouts []Callout, idx int) ([]Callout, error) {
	if idx < 0 || idx >= len(callouts) {
		return callouts, fmt.Errorf("delete: index %d out of range (%d callouts)", idx, len(callouts))
	}
	out := append(callouts[:idx:idx], callouts[idx+1:]...)
	renumberSequential(out)
	return out, nil
}

func renumberSequential(callouts []Callout) {
	for i := range callouts {
		callouts[i].ID = i + 1
	}
}
