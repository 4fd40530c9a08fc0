package cluster

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/quintrel/balloontool/internal/dimension"
	"github.com/quintrel/balloontool/internal/geometry"
	"github.com/quintrel/balloontool/internal/zone"
)

// Config holds the clustering tunables. The defaults come from observed
// drawing sets; treat them as starting points, not constants.
type Config struct {
	// MatchIoU is the minimum intersection-over-union for a text box to
	// join an object box's cluster when it is not fully contained.
	// Text spans are usually much smaller than their enclosing symbol
	// box, so this sits well below typical NMS thresholds.
	MatchIoU float64 `json:"match_iou" mapstructure:"match_iou" yaml:"match_iou"`

	// MinBoxSize is the minimum detection box side length in pixels.
	MinBoxSize float64 `json:"min_box_size" mapstructure:"min_box_size" yaml:"min_box_size"`

	// SimilarityEpsilon is the absolute numeric difference under which
	// two parsed values count as the same dimension during
	// cross-rotation dedup.
	SimilarityEpsilon float64 `json:"similarity_epsilon" mapstructure:"similarity_epsilon" yaml:"similarity_epsilon"`
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		MatchIoU:          0.2,
		MinBoxSize:        geometry.MinBoxSize,
		SimilarityEpsilon: 0.001,
	}
}

// Clusterer reconciles detections against a fixed zone grid. It holds no
// state between Cluster calls; each invocation is a pure function of its
// inputs and the grid. Callers serialize per-page work — the Clusterer
// does no internal locking.
type Clusterer struct {
	cfg  Config
	grid *zone.Grid
}

// New creates a Clusterer for the given grid. A nil grid is valid and
// resolves every zone to "N/A".
func New(cfg Config, grid *zone.Grid) *Clusterer {
	return &Clusterer{cfg: cfg, grid: grid}
}

// group is an intermediate cluster under construction.
type group struct {
	members  []Detection
	resolved *Detection // highest-confidence text member, nil when none
	box      geometry.Rect
}

// Cluster merges text and object detections into canonical callouts.
// See the package documentation for the pipeline. The returned slice is
// ordered by reading order with contiguous 1-based IDs; it may be empty
// but the call never fails.
func (c *Clusterer) Cluster(textDets, objectDets []Detection) []Callout {
	texts := c.prefilterText(textDets)
	objects := c.prefilterBoxes(objectDets)

	groups := c.match(texts, objects)
	for i := range groups {
		groups[i].resolveText()
	}
	groups = c.dedupe(groups)

	callouts := make([]Callout, 0, len(groups))
	for _, g := range groups {
		callouts = append(callouts, c.finalize(g))
	}

	// Reading order: top-to-bottom, then left-to-right, on canonical-box
	// top-left corners. Keeps renumbering reproducible from the same
	// input set.
	sort.SliceStable(callouts, func(i, j int) bool {
		bi := callouts[i].Box.Bounding()
		bj := callouts[j].Box.Bounding()
		if bi.Y1 != bj.Y1 {
			return bi.Y1 < bj.Y1
		}
		return bi.X1 < bj.X1
	})
	for i := range callouts {
		callouts[i].ID = i + 1
	}
	return callouts
}

// prefilterText drops degenerate boxes and non-dimensional text.
func (c *Clusterer) prefilterText(dets []Detection) []Detection {
	out := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if !d.Box.Bounding().Valid(c.cfg.MinBoxSize) {
			continue
		}
		if !dimension.IsDimensionalValue(d.Text) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// prefilterBoxes drops degenerate boxes only. Object detections are never
// text-filtered; the upstream detector already thresholded them by class
// confidence.
func (c *Clusterer) prefilterBoxes(dets []Detection) []Detection {
	out := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if !d.Box.Bounding().Valid(c.cfg.MinBoxSize) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// match groups each object box with the text boxes it contains or
// sufficiently overlaps. Unmatched text detections become singleton
// groups: object-less dimension text still produces a valid callout.
func (c *Clusterer) match(texts, objects []Detection) []group {
	claimed := make([]bool, len(texts))
	groups := make([]group, 0, len(objects)+len(texts))

	for _, obj := range objects {
		g := group{members: []Detection{obj}}
		objRect := obj.Box.Bounding()
		for i, txt := range texts {
			if claimed[i] {
				continue
			}
			txtRect := txt.Box.Bounding()
			if objRect.Contains(txtRect) || geometry.IoU(objRect, txtRect) >= c.cfg.MatchIoU {
				claimed[i] = true
				g.members = append(g.members, txt)
			}
		}
		groups = append(groups, g)
	}

	for i, txt := range texts {
		if !claimed[i] {
			groups = append(groups, group{members: []Detection{txt}})
		}
	}

	for i := range groups {
		groups[i].computeBox()
	}
	return groups
}

// computeBox sets the group's canonical rectangle to the union of every
// member box.
func (g *group) computeBox() {
	first := true
	for _, m := range g.members {
		r := m.Box.Bounding()
		if first {
			g.box = r
			first = false
			continue
		}
		g.box = geometry.Union(g.box, r)
	}
}

// resolveText selects the group's representative text detection: highest
// confidence, rotation-0 preferred on ties, earliest member as the final
// tie-break so resolution is deterministic.
func (g *group) resolveText() {
	for i := range g.members {
		m := &g.members[i]
		if m.Source != SourceText {
			continue
		}
		if g.resolved == nil || betterText(*m, *g.resolved) {
			g.resolved = m
		}
	}
}

// betterText reports whether a should replace b as a resolved text.
func betterText(a, b Detection) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.Rotation == 0 && b.Rotation != 0
}

// dedupe collapses groups whose resolved texts describe the same
// dimension, as happens when the rotation-0 and rotation-90 extraction
// passes both catch a vertical dimension. The kept group is the
// highest-confidence one (rotation 0 preferred at equal confidence) and
// its box stays the callout's canonical box. Duplicate groups are
// discarded whole: folding their boxes in would push contributing
// detections outside the canonical box. Groups with no resolved text
// pass through.
func (c *Clusterer) dedupe(groups []group) []group {
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	// Text groups sort by preference, nil-resolved groups strictly
	// last; leaving nils "equal" to everything would let a nil group
	// shield two text groups from being reordered against each other.
	sort.SliceStable(order, func(a, b int) bool {
		ga, gb := groups[order[a]], groups[order[b]]
		if ga.resolved == nil {
			return false
		}
		if gb.resolved == nil {
			return true
		}
		return betterText(*ga.resolved, *gb.resolved)
	})

	kept := make([]group, 0, len(groups))
	for _, idx := range order {
		g := groups[idx]
		if g.resolved == nil {
			kept = append(kept, g)
			continue
		}
		duplicate := false
		for k := range kept {
			if kept[k].resolved == nil {
				continue
			}
			if c.similarText(kept[k].resolved.Text, g.resolved.Text) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, g)
		}
	}
	return kept
}

// similarText implements the dedup rule: identical after stripping
// whitespace and lowering case, or both numeric (decimal comma
// normalized) within the configured epsilon.
func (c *Clusterer) similarText(a, b string) bool {
	ca := strings.ToLower(strings.Join(strings.Fields(a), ""))
	cb := strings.ToLower(strings.Join(strings.Fields(b), ""))
	if ca == cb {
		return true
	}

	na, errA := strconv.ParseFloat(strings.ReplaceAll(ca, ",", "."), 64)
	nb, errB := strconv.ParseFloat(strings.ReplaceAll(cb, ",", "."), 64)
	if errA != nil || errB != nil {
		return false
	}
	return math.Abs(na-nb) < c.cfg.SimilarityEpsilon
}

// finalize turns a group into a Callout: parse the resolved text, stamp
// the zone from the canonical-box midpoint. The ID is assigned by the
// caller after ordering.
func (c *Clusterer) finalize(g group) Callout {
	out := Callout{
		Box:        g.box.ToPolygon(),
		Detections: g.members,
		Zone:       c.grid.ZoneForPoint(g.box.Center()),
	}
	if g.resolved != nil {
		parsed := dimension.Parse(g.resolved.Text)
		out.Dimension = &parsed
	}
	return out
}
