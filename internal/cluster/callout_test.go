package cluster

import (
	"testing"

	"github.com/quintrel/balloontool/internal/dimension"
	"github.com/quintrel/balloontool/internal/geometry"
	"github.com/quintrel/balloontool/internal/zone"
)

func parsed(nominal float64, typ dimension.Type) *dimension.Parsed {
	return &dimension.Parsed{Nominal: nominal, Type: typ, Classified: true}
}

func threeCallouts() []Callout {
	return []Callout{
		{ID: 1, Box: box(100, 100, 150, 120), Dimension: parsed(10, dimension.Length), Zone: "A1"},
		{ID: 2, Box: box(500, 300, 560, 320), Dimension: parsed(20, dimension.Diameter), Zone: "B3"},
		{ID: 3, Box: box(900, 700, 950, 720), Dimension: parsed(30, dimension.Radius), Zone: "D4"},
	}
}

func TestRenumber_SwapsContentNotGeometry(t *testing.T) {
	callouts := threeCallouts()
	boxBefore0 := callouts[0].Box
	boxBefore2 := callouts[2].Box

	if err := Renumber(callouts, 0, 2); err != nil {
		t.Fatalf("Renumber failed: %v", err)
	}

	if len(callouts) != 3 {
		t.Fatalf("length changed: %d", len(callouts))
	}
	// Serials stay contiguous.
	for i, c := range callouts {
		if c.ID != i+1 {
			t.Errorf("position %d has ID %d, want %d", i, c.ID, i+1)
		}
	}
	// Content swapped between positions 0 and 2.
	if callouts[0].Dimension.Nominal != 30 || callouts[2].Dimension.Nominal != 10 {
		t.Errorf("dimensions not swapped: %v, %v", callouts[0].Dimension.Nominal, callouts[2].Dimension.Nominal)
	}
	if callouts[0].Zone != "D4" || callouts[2].Zone != "A1" {
		t.Errorf("zones not swapped: %q, %q", callouts[0].Zone, callouts[2].Zone)
	}
	// Geometry stays attached to its own row.
	if callouts[0].Box != boxBefore0 || callouts[2].Box != boxBefore2 {
		t.Error("geometry must not move during renumber")
	}
	// Middle row untouched.
	if callouts[1].Dimension.Nominal != 20 || callouts[1].Zone != "B3" {
		t.Error("uninvolved row was modified")
	}
}

func TestRenumber_SameIndexNoop(t *testing.T) {
	callouts := threeCallouts()
	if err := Renumber(callouts, 1, 1); err != nil {
		t.Fatalf("same-index renumber should be a no-op, got %v", err)
	}
	if callouts[1].Dimension.Nominal != 20 {
		t.Error("no-op renumber changed data")
	}
}

func TestRenumber_OutOfRange(t *testing.T) {
	callouts := threeCallouts()
	if err := Renumber(callouts, 0, 5); err == nil {
		t.Error("out-of-range index should error")
	}
	if err := Renumber(callouts, -1, 0); err == nil {
		t.Error("negative index should error")
	}
}

func TestDelete_CompactsSerials(t *testing.T) {
	callouts := threeCallouts()

	out, err := Delete(callouts, 1)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d callouts, want 2", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 2 {
		t.Errorf("serials not compacted: %d, %d", out[0].ID, out[1].ID)
	}
	if out[1].Dimension.Nominal != 30 {
		t.Error("wrong row deleted")
	}
}

func TestDelete_OutOfRange(t *testing.T) {
	callouts := threeCallouts()
	if _, err := Delete(callouts, 3); err == nil {
		t.Error("out-of-range delete should error")
	}
}

func TestRecomputeZone_Idempotent(t *testing.T) {
	g := zone.BuildGrid(geometry.Rect{X2: 2000, Y2: 1000}, zone.Options{})
	c := Callout{Box: box(100, 100, 150, 120), Zone: "stale"}

	c.RecomputeZone(g)
	first := c.Zone
	c.RecomputeZone(g)

	if c.Zone != first {
		t.Errorf("recompute not idempotent: %q then %q", first, c.Zone)
	}
	if c.Zone != "A1" {
		t.Errorf("Zone = %q, want A1", c.Zone)
	}
}

func TestRecomputeZone_AfterBoxEdit(t *testing.T) {
	g := zone.BuildGrid(geometry.Rect{X2: 2000, Y2: 1000}, zone.Options{})
	c := Callout{Box: box(100, 100, 150, 120)}
	c.RecomputeZone(g)

	// Drag the box to the far side of the sheet.
	c.Box = box(1800, 800, 1900, 900)
	c.RecomputeZone(g)
	if c.Zone != "D8" {
		t.Errorf("Zone after edit = %q, want D8", c.Zone)
	}
}

func TestRecomputeZones_AllRows(t *testing.T) {
	g := zone.BuildGrid(geometry.Rect{X2: 2000, Y2: 1000}, zone.Options{})
	callouts := threeCallouts()
	callouts[2].Zone = "stale"

	RecomputeZones(callouts, g)

	for i, want := range []string{"A1", "B3", "C4"} {
		if callouts[i].Zone != want {
			t.Errorf("callout %d zone = %q, want %q", i, callouts[i].Zone, want)
		}
	}
}

func TestRecomputeZone_NoGrid(t *testing.T) {
	c := Callout{Box: box(100, 100, 150, 120), Zone: "A1"}
	c.RecomputeZone(nil)
	if c.Zone != zone.NoZone {
		t.Errorf("Zone = %q, want %q", c.Zone, zone.NoZone)
	}
}
