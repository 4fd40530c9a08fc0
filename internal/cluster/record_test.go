package cluster

import (
	"math"
	"testing"

	"github.com/quintrel/balloontool/internal/dimension"
)

func TestRecord_Flattening(t *testing.T) {
	d := dimension.Parse("⌀25.4 +0.1/-0.05")
	c := Callout{
		ID:        1,
		Box:       box(100, 100, 150, 120),
		Dimension: &d,
		Zone:      "B3",
	}

	rec := c.Record(RecordContext{
		OpNo:       "20",
		OrderID:    42,
		DocumentID: 3,
	})

	if rec.Nominal != "25.4" {
		t.Errorf("Nominal = %q, want 25.4", rec.Nominal)
	}
	if math.Abs(rec.UpperTol-0.1) > 1e-9 || math.Abs(rec.LowerTol+0.05) > 1e-9 {
		t.Errorf("tolerances = (%v, %v)", rec.UpperTol, rec.LowerTol)
	}
	if rec.Zone != "B3" || rec.DimensionType != "Diameter" {
		t.Errorf("zone/type = %q/%q", rec.Zone, rec.DimensionType)
	}
	if len(rec.BBox) != 8 {
		t.Fatalf("BBox has %d values, want 8", len(rec.BBox))
	}
	if rec.BBox[0] != 100 || rec.BBox[1] != 100 || rec.BBox[4] != 150 || rec.BBox[5] != 120 {
		t.Errorf("BBox = %v", rec.BBox)
	}
	if rec.MeasuredInstrument != "Not Specified" {
		t.Errorf("instrument default = %q", rec.MeasuredInstrument)
	}
}

func TestRecord_Defaults(t *testing.T) {
	c := Callout{ID: 1, Box: box(10, 10, 60, 40)}

	rec := c.Record(RecordContext{})
	if rec.Zone != "N/A" {
		t.Errorf("Zone default = %q, want N/A", rec.Zone)
	}
	if rec.DimensionType != "Unknown" {
		t.Errorf("type default = %q, want Unknown", rec.DimensionType)
	}
}

func TestRecord_LowerTolNeverPositive(t *testing.T) {
	c := Callout{
		ID:  1,
		Box: box(10, 10, 60, 40),
		Dimension: &dimension.Parsed{
			Nominal: 10, UpperTol: 0.2, LowerTol: 0.1, Type: dimension.Length, Classified: true,
		},
	}
	rec := c.Record(RecordContext{})
	if rec.LowerTol > 0 {
		t.Errorf("LowerTol = %v, must be <= 0", rec.LowerTol)
	}
}

func TestFromRecords_RoundTrip(t *testing.T) {
	d := dimension.Parse("12.5 ±0.2")
	orig := []Callout{
		{ID: 1, Box: box(100, 100, 160, 120), Dimension: &d, Zone: "A2"},
	}

	recs := []Record{orig[0].Record(RecordContext{})}
	back := FromRecords(recs)

	if len(back) != 1 {
		t.Fatalf("got %d callouts, want 1", len(back))
	}
	got := back[0]
	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if got.Box != orig[0].Box {
		t.Errorf("Box = %+v, want %+v", got.Box, orig[0].Box)
	}
	if got.Zone != "A2" {
		t.Errorf("Zone = %q, want A2", got.Zone)
	}
	if got.Dimension == nil || math.Abs(got.Dimension.Nominal-12.5) > 1e-9 {
		t.Fatalf("Dimension = %+v", got.Dimension)
	}
	if math.Abs(got.Dimension.UpperTol-0.2) > 1e-9 || math.Abs(got.Dimension.LowerTol+0.2) > 1e-9 {
		t.Errorf("tolerances = (%v, %v)", got.Dimension.UpperTol, got.Dimension.LowerTol)
	}
	if got.Dimension.Type != dimension.Length {
		t.Errorf("Type = %v, want Length", got.Dimension.Type)
	}
}

func TestFromRecords_FourValueBBox(t *testing.T) {
	recs := []Record{{Nominal: "8", BBox: []float64{10, 20, 60, 50}, DimensionType: "Length"}}
	back := FromRecords(recs)
	if len(back) != 1 {
		t.Fatalf("got %d callouts, want 1", len(back))
	}
	if back[0].Box != box(10, 20, 60, 50) {
		t.Errorf("4-value bbox expansion mismatch: %+v", back[0].Box)
	}
}

func TestFromRecords_SkipsBadBBox(t *testing.T) {
	recs := []Record{
		{Nominal: "8", BBox: []float64{1, 2, 3}},
		{Nominal: "9", BBox: []float64{10, 20, 60, 50}},
	}
	back := FromRecords(recs)
	if len(back) != 1 {
		t.Fatalf("got %d callouts, want 1 (bad bbox skipped)", len(back))
	}
	if back[0].ID != 1 {
		t.Errorf("serials must be reassigned contiguously, got %d", back[0].ID)
	}
}
