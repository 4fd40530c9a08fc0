package cluster

import (
	"github.com/quintrel/balloontool/internal/dimension"
	"github.com/quintrel/balloontool/internal/geometry"
)

// Record is the flat backend shape a Callout maps to. Field names match
// the inspection backend's payload.
type Record struct {
	Nominal            string    `json:"nominal"`
	UpperTol           float64   `json:"uppertol"`
	LowerTol           float64   `json:"lowertol"`
	Zone               string    `json:"zone"`
	DimensionType      string    `json:"dimension_type"`
	MeasuredInstrument string    `json:"measured_instrument"`
	BBox               []float64 `json:"bbox"`
	OpNo               string    `json:"op_no,omitempty"`
	OrderID            int       `json:"order_id,omitempty"`
	DocumentID         int       `json:"document_id,omitempty"`
	IPID               string    `json:"ipid,omitempty"`
	PartNumber         string    `json:"part_number,omitempty"`
}

// RecordContext carries the order/operation identifiers a record needs
// beyond what the callout itself knows.
type RecordContext struct {
	OpNo               string
	OrderID            int
	DocumentID         int
	IPID               string
	PartNumber         string
	MeasuredInstrument string
}

// Record flattens the callout into the backend shape. The lower tolerance
// is stored non-positive, zone defaults to "N/A", type to "Unknown" and
// instrument to "Not Specified" — the backend rejects empty strings for
// those fields.
func (c *Callout) Record(ctx RecordContext) Record {
	rec := Record{
		Zone:               c.Zone,
		DimensionType:      string(c.Type()),
		MeasuredInstrument: ctx.MeasuredInstrument,
		BBox:               c.Box.Flatten(),
		OpNo:               ctx.OpNo,
		OrderID:            ctx.OrderID,
		DocumentID:         ctx.DocumentID,
		IPID:               ctx.IPID,
		PartNumber:         ctx.PartNumber,
	}

	if c.Dimension != nil {
		rec.Nominal = c.Dimension.NominalText()
		rec.UpperTol = c.Dimension.UpperTol
		rec.LowerTol = c.Dimension.LowerTol
	}
	if rec.LowerTol > 0 {
		rec.LowerTol = -rec.LowerTol
	}
	if rec.Zone == "" {
		rec.Zone = "N/A"
	}
	if rec.DimensionType == "" {
		rec.DimensionType = string(dimension.Unknown)
	}
	if rec.MeasuredInstrument == "" {
		rec.MeasuredInstrument = "Not Specified"
	}
	return rec
}

// FromRecords rebuilds a callout list from stored records, re-parsing
// each nominal string and then overlaying the stored tolerances and type.
// The round trip is lossy only in that free-form GD&T symbol text is
// re-parsed rather than stored verbatim. Records with unusable bbox data
// are skipped; serials are reassigned 1..N in record order.
func FromRecords(recs []Record) []Callout {
	callouts := make([]Callout, 0, len(recs))
	for _, rec := range recs {
		poly, ok := geometry.PolygonFromFlat(rec.BBox)
		if !ok {
			continue
		}

		parsed := dimension.Parse(rec.Nominal)
		parsed.UpperTol = rec.UpperTol
		parsed.LowerTol = rec.LowerTol
		if parsed.LowerTol > 0 {
			parsed.LowerTol = -parsed.LowerTol
		}
		if typ := dimension.TypeFromString(rec.DimensionType); typ != dimension.Unknown {
			parsed.Type = typ
		}

		z := rec.Zone
		if z == "" {
			z = "N/A"
		}

		callouts = append(callouts, Callout{
			Box:       poly,
			Dimension: &parsed,
			Zone:      z,
		})
	}
	renumberSequential(callouts)
	return callouts
}
