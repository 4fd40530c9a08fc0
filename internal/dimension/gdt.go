package dimension

// GDTSymbol is a recognized GD&T frame symbol with its standard name.
type GDTSymbol struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// GDTSymbols maps GD&T frame characters to their standard names.
//
// The table covers the form, orientation, location, and runout controls
// commonly found in dimension frames on engineering drawings. It is the
// default lookup used by Parse; callers with drawing sets that use
// non-standard glyphs can install additional entries before parsing.
var GDTSymbols = map[string]string{
	"⏥": "Flatness",
	"↗": "Straightness",
	"⏤": "Cylindricity",
	"○": "Circularity",
	"⌭": "Profile of a Line",
	"⌒": "Profile of a Surface",
	"⌓": "Perpendicularity",
	"⏊": "Parallelism",
	"∠": "Angularity",
	"⫽": "Position",
	"⌯": "Concentricity",
	"⌖": "Symmetry",
	"◎": "Circular Runout",
	"⌰": "Total Runout",
}

// findGDTSymbol returns the first GD&T symbol present in text, if any.
func findGDTSymbol(text string) *GDTSymbol {
	for _, r := range text {
		if name, ok := GDTSymbols[string(r)]; ok {
			return &GDTSymbol{Symbol: string(r), Name: name}
		}
	}
	return nil
}
