package dimension

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Type classifies what kind of measurable characteristic a dimension
// string describes.
type Type string

const (
	Length   Type = "Length"
	Diameter Type = "Diameter"
	Radius   Type = "Radius"
	Angular  Type = "Angular"
	Position Type = "Position"
	Profile  Type = "Profile"
	GDT      Type = "GDT"
	Unknown  Type = "Unknown"
)

// TypeFromString maps a stored type label back to a Type. Unrecognized
// labels (including the legacy "Other") map to Unknown.
func TypeFromString(s string) Type {
	switch Type(strings.TrimSpace(s)) {
	case Length, Diameter, Radius, Angular, Position, Profile, GDT:
		return Type(strings.TrimSpace(s))
	default:
		return Unknown
	}
}

// Parsed is the structured interpretation of a dimension string.
//
// For classified dimensions, Nominal holds the numeric value and
// UpperTol/LowerTol the tolerance offsets from nominal, with LowerTol
// normalized so that LowerTol <= UpperTol always brackets nominal
// correctly. For unclassified text, Classified is false, Type is Unknown,
// and Raw preserves the original string for manual correction.
type Parsed struct {
	// Raw is the original input text, always preserved.
	Raw string `json:"raw"`

	// Nominal is the numeric nominal value. Only meaningful when
	// Classified is true.
	Nominal float64 `json:"nominal"`

	// UpperTol and LowerTol are signed offsets from Nominal. LowerTol is
	// normalized to be <= 0 when supplied as a bare magnitude.
	UpperTol float64 `json:"upper_tol"`
	LowerTol float64 `json:"lower_tol"`

	// Type is the detected dimension type, Unknown when classification
	// failed.
	Type Type `json:"type"`

	// GDT holds the matched frame symbol when Type is GDT.
	GDT *GDTSymbol `json:"gdt,omitempty"`

	// Classified is false when the text could not be interpreted as a
	// dimensional value. Unclassified results are never dropped; they
	// surface as editable Unknown rows.
	Classified bool `json:"classified"`
}

// NominalText returns the nominal value as display text: the formatted
// number for classified dimensions, the raw input otherwise.
func (p Parsed) NominalText() string {
	if !p.Classified {
		return p.Raw
	}
	return strconv.FormatFloat(p.Nominal, 'f', -1, 64)
}

// Limits returns the lower and upper limits (nominal + tolerance) of the
// dimension. After normalization lower <= upper always holds.
func (p Parsed) Limits() (lower, upper float64) {
	return p.Nominal + p.LowerTol, p.Nominal + p.UpperTol
}

var (
	numberRe     = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
	plusMinusRe  = regexp.MustCompile(`±\s*(\d+(?:\.\d+)?)`)
	splitTolRe   = regexp.MustCompile(`\+\s*(\d+(?:\.\d+)?)\s*/?\s*-\s*(\d+(?:\.\d+)?)`)
	radiusRe     = regexp.MustCompile(`^[Rr]\s*\d`)
	unitSuffixRe = regexp.MustCompile(`(?i)\s*(mm|cm|in|")\s*$`)
)

// diameter glyph variants seen across drawing fonts
const diameterRunes = "⌀Ø∅ø"

// IsDimensionalValue reports whether text plausibly contains a
// dimensional value: at least one numeric token after normalization and
// not purely alphabetic. Used as a cheap pre-filter so titles, part
// numbers rendered as words, and notes skip the full parse.
func IsDimensionalValue(text string) bool {
	norm := normalize(text)
	if norm == "" {
		return false
	}
	hasDigit := false
	alphaOnly := true
	for _, r := range norm {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			alphaOnly = false
		}
	}
	if alphaOnly {
		return false
	}
	return hasDigit
}

// Parse interprets free-form dimension text into a Parsed record.
//
// Recognized structure, in order of precedence:
//   - GD&T frame symbols (see GDTSymbols) classify the text as GDT
//   - a diameter glyph (⌀, Ø, ∅) classifies as Diameter
//   - a degree sign classifies as Angular
//   - a leading R before a digit classifies as Radius
//   - anything else with a numeric value is a plain Length
//
// Tolerances are accepted as ±N or +N/-M (slash optional). Decimal commas
// are normalized to periods. A bare lower-tolerance magnitude is negated
// so nominal+lower <= nominal+upper holds regardless of the drawing's
// sign convention.
//
// Text with no recoverable numeric value yields an unclassified result
// rather than an error: Type Unknown, Classified false, Raw preserved.
func Parse(text string) Parsed {
	return parse(text, "", "")
}

// ParseWithTolerances parses a dimension whose tolerances arrive already
// split, as with stacked upper/lower limit text extracted on separate
// lines. Explicit upper/lower strings override any inline tolerance
// suffix found in value.
func ParseWithTolerances(value, upper, lower string) Parsed {
	return parse(value, upper, lower)
}

func parse(text, upper, lower string) Parsed {
	p := Parsed{Raw: text, Type: Unknown}

	norm := normalize(text)
	if norm == "" {
		return p
	}

	// Ratio notation ("1:2", "SCALE 1:5") is a scale designator, not a
	// dimension, even though it carries numeric tokens.
	if strings.ContainsRune(norm, ':') {
		return p
	}

	// Classification cues. GD&T frames win over everything; the frame
	// tolerance value is still parsed numerically below.
	typ := Length
	if sym := findGDTSymbol(norm); sym != nil {
		typ = GDT
		p.GDT = sym
		norm = strings.ReplaceAll(norm, sym.Symbol, " ")
	} else if i := strings.IndexAny(norm, diameterRunes); i >= 0 {
		typ = Diameter
		norm = removeRunesAny(norm, diameterRunes)
	} else if strings.ContainsRune(norm, '°') {
		typ = Angular
		norm = strings.ReplaceAll(norm, "°", " ")
	} else if radiusRe.MatchString(norm) {
		typ = Radius
		norm = norm[1:]
	}

	norm = unitSuffixRe.ReplaceAllString(norm, "")

	// Inline tolerance suffixes, stripped before the nominal scan so the
	// tolerance digits are not mistaken for the nominal.
	var upperTol, lowerTol float64
	var haveTol bool
	if m := splitTolRe.FindStringSubmatch(norm); m != nil {
		upperTol, _ = strconv.ParseFloat(m[1], 64)
		lowerTol, _ = strconv.ParseFloat(m[2], 64)
		lowerTol = -lowerTol
		haveTol = true
		norm = splitTolRe.ReplaceAllString(norm, " ")
	} else if m := plusMinusRe.FindStringSubmatch(norm); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		upperTol, lowerTol = v, -v
		haveTol = true
		norm = plusMinusRe.ReplaceAllString(norm, " ")
	}

	// Caller-split tolerances take precedence over inline suffixes.
	if u := normalize(upper); u != "" {
		if v, err := strconv.ParseFloat(strings.TrimPrefix(u, "+"), 64); err == nil {
			upperTol = v
			haveTol = true
		}
	}
	if l := normalize(lower); l != "" {
		if v, err := strconv.ParseFloat(strings.TrimPrefix(l, "+"), 64); err == nil {
			lowerTol = v
			haveTol = true
		}
	}

	tok := numberRe.FindString(norm)
	if tok == "" {
		// No nominal value recoverable; the cue alone is not enough to
		// classify.
		return p
	}
	nominal, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return p
	}

	p.Nominal = nominal
	p.Type = typ
	p.Classified = true
	if haveTol {
		// Lower tolerance is an offset below nominal; a positive
		// magnitude means the drawing gave |lower| without a sign.
		if lowerTol > 0 {
			lowerTol = -lowerTol
		}
		p.UpperTol = upperTol
		p.LowerTol = lowerTol
		if p.LowerTol > p.UpperTol {
			p.LowerTol, p.UpperTol = p.UpperTol, p.LowerTol
		}
	}
	return p
}

// normalize trims whitespace and converts decimal commas to periods.
func normalize(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
}

func removeRunesAny(s, set string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(set, r) {
			return ' '
		}
		return r
	}, s)
}
