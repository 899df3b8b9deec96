package wx

import "encoding/json"

// Category is a flight-category classification ordered by severity.
// CatNone means "insufficient data" and is less severe than any
// concrete category, so Worse(CatNone, x) == x.
type Category int8

const (
	CatNone Category = iota
	CatVFR
	CatMVFR
	CatIFR
	CatLIFR
)

func (c Category) String() string {
	switch c {
	case CatVFR:
		return "VFR"
	case CatMVFR:
		return "MVFR"
	case CatIFR:
		return "IFR"
	case CatLIFR:
		return "LIFR"
	default:
		return ""
	}
}

// MarshalJSON renders CatNone as null so API consumers can tell
// "no data" apart from any real category.
func (c Category) MarshalJSON() ([]byte, error) {
	if c == CatNone {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = CatNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}

// ParseCategory maps the upstream fltCat strings. Unknown values map to CatNone.
func ParseCategory(s string) Category {
	switch s {
	case "VFR":
		return CatVFR
	case "MVFR":
		return CatMVFR
	case "IFR":
		return CatIFR
	case "LIFR":
		return CatLIFR
	default:
		return CatNone
	}
}

// Worse returns the more severe of two categories.
func Worse(a, b Category) Category {
	if b > a {
		return b
	}
	return a
}
