package wx

import "fmt"

// kmPerStatuteMile converts reported statute miles for schemes whose
// visibility thresholds are metric.
const kmPerStatuteMile = 1.60934

// band is one row of a threshold table: values below max (or at max,
// when inclusive) fall into cat. Tables are ordered worst-first; a
// value above every band classifies as VFR.
type band struct {
	max       float64
	inclusive bool
	cat       Category
}

// Scheme is a flight-category classification scheme. Schemes differ
// only in their threshold tables; the classification logic is shared.
type Scheme struct {
	name       string
	ceilingFt  []band
	visibility []band
	// visScale converts statute miles into the unit the visibility
	// table is expressed in.
	visScale float64
}

// FourTier is the standard US VFR/MVFR/IFR/LIFR scheme: ceiling in
// feet, visibility in statute miles.
var FourTier = Scheme{
	name: "fourtier",
	ceilingFt: []band{
		{max: 500, cat: CatLIFR},
		{max: 1000, cat: CatIFR},
		{max: 3000, inclusive: true, cat: CatMVFR},
	},
	visibility: []band{
		{max: 1, cat: CatLIFR},
		{max: 3, cat: CatIFR},
		{max: 5, inclusive: true, cat: CatMVFR},
	},
	visScale: 1,
}

// TwoTier is the simplified VFR/IFR scheme: IFR at ceilings of 1500 ft
// or below, or visibility of 5 km or below.
var TwoTier = Scheme{
	name: "twotier",
	ceilingFt: []band{
		{max: 1500, inclusive: true, cat: CatIFR},
	},
	visibility: []band{
		{max: 5, inclusive: true, cat: CatIFR},
	},
	visScale: kmPerStatuteMile,
}

// SchemeByName resolves a configured scheme name.
func SchemeByName(name string) (Scheme, error) {
	switch name {
	case "", FourTier.name:
		return FourTier, nil
	case TwoTier.name:
		return TwoTier, nil
	default:
		return Scheme{}, fmt.Errorf("unknown classification scheme %q", name)
	}
}

func (s Scheme) Name() string { return s.name }

// Classify maps a ceiling and a reported visibility to the more severe
// of their independent classifications. A missing or unparseable axis
// contributes no restriction, so Classify(nil, absent) is VFR: "nothing
// restrictive reported" is deliberately optimistic, not unknown.
func (s Scheme) Classify(ceilingFt *int, visib Visibility) Category {
	byCeiling := CatVFR
	if ceilingFt != nil {
		byCeiling = lookup(s.ceilingFt, float64(*ceilingFt))
	}

	byVisibility := CatVFR
	if miles, ok := visib.Value(); ok {
		byVisibility = lookup(s.visibility, miles*s.visScale)
	}

	return Worse(byCeiling, byVisibility)
}

func lookup(bands []band, v float64) Category {
	for _, b := range bands {
		if v < b.max || (b.inclusive && v == b.max) {
			return b.cat
		}
	}
	return CatVFR
}
