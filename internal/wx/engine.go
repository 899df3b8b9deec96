package wx

import "time"

// Horizons at which a fetched TAF is evaluated for the stored outlook.
var outlookHorizons = []time.Duration{
	0,
	2 * time.Hour,
	4 * time.Hour,
	8 * time.Hour,
	24 * time.Hour,
}

// Outlook is the fixed-horizon tuple of categories computed once at
// fetch time. It is derived, never authoritative: the engine can
// recompute any of it from the stored document.
type Outlook struct {
	Now Category `json:"now"`
	H2  Category `json:"2h"`
	H4  Category `json:"4h"`
	H8  Category `json:"8h"`
	H24 Category `json:"24h"`
}

// PointConditions are the resolved wind and ceiling values at one point
// in time. Fields are individually nil when nothing reported them.
type PointConditions struct {
	Wspd      *int `json:"wspd"`
	Wgst      *int `json:"wgst"`
	Wdir      *int `json:"wdir"`
	CeilingFt *int `json:"ceilingFt"`
}

// Engine evaluates TAF documents at arbitrary points in time. It owns
// no state beyond its classification scheme, so one Engine value is
// safe for any number of concurrent callers; both the live display
// path and the historical backfill share it.
type Engine struct {
	scheme Scheme
}

func NewEngine(scheme Scheme) Engine {
	return Engine{scheme: scheme}
}

func (e Engine) Scheme() Scheme { return e.scheme }

// PeriodCategory classifies a single forecast period from its own cloud
// and visibility fields. CatNone is returned only when the period
// reports neither; a period reporting clear skies and good visibility
// classifies as VFR, which is a different statement than "no data".
func (e Engine) PeriodCategory(p ForecastPeriod) Category {
	ceiling := Ceiling(p.Clouds)
	if ceiling == nil && len(p.Clouds) == 0 && !p.Visib.Present() {
		return CatNone
	}
	return e.scheme.Classify(ceiling, p.Visib)
}

// CategoryAt resolves the flight category a TAF forecasts for the
// instant t (unix seconds). Resolution order:
//
//  1. Outside [ValidTimeFrom, ValidTimeTo) the document has no
//     authority and the result is CatNone.
//  2. The first base period covering t supplies the starting category.
//  3. Every BECMG group whose transition has begun (TimeFrom <= t)
//     folds in via worst-case — permanent once begun, even past the
//     group's own TimeTo. TimeBec is deliberately not consulted.
//  4. Every TEMPO/PROB group covering t overlays via worst-case, but
//     only within its own window.
func (e Engine) CategoryAt(taf *TAF, t int64) Category {
	if taf == nil || t < taf.ValidTimeFrom || t >= taf.ValidTimeTo {
		return CatNone
	}

	cat := CatNone
	for _, p := range taf.Fcsts {
		if p.IsBase() && p.Covers(t) {
			cat = e.PeriodCategory(p)
			break
		}
	}

	for _, p := range taf.Fcsts {
		switch {
		case p.IsBecoming() && p.TimeFrom <= t:
			cat = Worse(cat, e.PeriodCategory(p))
		case p.IsTemporary() && p.Covers(t):
			cat = Worse(cat, e.PeriodCategory(p))
		}
	}

	return cat
}

// WeatherAt resolves wind and ceiling point values at t. The
// combination rule differs from CategoryAt because these are point
// values, not severities:
//
//   - the covering base period supplies initial values;
//   - a begun BECMG overwrites any field it explicitly reports;
//   - a covering TEMPO/PROB takes the per-field extreme — higher wind
//     and gust, lower ceiling — each field independently;
//   - wind direction has no "worse" ordering, so only BECMG ever
//     changes it.
//
// Returns nil outside the document's validity window.
func (e Engine) WeatherAt(taf *TAF, t int64) *PointConditions {
	if taf == nil || t < taf.ValidTimeFrom || t >= taf.ValidTimeTo {
		return nil
	}

	cond := &PointConditions{}
	for _, p := range taf.Fcsts {
		if p.IsBase() && p.Covers(t) {
			cond.Wspd = copyInt(p.Wspd)
			cond.Wgst = copyInt(p.Wgst)
			if deg, ok := p.Wdir.Value(); ok {
				cond.Wdir = &deg
			}
			cond.CeilingFt = Ceiling(p.Clouds)
			break
		}
	}

	for _, p := range taf.Fcsts {
		switch {
		case p.IsBecoming() && p.TimeFrom <= t:
			if p.Wspd != nil {
				cond.Wspd = copyInt(p.Wspd)
			}
			if p.Wgst != nil {
				cond.Wgst = copyInt(p.Wgst)
			}
			if deg, ok := p.Wdir.Value(); ok {
				cond.Wdir = &deg
			}
			if len(p.Clouds) > 0 {
				cond.CeilingFt = Ceiling(p.Clouds)
			}
		case p.IsTemporary() && p.Covers(t):
			if p.Wspd != nil && (cond.Wspd == nil || *p.Wspd > *cond.Wspd) {
				cond.Wspd = copyInt(p.Wspd)
			}
			if p.Wgst != nil && (cond.Wgst == nil || *p.Wgst > *cond.Wgst) {
				cond.Wgst = copyInt(p.Wgst)
			}
			if c := Ceiling(p.Clouds); c != nil && (cond.CeilingFt == nil || *c < *cond.CeilingFt) {
				cond.CeilingFt = c
			}
		}
	}

	return cond
}

// OutlookAt evaluates the fixed snapshot horizons from the reference
// time at. Horizons past the validity window come back as CatNone.
func (e Engine) OutlookAt(taf *TAF, at time.Time) Outlook {
	cats := make([]Category, len(outlookHorizons))
	for i, h := range outlookHorizons {
		cats[i] = e.CategoryAt(taf, at.Add(h).Unix())
	}
	return Outlook{Now: cats[0], H2: cats[1], H4: cats[2], H8: cats[3], H24: cats[4]}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
