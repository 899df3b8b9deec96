package wx

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Cloud cover codes as reported by aviationweather.gov.
const (
	CoverSKC = "SKC"
	CoverCLR = "CLR"
	CoverFEW = "FEW"
	CoverSCT = "SCT"
	CoverBKN = "BKN"
	CoverOVC = "OVC"
	CoverOVX = "OVX"
)

// CloudLayer is one reported cloud layer. Base is feet AGL and may be
// absent (vertical visibility reports, for instance, carry no base).
type CloudLayer struct {
	Cover string `json:"cover"`
	Base  *int   `json:"base,omitempty"`
}

// Visibility carries the upstream visib field, which arrives either as a
// number (4.97) or as a string with plus-notation ("6+", "10+").
type Visibility struct {
	raw     string
	present bool
}

// Vis builds a Visibility from its textual form, mainly for tests and
// hand-assembled documents.
func Vis(s string) Visibility {
	return Visibility{raw: s, present: s != ""}
}

// Present reports whether any visibility value was reported at all,
// parseable or not.
func (v Visibility) Present() bool { return v.present }

// Value parses the reported visibility in statute miles. Plus-notation
// adds 0.1 so that "6+" sorts strictly above exactly 6, resolving the
// boundary in favour of the less severe category. Returns false when
// absent or unparseable.
func (v Visibility) Value() (float64, bool) {
	if !v.present {
		return 0, false
	}
	s := strings.TrimSpace(v.raw)
	if strings.HasSuffix(s, "+") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "+"), 64)
		if err != nil {
			return 0, false
		}
		return n + 0.1, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (v Visibility) String() string { return v.raw }

func (v *Visibility) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*v = Visibility{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = Vis(str)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = Vis(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

func (v Visibility) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// WindDir is a wind direction in degrees. The upstream field is either a
// number or the string "VRB"; variable winds decode to "no value" since
// direction has no meaningful point value then.
type WindDir struct {
	deg     int
	present bool
}

// Deg builds a fixed wind direction, mainly for tests.
func Deg(d int) WindDir { return WindDir{deg: d, present: true} }

func (w WindDir) Value() (int, bool) { return w.deg, w.present }

func (w *WindDir) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*w = WindDir{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		// "VRB" and friends carry no fixed direction.
		*w = WindDir{}
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*w = Deg(int(n))
	return nil
}

func (w WindDir) MarshalJSON() ([]byte, error) {
	if !w.present {
		return []byte("null"), nil
	}
	return json.Marshal(w.deg)
}

// Forecast change-group designators.
const (
	ChangeFM    = "FM"
	ChangeBECMG = "BECMG"
	ChangeTEMPO = "TEMPO"
	ChangePROB  = "PROB"
)

// ForecastPeriod is one base period or change group within a TAF.
// Times are unix seconds, matching the upstream JSON.
type ForecastPeriod struct {
	TimeFrom    int64        `json:"timeFrom"`
	TimeTo      int64        `json:"timeTo"`
	TimeBec     *int64       `json:"timeBec,omitempty"`
	FcstChange  string       `json:"fcstChange,omitempty"`
	Probability *int         `json:"probability,omitempty"`
	Wdir        WindDir      `json:"wdir,omitempty"`
	Wspd        *int         `json:"wspd,omitempty"`
	Wgst        *int         `json:"wgst,omitempty"`
	Visib       Visibility   `json:"visib,omitempty"`
	WxString    string       `json:"wxString,omitempty"`
	Clouds      []CloudLayer `json:"clouds,omitempty"`
}

// IsBase reports whether this period belongs to the base partition.
// The upstream API labels successive base periods "FM"; an absent
// fcstChange marks the initial one.
func (p ForecastPeriod) IsBase() bool {
	return p.FcstChange == "" || p.FcstChange == ChangeFM
}

// IsBecoming reports a BECMG transition group.
func (p ForecastPeriod) IsBecoming() bool {
	return p.FcstChange == ChangeBECMG
}

// IsTemporary reports a TEMPO or PROB group ("PROB30" and "PROB40"
// included); both overlay temporarily and are classified identically.
func (p ForecastPeriod) IsTemporary() bool {
	return p.FcstChange == ChangeTEMPO || strings.HasPrefix(p.FcstChange, ChangePROB)
}

// Covers reports whether the half-open window [TimeFrom, TimeTo)
// contains t. Malformed periods (TimeTo <= TimeFrom) never cover.
func (p ForecastPeriod) Covers(t int64) bool {
	return p.TimeFrom <= t && t < p.TimeTo
}

// TAF is a structured forecast document for one station.
type TAF struct {
	ICAOID        string           `json:"icaoId"`
	IssueTime     string           `json:"issueTime,omitempty"`
	ValidTimeFrom int64            `json:"validTimeFrom"`
	ValidTimeTo   int64            `json:"validTimeTo"`
	RawTAF        string           `json:"rawTAF,omitempty"`
	Fcsts         []ForecastPeriod `json:"fcsts"`
}

// METAR is a structured current observation for one station, as served
// by the upstream data API.
type METAR struct {
	ICAOID     string       `json:"icaoId"`
	ReportTime string       `json:"reportTime"`
	Temp       *float64     `json:"temp,omitempty"`
	Dewp       *float64     `json:"dewp,omitempty"`
	Wdir       WindDir      `json:"wdir,omitempty"`
	Wspd       *int         `json:"wspd,omitempty"`
	Wgst       *int         `json:"wgst,omitempty"`
	Visib      Visibility   `json:"visib,omitempty"`
	Altim      *float64     `json:"altim,omitempty"`
	WxString   string       `json:"wxString,omitempty"`
	FltCat     string       `json:"fltCat,omitempty"`
	Clouds     []CloudLayer `json:"clouds,omitempty"`
	RawOb      string       `json:"rawOb,omitempty"`
}

var reportTimeLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ReportedAt parses the observation timestamp. The upstream format has
// shifted between releases, so a few layouts are tried.
func (m METAR) ReportedAt() (time.Time, bool) {
	for _, layout := range reportTimeLayouts {
		if t, err := time.Parse(layout, m.ReportTime); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
