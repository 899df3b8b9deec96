package snapshot

import (
	"time"

	"gorm.io/gorm"
)

// MetarSnapshot is one stored observation row. The unique index over
// (icao_id, report_time) makes inserts idempotent: re-fetching an
// unchanged observation adds nothing.
type MetarSnapshot struct {
	gorm.Model
	FetchTime  time.Time `gorm:"index" json:"fetchTime"`
	ICAOID     string    `gorm:"column:icao_id;uniqueIndex:idx_metar_station_report" json:"icaoId"`
	ReportTime time.Time `gorm:"uniqueIndex:idx_metar_station_report" json:"reportTime"`

	Category     string `json:"category,omitempty"`
	CeilingFt    *int   `json:"ceilingFt,omitempty"`
	LowestBaseFt *int   `json:"lowestBaseFt,omitempty"`

	Visib    string   `json:"visib,omitempty"`
	Wdir     *int     `json:"wdir,omitempty"`
	Wspd     *int     `json:"wspd,omitempty"`
	Wgst     *int     `json:"wgst,omitempty"`
	Temp     *float64 `json:"temp,omitempty"`
	Dewp     *float64 `json:"dewp,omitempty"`
	Altim    *float64 `json:"altim,omitempty"`
	WxString string   `json:"wxString,omitempty"`
	RawOb    string   `json:"rawOb,omitempty"`
}

// TafSnapshot is one stored forecast row: the fixed-horizon outlook
// computed at fetch time, plus the full document so history queries
// can re-evaluate it at arbitrary ticks. Keyed (icao_id, valid_from):
// a re-fetch of the same unamended forecast is a no-op, so FetchTime
// keeps marking when the document first appeared.
type TafSnapshot struct {
	gorm.Model
	FetchTime time.Time `gorm:"index" json:"fetchTime"`
	ICAOID    string    `gorm:"column:icao_id;uniqueIndex:idx_taf_station_valid" json:"icaoId"`
	ValidFrom time.Time `gorm:"uniqueIndex:idx_taf_station_valid" json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`

	CatNow string `json:"catNow,omitempty"`
	Cat2h  string `json:"cat2h,omitempty"`
	Cat4h  string `json:"cat4h,omitempty"`
	Cat8h  string `json:"cat8h,omitempty"`
	Cat24h string `json:"cat24h,omitempty"`

	// Document is the raw TAF JSON as fetched.
	Document string `json:"-"`
}
