// Package history reconstructs flight-category time series from stored
// snapshots. METAR series come straight from rows; TAF series re-run
// the forecast engine over each stored document's authority window, so
// live display and backfill share one evaluation path.
package history

import (
	"log"
	"time"

	"github.com/csiess85/deckenhoehe/internal/snapshot"
	"github.com/csiess85/deckenhoehe/internal/wx"
)

// DefaultStep is the tick interval for TAF series reconstruction.
const DefaultStep = time.Hour

// Point is one reconstructed sample.
type Point struct {
	Time     time.Time   `json:"time"`
	Category wx.Category `json:"category"`
}

// MetarPoint is one stored observation sample.
type MetarPoint struct {
	Time      time.Time   `json:"time"`
	Category  wx.Category `json:"category"`
	CeilingFt *int        `json:"ceilingFt,omitempty"`
	Wspd      *int        `json:"wspd,omitempty"`
	Wgst      *int        `json:"wgst,omitempty"`
}

// Reconstructor expands stored snapshots into time series.
type Reconstructor struct {
	store  *snapshot.Store
	engine wx.Engine
}

func NewReconstructor(store *snapshot.Store, engine wx.Engine) *Reconstructor {
	return &Reconstructor{store: store, engine: engine}
}

// MetarSeries returns the stored observation series for a station.
func (r *Reconstructor) MetarSeries(icaoID string, from, to time.Time) ([]MetarPoint, error) {
	rows, err := r.store.MetarRange(icaoID, from, to)
	if err != nil {
		return nil, err
	}

	points := make([]MetarPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, MetarPoint{
			Time:      row.ReportTime,
			Category:  wx.ParseCategory(row.Category),
			CeilingFt: row.CeilingFt,
			Wspd:      row.Wspd,
			Wgst:      row.Wgst,
		})
	}
	return points, nil
}

// TafSeries reconstructs the forecast category series for [from, to).
// Each stored document is authoritative from its own fetch time until
// the next stored document's fetch time (or the range end), and never
// beyond its own validity window. The engine is re-invoked at every
// step tick inside that window; ticks are aligned to multiples of step.
func (r *Reconstructor) TafSeries(icaoID string, from, to time.Time, step time.Duration) ([]Point, error) {
	if step <= 0 {
		step = DefaultStep
	}

	snaps, err := r.store.TafHistory(icaoID, from, to)
	if err != nil {
		return nil, err
	}

	var points []Point
	for i, snap := range snaps {
		doc, err := snap.ParsedDocument()
		if err != nil {
			// A corrupt row should not sink the whole series.
			log.Printf("history: skipping snapshot %d for %s: %v", snap.ID, icaoID, err)
			continue
		}

		start := laterOf(snap.FetchTime, from)
		end := to
		if i+1 < len(snaps) {
			end = earlierOf(snaps[i+1].FetchTime, to)
		}

		// Clip to the document's own authority.
		start = laterOf(start, time.Unix(doc.ValidTimeFrom, 0))
		end = earlierOf(end, time.Unix(doc.ValidTimeTo, 0))

		for t := start.Truncate(step); t.Before(end); t = t.Add(step) {
			if t.Before(start) {
				continue
			}
			points = append(points, Point{
				Time:     t.UTC(),
				Category: r.engine.CategoryAt(doc, t.Unix()),
			})
		}
	}

	if len(points) == 0 {
		return nil, snapshot.ErrNotFound
	}
	return points, nil
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
