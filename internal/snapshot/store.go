// Package snapshot persists computed weather snapshots as append-only
// relational rows. Rows are superseded by newer fetches, never mutated.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/csiess85/deckenhoehe/internal/wx"
)

// ErrNotFound is returned when no snapshot exists for a station.
var ErrNotFound = errors.New("no snapshot for station")

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&MetarSnapshot{}, &TafSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// StoreMetar inserts one observation snapshot. Duplicate reports
// (same station and report time) are silently skipped.
func (s *Store) StoreMetar(fetchTime time.Time, m wx.METAR, ceilingFt, lowestBaseFt *int, cat wx.Category) error {
	reportedAt, ok := m.ReportedAt()
	if !ok {
		return fmt.Errorf("metar for %s has unparseable report time %q", m.ICAOID, m.ReportTime)
	}

	row := &MetarSnapshot{
		FetchTime:    fetchTime,
		ICAOID:       m.ICAOID,
		ReportTime:   reportedAt,
		Category:     cat.String(),
		CeilingFt:    ceilingFt,
		LowestBaseFt: lowestBaseFt,
		Visib:        m.Visib.String(),
		Wspd:         m.Wspd,
		Wgst:         m.Wgst,
		Temp:         m.Temp,
		Dewp:         m.Dewp,
		Altim:        m.Altim,
		WxString:     m.WxString,
		RawOb:        m.RawOb,
	}
	if deg, ok := m.Wdir.Value(); ok {
		row.Wdir = &deg
	}

	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

// StoreTaf inserts one forecast snapshot. A re-fetch of a document
// with an unchanged validity window is silently skipped, so FetchTime
// records when the document was first seen.
func (s *Store) StoreTaf(fetchTime time.Time, t wx.TAF, out wx.Outlook) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal taf document for %s: %w", t.ICAOID, err)
	}

	row := &TafSnapshot{
		FetchTime: fetchTime,
		ICAOID:    t.ICAOID,
		ValidFrom: time.Unix(t.ValidTimeFrom, 0).UTC(),
		ValidTo:   time.Unix(t.ValidTimeTo, 0).UTC(),
		CatNow:    out.Now.String(),
		Cat2h:     out.H2.String(),
		Cat4h:     out.H4.String(),
		Cat8h:     out.H8.String(),
		Cat24h:    out.H24.String(),
		Document:  string(doc),
	}

	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

// LatestMetar returns the most recent observation snapshot for a station.
func (s *Store) LatestMetar(icaoID string) (*MetarSnapshot, error) {
	var row MetarSnapshot
	result := s.db.Where("icao_id = ?", icaoID).Order("report_time desc").First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &row, nil
}

// LatestTaf returns the most recently fetched forecast snapshot for a station.
func (s *Store) LatestTaf(icaoID string) (*TafSnapshot, error) {
	var row TafSnapshot
	result := s.db.Where("icao_id = ?", icaoID).Order("fetch_time desc").First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &row, nil
}

// MetarRange returns observation snapshots with report times in
// [from, to], oldest first.
func (s *Store) MetarRange(icaoID string, from, to time.Time) ([]MetarSnapshot, error) {
	var rows []MetarSnapshot
	result := s.db.Where("icao_id = ? AND report_time BETWEEN ? AND ?", icaoID, from, to).
		Order("report_time asc").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// TafHistory returns the forecast snapshots needed to reconstruct
// [from, to]: all fetched within the range plus the last one fetched
// before it, which may still be authoritative at the range start.
// Oldest first.
func (s *Store) TafHistory(icaoID string, from, to time.Time) ([]TafSnapshot, error) {
	var prior []TafSnapshot
	result := s.db.Where("icao_id = ? AND fetch_time < ?", icaoID, from).
		Order("fetch_time desc").
		Limit(1).
		Find(&prior)
	if result.Error != nil {
		return nil, result.Error
	}

	var rows []TafSnapshot
	result = s.db.Where("icao_id = ? AND fetch_time >= ? AND fetch_time <= ?", icaoID, from, to).
		Order("fetch_time asc").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	rows = append(prior, rows...)
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// ParsedDocument re-parses the stored TAF JSON.
func (t *TafSnapshot) ParsedDocument() (*wx.TAF, error) {
	var doc wx.TAF
	if err := json.Unmarshal([]byte(t.Document), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal stored taf for %s: %w", t.ICAOID, err)
	}
	return &doc, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
