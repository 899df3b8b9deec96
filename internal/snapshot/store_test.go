package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csiess85/deckenhoehe/internal/wx"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func intPtr(v int) *int { return &v }

func testMetar(icao, reportTime string) wx.METAR {
	return wx.METAR{
		ICAOID:     icao,
		ReportTime: reportTime,
		Visib:      wx.Vis("10"),
		Wspd:       intPtr(8),
		Clouds:     []wx.CloudLayer{{Cover: wx.CoverBKN, Base: intPtr(2500)}},
		RawOb:      "METAR " + icao,
	}
}

func testTaf(icao string, validFrom, validTo time.Time) wx.TAF {
	return wx.TAF{
		ICAOID:        icao,
		ValidTimeFrom: validFrom.Unix(),
		ValidTimeTo:   validTo.Unix(),
		Fcsts: []wx.ForecastPeriod{
			{
				TimeFrom: validFrom.Unix(),
				TimeTo:   validTo.Unix(),
				Visib:    wx.Vis("6+"),
				Clouds:   []wx.CloudLayer{{Cover: wx.CoverBKN, Base: intPtr(4000)}},
			},
		},
	}
}

func TestStoreMetarIdempotent(t *testing.T) {
	store := openTestStore(t)
	fetchTime := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	m := testMetar("KSFO", "2026-08-30 17:53:00")

	require.NoError(t, store.StoreMetar(fetchTime, m, intPtr(2500), intPtr(2500), wx.CatMVFR))
	// The same observation seen by a later fetch inserts nothing.
	require.NoError(t, store.StoreMetar(fetchTime.Add(15*time.Minute), m, intPtr(2500), intPtr(2500), wx.CatMVFR))

	rows, err := store.MetarRange("KSFO",
		time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MVFR", rows[0].Category)
	assert.WithinDuration(t, fetchTime, rows[0].FetchTime, time.Second)
}

func TestStoreMetarRejectsBadReportTime(t *testing.T) {
	store := openTestStore(t)
	m := testMetar("KSFO", "not a time")
	assert.Error(t, store.StoreMetar(time.Now().UTC(), m, nil, nil, wx.CatNone))
}

func TestLatestMetar(t *testing.T) {
	store := openTestStore(t)
	fetchTime := time.Now().UTC()

	require.NoError(t, store.StoreMetar(fetchTime, testMetar("KSFO", "2026-08-30 16:53:00"), nil, nil, wx.CatVFR))
	require.NoError(t, store.StoreMetar(fetchTime, testMetar("KSFO", "2026-08-30 17:53:00"), nil, nil, wx.CatMVFR))

	row, err := store.LatestMetar("KSFO")
	require.NoError(t, err)
	assert.Equal(t, "MVFR", row.Category)

	_, err = store.LatestMetar("KOAK")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreTafRoundTrip(t *testing.T) {
	store := openTestStore(t)
	validFrom := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	validTo := validFrom.Add(24 * time.Hour)
	taf := testTaf("KSFO", validFrom, validTo)
	out := wx.Outlook{Now: wx.CatVFR, H2: wx.CatVFR, H4: wx.CatVFR, H8: wx.CatVFR, H24: wx.CatNone}

	fetchTime := validFrom.Add(30 * time.Minute)
	require.NoError(t, store.StoreTaf(fetchTime, taf, out))
	// Unamended re-fetch is a no-op; FetchTime keeps the first sighting.
	require.NoError(t, store.StoreTaf(fetchTime.Add(time.Hour), taf, out))

	row, err := store.LatestTaf("KSFO")
	require.NoError(t, err)
	assert.WithinDuration(t, fetchTime, row.FetchTime, time.Second)
	assert.Equal(t, "VFR", row.CatNow)
	assert.Equal(t, "", row.Cat24h)

	doc, err := row.ParsedDocument()
	require.NoError(t, err)
	assert.Equal(t, taf.ValidTimeFrom, doc.ValidTimeFrom)
	require.Len(t, doc.Fcsts, 1)

	_, err = store.LatestTaf("KOAK")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTafHistoryIncludesPriorSnapshot(t *testing.T) {
	store := openTestStore(t)
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	// Fetched before the queried range but possibly still authoritative
	// at its start.
	prior := testTaf("KSFO", day, day.Add(24*time.Hour))
	require.NoError(t, store.StoreTaf(day.Add(1*time.Hour), prior, wx.Outlook{}))

	inRange := testTaf("KSFO", day.Add(6*time.Hour), day.Add(30*time.Hour))
	require.NoError(t, store.StoreTaf(day.Add(7*time.Hour), inRange, wx.Outlook{}))

	snaps, err := store.TafHistory("KSFO", day.Add(5*time.Hour), day.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.WithinDuration(t, day.Add(1*time.Hour), snaps[0].FetchTime, time.Second)
	assert.WithinDuration(t, day.Add(7*time.Hour), snaps[1].FetchTime, time.Second)

	_, err = store.TafHistory("KOAK", day, day.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}
