package awc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetarsRequestShape(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"icaoId":"KSFO","reportTime":"2026-08-30 17:53:00","visib":"10+","fltCat":"VFR"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client()).WithBaseURL(srv.URL)
	metars, err := client.Metars(context.Background(), []string{"KSFO", "KOAK"})
	require.NoError(t, err)

	assert.Equal(t, "/metar", gotPath)
	assert.Equal(t, "format=json&ids=KSFO%2CKOAK", gotQuery)
	require.Len(t, metars, 1)
	assert.Equal(t, "KSFO", metars[0].ICAOID)
	vis, ok := metars[0].Visib.Value()
	require.True(t, ok)
	assert.InDelta(t, 10.1, vis, 1e-9)
}

func TestTafsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"icaoId": "KSFO",
			"validTimeFrom": 1700000000,
			"validTimeTo": 1700086400,
			"fcsts": [{"timeFrom": 1700000000, "timeTo": 1700086400, "wdir": "VRB", "visib": 6}]
		}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client()).WithBaseURL(srv.URL)
	tafs, err := client.Tafs(context.Background(), []string{"KSFO"})
	require.NoError(t, err)

	require.Len(t, tafs, 1)
	require.Len(t, tafs[0].Fcsts, 1)
	_, ok := tafs[0].Fcsts[0].Wdir.Value()
	assert.False(t, ok)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client()).WithBaseURL(srv.URL)
	client.backoff = BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

	_, err := client.Metars(context.Background(), []string{"KSFO"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestFetchGivesUpAfterMaxRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client()).WithBaseURL(srv.URL)
	client.backoff = BackoffConfig{MaxRetries: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

	_, err := client.Metars(context.Background(), []string{"KSFO"})
	assert.Error(t, err)
}

func TestFetchRequiresStations(t *testing.T) {
	client := NewClient(http.DefaultClient)
	_, err := client.Metars(context.Background(), nil)
	assert.Error(t, err)
}
