package wx

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Provider abstracts the upstream aviation weather data source.
// Requests are batched by ICAO code set.
type Provider interface {
	Metars(ctx context.Context, icaoIDs []string) ([]METAR, error)
	Tafs(ctx context.Context, icaoIDs []string) ([]TAF, error)
}

// Store is the contract the snapshot store must satisfy. Both writes
// are idempotent keyed by station and observation/validity time, so
// re-fetching an unchanged report inserts nothing.
type Store interface {
	StoreMetar(fetchTime time.Time, m METAR, ceilingFt, lowestBaseFt *int, cat Category) error
	StoreTaf(fetchTime time.Time, t TAF, out Outlook) error
}

// Service orchestrates fetching observations and forecasts for a set
// of stations and persisting computed snapshots.
type Service struct {
	store    Store
	provider Provider
	engine   Engine
}

func NewService(store Store, provider Provider, engine Engine) *Service {
	return &Service{
		store:    store,
		provider: provider,
		engine:   engine,
	}
}

func (s *Service) Engine() Engine { return s.engine }

// FetchAndStore fetches METARs and TAFs for the given stations
// concurrently, derives categories and outlooks, and stores one
// snapshot per report. Partial success is fine: a failed METAR batch
// does not block TAF snapshots and vice versa.
func (s *Service) FetchAndStore(ctx context.Context, icaoIDs []string) error {
	if len(icaoIDs) == 0 {
		return fmt.Errorf("no stations configured")
	}

	fetchTime := time.Now().UTC()

	var (
		wg       sync.WaitGroup
		metars   []METAR
		tafs     []TAF
		metarErr error
		tafErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		metars, metarErr = s.provider.Metars(ctx, icaoIDs)
	}()
	go func() {
		defer wg.Done()
		tafs, tafErr = s.provider.Tafs(ctx, icaoIDs)
	}()
	wg.Wait()

	if metarErr != nil {
		log.Printf("metar fetch failed: %v", metarErr)
	}
	if tafErr != nil {
		log.Printf("taf fetch failed: %v", tafErr)
	}
	if metarErr != nil && tafErr != nil {
		return fmt.Errorf("fetch failed for all report types: %w", metarErr)
	}

	for _, m := range metars {
		if err := s.storeMetar(fetchTime, m); err != nil {
			log.Printf("store metar for %s failed: %v", m.ICAOID, err)
		}
	}
	for _, t := range tafs {
		if err := s.storeTaf(fetchTime, t); err != nil {
			log.Printf("store taf for %s failed: %v", t.ICAOID, err)
		}
	}

	return nil
}

func (s *Service) storeMetar(fetchTime time.Time, m METAR) error {
	ceiling := Ceiling(m.Clouds)
	lowest := LowestCloudBase(m.Clouds)

	// Upstream usually classifies for us; fall back to our own scheme
	// when the field is missing so stored rows stay comparable.
	cat := ParseCategory(m.FltCat)
	if cat == CatNone && (len(m.Clouds) > 0 || m.Visib.Present()) {
		cat = s.engine.Scheme().Classify(ceiling, m.Visib)
	}

	return s.store.StoreMetar(fetchTime, m, ceiling, lowest, cat)
}

func (s *Service) storeTaf(fetchTime time.Time, t TAF) error {
	return s.store.StoreTaf(fetchTime, t, s.engine.OutlookAt(&t, fetchTime))
}
