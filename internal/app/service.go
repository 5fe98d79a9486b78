package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/domain"
)

// Request carries the inbound parameters. Dates are opaque strings: two
// distinct spellings of the same calendar date are distinct cache keys.
type Request struct {
	City     string
	CheckIn  string
	CheckOut string
	Adults   int
}

// Result is the terminal success state of one recommendation request.
type Result struct {
	Hotels    []domain.HotelRecord
	FromCache bool
}

// RecommendationService sequences the pipeline: resolve city → evict stale
// snapshots → cache probe → authenticate → list → sample → batched offers →
// merge → sanitize → score → persist.
//
// Concurrent misses for the same key each run a full upstream fetch and the
// last writer wins. The snapshot store takes no locks; duplicate upstream
// work under that race is accepted.
type RecommendationService struct {
	client    domain.InventoryClient
	store     domain.SnapshotStore
	sampler   domain.Sampler
	rater     *RatingSynthesizer
	sampleCap int
	batchSize int
}

func NewRecommendationService(c domain.InventoryClient, st domain.SnapshotStore, sm domain.Sampler, r *RatingSynthesizer, sampleCap, batchSize int) *RecommendationService {
	if sampleCap <= 0 {
		sampleCap = 60
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	return &RecommendationService{client: c, store: st, sampler: sm, rater: r, sampleCap: sampleCap, batchSize: batchSize}
}

// GetOrFetch serves from the snapshot cache when possible and falls back to
// a live upstream fetch.
func (s *RecommendationService) GetOrFetch(ctx context.Context, req Request) (Result, error) {
	key, err := s.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if snap, ok := s.store.Get(ctx, key); ok {
		// Cached files are not trusted: a hand-edited or foreign snapshot
		// can carry non-finite values that would break JSON encoding.
		return Result{Hotels: SanitizeRecords(snap), FromCache: true}, nil
	}
	hotels, err := s.fetch(ctx, key, req.Adults)
	if err != nil {
		return Result{}, err
	}
	return Result{Hotels: hotels}, nil
}

// ForceRefresh always fetches live, bypassing the cache probe, and
// overwrites the persisted snapshot.
func (s *RecommendationService) ForceRefresh(ctx context.Context, req Request) (Result, error) {
	key, err := s.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	hotels, err := s.fetch(ctx, key, req.Adults)
	if err != nil {
		return Result{}, err
	}
	return Result{Hotels: hotels}, nil
}

// prepare validates input before any upstream call and evicts same-city
// snapshots for other date ranges (best-effort).
func (s *RecommendationService) prepare(ctx context.Context, req Request) (domain.CacheKey, error) {
	code, err := ResolveCity(req.City)
	if err != nil {
		return domain.CacheKey{}, err
	}
	if req.CheckIn == "" || req.CheckOut == "" {
		return domain.CacheKey{}, domain.NewError(domain.KindMissingDateRange, "both 'checkin_date' and 'checkout_date' are required")
	}
	key := domain.CacheKey{CityCode: code, CheckIn: req.CheckIn, CheckOut: req.CheckOut}
	s.store.EvictStaleForCity(ctx, code, key)
	return key, nil
}

func (s *RecommendationService) fetch(ctx context.Context, key domain.CacheKey, adults int) ([]domain.HotelRecord, error) {
	if adults <= 0 {
		adults = 1
	}

	token, err := s.client.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	listings, err := s.client.ListHotels(ctx, token, key.CityCode)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, domain.NewError(domain.KindNoInventory, fmt.Sprintf("no hotels found for city code %s", key.CityCode))
	}

	selected := s.sampler.Select(listings, s.sampleCap)
	ids := make([]string, 0, len(selected))
	for _, l := range selected {
		if id := l.HotelID(); id != "" {
			ids = append(ids, id)
		}
	}

	var offers []domain.RawOfferRecord
	for start := 0; start < len(ids); start += s.batchSize {
		end := min(start+s.batchSize, len(ids))
		batch, err := s.client.FetchOffers(ctx, token, ids[start:end], key.CheckIn, key.CheckOut, adults)
		if err != nil {
			return nil, err
		}
		offers = append(offers, batch...)
	}

	hotels := SanitizeRecords(MergeOffers(listings, offers))
	for i := range hotels {
		hotels[i].FinalRating = s.rater.Score(hotels[i].RawRating, hotels[i].PropertyType, hotels[i].Name)
	}

	// A failed write is not fatal: the result is already in memory.
	if err := s.store.Put(ctx, key, hotels); err != nil {
		log.Warn().Err(err).
			Str("city_code", key.CityCode).
			Msg("snapshot write failed, returning uncached result")
	}
	return hotels, nil
}
