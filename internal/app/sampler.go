package app

import (
	"math/rand"
	"sync"

	"hotel_recommender/internal/domain"
)

// UniformSampler picks up to limit listings uniformly at random.
type UniformSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewUniformSampler(rng *rand.Rand) *UniformSampler {
	return &UniformSampler{rng: rng}
}

func (s *UniformSampler) Select(listings []domain.RawHotelListing, limit int) []domain.RawHotelListing {
	if limit <= 0 || len(listings) <= limit {
		out := make([]domain.RawHotelListing, len(listings))
		copy(out, listings)
		return out
	}
	s.mu.Lock()
	perm := s.rng.Perm(len(listings))
	s.mu.Unlock()

	out := make([]domain.RawHotelListing, 0, limit)
	for _, i := range perm[:limit] {
		out = append(out, listings[i])
	}
	return out
}

// TieredSampler favors well-rated brand hotels: it draws up to quota from a
// preferred bucket (rating ≥ 4.0 and a premium-brand name match), fills the
// remainder from the rest, then shuffles the combined selection.
type TieredSampler struct {
	mu    sync.Mutex
	rng   *rand.Rand
	quota int
}

func NewTieredSampler(rng *rand.Rand, quota int) *TieredSampler {
	if quota <= 0 {
		quota = 10
	}
	return &TieredSampler{rng: rng, quota: quota}
}

func (s *TieredSampler) Select(listings []domain.RawHotelListing, limit int) []domain.RawHotelListing {
	if limit <= 0 || len(listings) <= limit {
		out := make([]domain.RawHotelListing, len(listings))
		copy(out, listings)
		return out
	}

	var preferred, rest []domain.RawHotelListing
	for _, l := range listings {
		if isPreferred(l) {
			preferred = append(preferred, l)
		} else {
			rest = append(rest, l)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One shuffle per bucket, then take slices: the head of preferred up to
	// quota, rest for the remainder, and preferred's tail as a final top-up
	// when rest runs out. No listing can be drawn twice.
	shuffled := func(src []domain.RawHotelListing) []domain.RawHotelListing {
		out := make([]domain.RawHotelListing, len(src))
		copy(out, src)
		s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	pref, other := shuffled(preferred), shuffled(rest)

	take := min(s.quota, min(limit, len(pref)))
	out := pref[:take:take]
	pref = pref[take:]

	take = min(limit-len(out), len(other))
	out = append(out, other[:take]...)

	take = min(limit-len(out), len(pref))
	out = append(out, pref[:take]...)

	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func isPreferred(l domain.RawHotelListing) bool {
	r := floatAt(map[string]any(l), "rating")
	if r == nil || *r < 4.0 {
		return false
	}
	name, _ := l["name"].(string)
	return hasPremiumBrand(name)
}
