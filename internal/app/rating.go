package app

import (
	"math"
	"math/rand"
	"strings"
	"sync"
)

// premiumBrands are name substrings that earn the brand boost. Shared with
// the tiered sampler's preferred bucket.
var premiumBrands = []string{
	"taj", "oberoi", "leela", "ritz carlton", "conrad", "fairmont",
	"marriott", "hilton", "hyatt", "novotel", "holiday inn", "intercontinental",
	"crowne plaza", "westin", "jw marriott",
}

var propertyBase = map[string]float64{
	"hotel":     4.0,
	"apartment": 3.5,
	"hostel":    2.5,
	"resort":    4.5,
	"villa":     4.0,
}

const (
	defaultBase = 3.0
	brandBoost  = 0.2
	jitterSpan  = 0.1
)

// RatingSynthesizer produces the composite 0–5 rating used for ranking.
// Pure except for its jitter source, which is injected so tests can seed it.
type RatingSynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRatingSynthesizer(rng *rand.Rand) *RatingSynthesizer {
	return &RatingSynthesizer{rng: rng}
}

// Score blends the raw provider rating (accepted only when already on the
// 0–5 scale), a per-property-type default, a brand boost, and a small jitter
// that breaks ties. The result is clamped to [0,5] and rounded to 2 decimals.
func (s *RatingSynthesizer) Score(rawRating *float64, propertyType, hotelName string) float64 {
	base := defaultBase
	switch {
	case rawRating != nil && *rawRating >= 0 && *rawRating <= 5:
		base = *rawRating
	default:
		if v, ok := propertyBase[strings.ToLower(propertyType)]; ok {
			base = v
		}
	}

	if hasPremiumBrand(hotelName) {
		base += brandBoost
	}

	s.mu.Lock()
	jitter := s.rng.Float64()*2*jitterSpan - jitterSpan
	s.mu.Unlock()

	v := base + jitter
	v = math.Max(0, math.Min(5, v))
	return math.Round(v*100) / 100
}

func hasPremiumBrand(name string) bool {
	if name == "" {
		return false
	}
	low := strings.ToLower(name)
	for _, b := range premiumBrands {
		if strings.Contains(low, b) {
			return true
		}
	}
	return false
}
