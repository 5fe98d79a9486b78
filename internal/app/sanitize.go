package app

import (
	"math"

	"hotel_recommender/internal/domain"
)

// SanitizeValue recursively walks mappings, sequences, and scalars, replacing
// non-finite floats (NaN, ±Inf) with nil so the structure serializes safely.
// Idempotent: sanitizing a sanitized value yields an identical value.
func SanitizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = SanitizeValue(vv)
		}
		return t
	case []any:
		for i := range t {
			t[i] = SanitizeValue(t[i])
		}
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	default:
		return v
	}
}

func sanitizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return SanitizeValue(m).(map[string]any)
}

// SanitizeRecords clears non-finite numeric fields in place. A price dropped
// this way takes its currency with it, keeping both-or-neither intact.
func SanitizeRecords(recs []domain.HotelRecord) []domain.HotelRecord {
	for i := range recs {
		r := &recs[i]
		r.Latitude = finiteOrNil(r.Latitude)
		r.Longitude = finiteOrNil(r.Longitude)
		r.RawRating = finiteOrNil(r.RawRating)
		if r.Price = finiteOrNil(r.Price); r.Price == nil {
			r.Currency = nil
		}
		if math.IsNaN(r.FinalRating) || math.IsInf(r.FinalRating, 0) {
			r.FinalRating = 0
		}
	}
	return recs
}

func finiteOrNil(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	return p
}
