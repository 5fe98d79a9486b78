package app

import (
	"context"
	"strings"

	"hotel_recommender/internal/domain"
)

// StaticService answers lookups from the pre-loaded static dataset. No
// upstream or snapshot-cache involvement.
type StaticService struct {
	catalog domain.StaticCatalog
}

func NewStaticService(c domain.StaticCatalog) *StaticService {
	return &StaticService{catalog: c}
}

// Lookup filters the catalog by city (case-insensitive exact match) and
// fills the dataset's defaults: property type "hotel", empty room status,
// currency "INR".
func (s *StaticService) Lookup(ctx context.Context, city string) ([]domain.HotelRecord, error) {
	if strings.TrimSpace(city) == "" {
		return nil, domain.NewError(domain.KindUnsupportedCity, "missing 'city' parameter")
	}
	recs, err := s.catalog.ListByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	// Scrub before filling defaults: the price/currency coupling in the
	// scrub would otherwise erase the currency default on price-less rows.
	recs = SanitizeRecords(recs)
	for i := range recs {
		if recs[i].PropertyType == "" {
			recs[i].PropertyType = "hotel"
		}
		if recs[i].Currency == nil {
			inr := "INR"
			recs[i].Currency = &inr
		}
	}
	return recs, nil
}
