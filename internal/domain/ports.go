package domain

import (
	"context"
	"time"
)

// InventoryClient wraps the upstream hotel-inventory provider.
type InventoryClient interface {
	// Authenticate exchanges stored credentials for a short-lived bearer token.
	Authenticate(ctx context.Context) (string, error)
	// ListHotels fetches all hotels the provider knows for a city code.
	// An empty result is valid; callers decide whether that is an error.
	ListHotels(ctx context.Context, token, cityCode string) ([]RawHotelListing, error)
	// FetchOffers fetches priced offers for one bounded batch of hotel ids.
	// Consecutive calls are spaced by the client's configured delay.
	FetchOffers(ctx context.Context, token string, hotelIDs []string, checkIn, checkOut string, adults int) ([]RawOfferRecord, error)
}

// SnapshotStore persists one snapshot per cache key.
type SnapshotStore interface {
	// Get reports a miss for any read failure; it never surfaces errors.
	Get(ctx context.Context, key CacheKey) (Snapshot, bool)
	Put(ctx context.Context, key CacheKey, snap Snapshot) error
	// EvictStaleForCity deletes every snapshot for cityCode whose date pair
	// differs from current's. Best-effort; failures are logged, not returned.
	EvictStaleForCity(ctx context.Context, cityCode string, current CacheKey)
}

// Sampler selects a bounded subset of listings to query for pricing.
type Sampler interface {
	Select(listings []RawHotelListing, limit int) []RawHotelListing
}

// StaticCatalog serves the pre-loaded static hotel dataset.
type StaticCatalog interface {
	ListByCity(ctx context.Context, city string) ([]HotelRecord, error)
}

// TokenCache stores the upstream bearer token between requests so every
// cache miss does not re-run the OAuth exchange. Implementations report a
// miss on any failure.
type TokenCache interface {
	Token(ctx context.Context) (string, bool)
	Store(ctx context.Context, token string, ttl time.Duration) error
}
