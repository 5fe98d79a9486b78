package app_test

import (
	"testing"

	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
)

func listing(id string, fields map[string]any) domain.RawHotelListing {
	l := domain.RawHotelListing{"hotelId": id}
	for k, v := range fields {
		l[k] = v
	}
	return l
}

func offer(id string, info map[string]any, quotes ...map[string]any) domain.RawOfferRecord {
	hotel := map[string]any{"hotelId": id}
	for k, v := range info {
		hotel[k] = v
	}
	o := domain.RawOfferRecord{"hotel": hotel}
	if len(quotes) > 0 {
		qs := make([]any, 0, len(quotes))
		for _, q := range quotes {
			qs = append(qs, any(q))
		}
		o["offers"] = qs
	}
	return o
}

func quote(total, currency string) map[string]any {
	return map[string]any{"price": map[string]any{"total": total, "currency": currency}}
}

func TestMergeOffers_OfferFieldsWinOverListing(t *testing.T) {
	listings := []domain.RawHotelListing{
		listing("H1", map[string]any{
			"name": "Listing Name",
			"type": "resort",
			"geoCode": map[string]any{
				"latitude":  12.0,
				"longitude": 77.0,
			},
		}),
	}
	offers := []domain.RawOfferRecord{
		offer("H1", map[string]any{"type": "hotel"}, quote("1000", "INR")),
	}

	out := app.MergeOffers(listings, offers)
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	rec := out[0]
	if rec.PropertyType != "hotel" {
		t.Fatalf("property type = %q, want offer's %q", rec.PropertyType, "hotel")
	}
	// fields absent from the offer fall back to the listing
	if rec.Name != "Listing Name" {
		t.Fatalf("name = %q, want listing fallback", rec.Name)
	}
	if rec.Latitude == nil || *rec.Latitude != 12.0 {
		t.Fatalf("latitude = %v, want listing fallback 12.0", rec.Latitude)
	}
}

func TestMergeOffers_PriceSetExactlyOnce(t *testing.T) {
	offers := []domain.RawOfferRecord{
		offer("H1", nil, quote("1000", "INR")),
		offer("H1", nil, quote("2000", "INR")),
	}
	out := app.MergeOffers(nil, offers)
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if out[0].Price == nil || *out[0].Price != 1000 {
		t.Fatalf("price = %v, want first offer's 1000", out[0].Price)
	}
}

func TestMergeOffers_LaterOfferFillsUnsetPrice(t *testing.T) {
	offers := []domain.RawOfferRecord{
		offer("H1", nil), // no quotes: Unavailable, price unset
		offer("H1", nil, quote("1500", "INR")),
	}
	out := app.MergeOffers(nil, offers)
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	rec := out[0]
	// availability is fixed at first encounter
	if rec.RoomStatus != domain.Unavailable {
		t.Fatalf("status = %s, want Unavailable from first offer", rec.RoomStatus)
	}
	if rec.Price == nil || *rec.Price != 1500 {
		t.Fatalf("price = %v, want 1500 from second offer", rec.Price)
	}
	if rec.Currency == nil || *rec.Currency != "INR" {
		t.Fatalf("currency = %v, want INR", rec.Currency)
	}
}

func TestMergeOffers_QuotedOfferIsAvailable(t *testing.T) {
	out := app.MergeOffers(nil, []domain.RawOfferRecord{offer("H1", nil, quote("900", "INR"))})
	if out[0].RoomStatus != domain.Available {
		t.Fatalf("status = %s, want Available", out[0].RoomStatus)
	}
}

func TestMergeOffers_DropsOffersWithoutID(t *testing.T) {
	offers := []domain.RawOfferRecord{
		{"offers": []any{quote("100", "INR")}}, // no hotel info at all
		offer("H1", nil, quote("700", "INR")),
	}
	out := app.MergeOffers(nil, offers)
	if len(out) != 1 || out[0].ID != "H1" {
		t.Fatalf("got %+v, want only H1", out)
	}
}

func TestMergeOffers_UnOfferedListingsExcluded(t *testing.T) {
	listings := []domain.RawHotelListing{
		listing("H1", nil),
		listing("H2", nil),
	}
	offers := []domain.RawOfferRecord{offer("H1", nil, quote("800", "INR"))}
	out := app.MergeOffers(listings, offers)
	if len(out) != 1 || out[0].ID != "H1" {
		t.Fatalf("got %+v, want only the offered hotel", out)
	}
}

func TestMergeOffers_AddressJoinedWithDelimiter(t *testing.T) {
	offers := []domain.RawOfferRecord{
		offer("H1", map[string]any{
			"address": map[string]any{"lines": []any{"12 MG Road", "Fort"}},
		}, quote("800", "INR")),
	}
	out := app.MergeOffers(nil, offers)
	if out[0].Address != "12 MG Road | Fort" {
		t.Fatalf("address = %q", out[0].Address)
	}
}

func TestMergeOffers_FirstEncounterOrder(t *testing.T) {
	offers := []domain.RawOfferRecord{
		offer("H2", nil, quote("100", "INR")),
		offer("H1", nil, quote("200", "INR")),
		offer("H2", nil, quote("300", "INR")),
	}
	out := app.MergeOffers(nil, offers)
	if len(out) != 2 || out[0].ID != "H2" || out[1].ID != "H1" {
		t.Fatalf("unexpected order: %+v", out)
	}
}
