package app

import (
	"strconv"
	"strings"

	"hotel_recommender/internal/domain"
)

/********** nested-map lookup helpers **********/

// lookupAny walks a dot path through nested maps; nil when any hop is missing.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path, or "".
func lookupStr(m map[string]any, path string) string {
	if s, ok := lookupAny(m, path).(string); ok {
		return s
	}
	return ""
}

// floatAt returns the first parseable number among paths. Accepts float64,
// int, and strings with either decimal separator ("8,0" and "8.0").
func floatAt(m map[string]any, paths ...string) *float64 {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// stringLines returns the []string at path (from a []any), or nil.
func stringLines(m map[string]any, path string) []string {
	raw, ok := lookupAny(m, path).([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

/********** field resolution: offer info wins over the listing **********/

func pickStr(offer, listing map[string]any, path string) string {
	if s := lookupStr(offer, path); s != "" {
		return s
	}
	return lookupStr(listing, path)
}

func pickFloat(offer, listing map[string]any, path string) *float64 {
	if f := floatAt(offer, path); f != nil {
		return f
	}
	return floatAt(listing, path)
}

func pickLines(offer, listing map[string]any, path string) []string {
	if ls := stringLines(offer, path); len(ls) > 0 {
		return ls
	}
	return stringLines(listing, path)
}

/********** merge **********/

// MergeOffers combines listing metadata and priced offers into one record per
// hotel, in first-encounter order. Offers drive the merge: a hotel present in
// the city listing but absent from every offer record yields no output row.
//
// Field conflicts resolve with offer-embedded hotel info over the listing.
// Availability is fixed at first encounter (Available iff that offer carries
// a quote). Price and currency are filled exactly once, from the first offer
// whose leading quote has both a total and a currency; later offers never
// overwrite them. Offer records without a hotel identifier are dropped.
func MergeOffers(listings []domain.RawHotelListing, offers []domain.RawOfferRecord) []domain.HotelRecord {
	byID := make(map[string]map[string]any, len(listings))
	for _, l := range listings {
		if id := l.HotelID(); id != "" {
			byID[id] = map[string]any(l)
		}
	}

	merged := make(map[string]*domain.HotelRecord, len(offers))
	var order []string

	for _, o := range offers {
		hid := o.HotelID()
		if hid == "" {
			continue
		}
		info := sanitizeMap(o.HotelInfo())
		listing := byID[hid]

		rec, seen := merged[hid]
		if !seen {
			status := domain.Unavailable
			if len(o.Quotes()) > 0 {
				status = domain.Available
			}
			rec = &domain.HotelRecord{
				ID:           hid,
				Name:         pickStr(info, listing, "name"),
				Address:      strings.Join(pickLines(info, listing, "address.lines"), " | "),
				Latitude:     pickFloat(info, listing, "geoCode.latitude"),
				Longitude:    pickFloat(info, listing, "geoCode.longitude"),
				PropertyType: pickStr(info, listing, "type"),
				RoomStatus:   status,
				RawRating:    pickFloat(info, listing, "rating"),
			}
			merged[hid] = rec
			order = append(order, hid)
		}

		if rec.Price == nil {
			if price, cur := firstQuote(o); price != nil && cur != "" {
				rec.Price = price
				rec.Currency = &cur
			}
		}
	}

	out := make([]domain.HotelRecord, 0, len(order))
	for _, hid := range order {
		out = append(out, *merged[hid])
	}
	return out
}

// firstQuote extracts total and currency from the offer's leading quote.
func firstQuote(o domain.RawOfferRecord) (*float64, string) {
	quotes := o.Quotes()
	if len(quotes) == 0 {
		return nil, ""
	}
	q, ok := quotes[0].(map[string]any)
	if !ok {
		return nil, ""
	}
	return floatAt(q, "price.total"), lookupStr(q, "price.currency")
}
