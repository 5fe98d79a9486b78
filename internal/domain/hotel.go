package domain

// Availability reflects whether at least one priced offer exists for a hotel
// in the requested date range.
type Availability string

const (
	Available   Availability = "Available"
	Unavailable Availability = "Unavailable"
)

// HotelRecord is the normalized, post-merge view of one hotel. JSON tags
// follow the wire format the frontend consumes.
type HotelRecord struct {
	ID           string       `json:"hotelId"`
	Name         string       `json:"Hotel_name"`
	Address      string       `json:"Address"`
	Latitude     *float64     `json:"Latitude"`
	Longitude    *float64     `json:"Longitude"`
	PropertyType string       `json:"Property_type"`
	RoomStatus   Availability `json:"Room_status"`
	Price        *float64     `json:"Price"`
	Currency     *string      `json:"Currency"`
	RawRating    *float64     `json:"Rating"`
	FinalRating  float64      `json:"Final_rating"`
}

// Snapshot is the full set of hotel records for one (city, date-range)
// query, in the order produced by the merge.
type Snapshot []HotelRecord

// RawHotelListing is the provider's metadata-only payload for one hotel in a
// city: name, address, coordinates, but no prices. Payloads stay schemaless;
// field extraction happens in the app mappers.
type RawHotelListing map[string]any

// HotelID returns the provider-assigned identifier, or "".
func (l RawHotelListing) HotelID() string {
	s, _ := l["hotelId"].(string)
	return s
}

// RawOfferRecord is the provider's priced-offer payload, keyed by hotel
// identifier, with an embedded hotel-info sub-object and zero or more quotes.
type RawOfferRecord map[string]any

// HotelInfo returns the embedded hotel-info sub-object, or nil.
func (o RawOfferRecord) HotelInfo() map[string]any {
	m, _ := o["hotel"].(map[string]any)
	return m
}

// HotelID returns the identifier from the embedded hotel info, or "".
func (o RawOfferRecord) HotelID() string {
	if info := o.HotelInfo(); info != nil {
		if s, ok := info["hotelId"].(string); ok {
			return s
		}
	}
	return ""
}

// Quotes returns the offer's price quotes; may be empty.
func (o RawOfferRecord) Quotes() []any {
	q, _ := o["offers"].([]any)
	return q
}

// CacheKey identifies one persisted snapshot. Two keys are equal iff all
// three components match exactly; dates are opaque strings, never parsed.
type CacheKey struct {
	CityCode string
	CheckIn  string
	CheckOut string
}
