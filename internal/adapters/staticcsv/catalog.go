// Package staticcsv serves the transformed OYO dataset from a local CSV
// file. The file is read once on first access; the loaded rows are the
// process-wide copy every request filters against.
package staticcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/domain"
)

// Entry pairs a hotel record with the dataset's city column, which is not
// part of the normalized record.
type Entry struct {
	City  string
	Hotel domain.HotelRecord
}

type Catalog struct {
	path    string
	once    sync.Once
	entries []Entry
	loadErr error
}

func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Entries returns the full dataset, loading it on first call.
func (c *Catalog) Entries(ctx context.Context) ([]Entry, error) {
	c.once.Do(c.load)
	return c.entries, c.loadErr
}

// ListByCity filters by dataset city, case-insensitively.
func (c *Catalog) ListByCity(ctx context.Context, city string) ([]domain.HotelRecord, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(city))
	var out []domain.HotelRecord
	for _, e := range entries {
		if strings.ToLower(e.City) == q {
			out = append(out, e.Hotel)
		}
	}
	return out, nil
}

func (c *Catalog) load() {
	f, err := os.Open(c.path)
	if err != nil {
		c.loadErr = fmt.Errorf("static dataset: %w", err)
		return
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		c.loadErr = fmt.Errorf("static dataset %s: %w", c.path, err)
		return
	}
	if len(rows) == 0 {
		c.loadErr = fmt.Errorf("static dataset %s: empty file", c.path)
		return
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	at := func(row []string, name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := domain.HotelRecord{
			ID:           at(row, "hotelId"),
			Name:         at(row, "Hotel_name"),
			Address:      at(row, "Address"),
			Latitude:     parseFloat(at(row, "Latitude")),
			Longitude:    parseFloat(at(row, "Longitude")),
			PropertyType: at(row, "Property_type"),
			RoomStatus:   domain.Availability(at(row, "Room_status")),
			Price:        parseFloat(at(row, "Price")),
			RawRating:    parseFloat(at(row, "Rating")),
		}
		if cur := at(row, "Currency"); cur != "" {
			rec.Currency = &cur
		}
		if f := parseFloat(at(row, "Final_rating")); f != nil {
			rec.FinalRating = *f
		}
		entries = append(entries, Entry{City: at(row, "City"), Hotel: rec})
	}
	c.entries = entries
	log.Info().Str("path", c.path).Int("hotels", len(entries)).Msg("static dataset loaded")
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
