package filecache

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/adapters/observability"
	"hotel_recommender/internal/domain"
)

var header = []string{
	"hotelId", "Hotel_name", "Address", "Latitude", "Longitude",
	"Property_type", "Room_status", "Price", "Currency",
	"Rating", "Final_rating",
}

// Store persists one CSV snapshot file per cache key under a single
// directory. Writes are full-file replaces; there is no locking, so
// concurrent writers for the same key race and the last one wins.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Get loads the snapshot for key. Every failure mode (unencodable key,
// missing file, unreadable or malformed CSV) is a cache miss; read errors
// are logged, never returned.
func (s *Store) Get(ctx context.Context, key domain.CacheKey) (domain.Snapshot, bool) {
	name, err := EncodeFilename(key)
	if err != nil {
		log.Warn().Err(err).Msg("snapshot key not encodable")
		return nil, false
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", name).Msg("snapshot open failed, treating as miss")
		}
		observability.ObserveCache("snapshot", "miss")
		return nil, false
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil || len(rows) == 0 {
		log.Warn().Err(err).Str("file", name).Msg("snapshot unreadable, treating as miss")
		observability.ObserveCache("snapshot", "miss")
		return nil, false
	}

	snap := make(domain.Snapshot, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			log.Warn().Str("file", name).Msg("snapshot row malformed, treating as miss")
			observability.ObserveCache("snapshot", "miss")
			return nil, false
		}
		snap = append(snap, decodeRow(row))
	}
	observability.ObserveCache("snapshot", "hit")
	return snap, true
}

// Put serializes the snapshot to the keyed file, replacing any previous one.
func (s *Store) Put(ctx context.Context, key domain.CacheKey, snap domain.Snapshot) error {
	name, err := EncodeFilename(key)
	if err != nil {
		return domain.WrapError(domain.KindCacheWrite, "encode snapshot filename", err)
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return domain.WrapError(domain.KindCacheWrite, "create snapshot file", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return domain.WrapError(domain.KindCacheWrite, "write snapshot header", err)
	}
	for _, rec := range snap {
		if err := w.Write(encodeRow(rec)); err != nil {
			f.Close()
			return domain.WrapError(domain.KindCacheWrite, "write snapshot row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return domain.WrapError(domain.KindCacheWrite, "flush snapshot", err)
	}
	if err := f.Close(); err != nil {
		return domain.WrapError(domain.KindCacheWrite, "close snapshot file", err)
	}
	observability.ObserveCache("snapshot", "set")
	return nil
}

// EvictStaleForCity deletes every snapshot for cityCode whose dates differ
// from current's. Scoped to the city code; other cities are untouched.
// Failures are logged and ignored.
func (s *Store) EvictStaleForCity(ctx context.Context, cityCode string, current domain.CacheKey) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", s.dir).Msg("snapshot dir scan failed")
		return
	}
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		key, ok := DecodeFilename(e.Name())
		if !ok || key.CityCode != cityCode {
			continue
		}
		if key.CheckIn == current.CheckIn && key.CheckOut == current.CheckOut {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("stale snapshot delete failed")
			continue
		}
		observability.ObserveCache("snapshot", "evict")
		log.Info().Str("file", e.Name()).Msg("stale snapshot deleted")
	}
}

func encodeRow(r domain.HotelRecord) []string {
	return []string{
		r.ID,
		r.Name,
		r.Address,
		fstr(r.Latitude),
		fstr(r.Longitude),
		r.PropertyType,
		string(r.RoomStatus),
		fstr(r.Price),
		sstr(r.Currency),
		fstr(r.RawRating),
		strconv.FormatFloat(r.FinalRating, 'f', -1, 64),
	}
}

func decodeRow(row []string) domain.HotelRecord {
	rec := domain.HotelRecord{
		ID:           row[0],
		Name:         row[1],
		Address:      row[2],
		Latitude:     fparse(row[3]),
		Longitude:    fparse(row[4]),
		PropertyType: row[5],
		RoomStatus:   domain.Availability(row[6]),
		Price:        fparse(row[7]),
		RawRating:    fparse(row[9]),
	}
	if row[8] != "" {
		cur := row[8]
		rec.Currency = &cur
	}
	if f := fparse(row[10]); f != nil {
		rec.FinalRating = *f
	}
	return rec
}

func fstr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func sstr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// fparse parses an optional numeric cell. ParseFloat accepts "NaN" and
// "Inf" spellings, which must not reach a HotelRecord, so non-finite values
// decode to nil like any other unusable cell.
func fparse(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
