// Package mysql is the optional MySQL backend for the static hotel catalog,
// populated by cmd/ingestor from the transformed dataset CSV.
package mysql

import (
	"context"
	"database/sql"

	"hotel_recommender/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Init creates the static_hotels table if it does not exist.
func (r *Repo) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createStaticHotelsSQL)
	return err
}

func (r *Repo) UpsertHotel(ctx context.Context, city string, h domain.HotelRecord) error {
	_, err := r.db.ExecContext(ctx, upsertStaticHotelSQL,
		h.ID,
		h.Name,
		h.Address,
		city,
		valF64(h.Latitude),
		valF64(h.Longitude),
		h.PropertyType,
		string(h.RoomStatus),
		valF64(h.Price),
		valStr(h.Currency),
		valF64(h.RawRating),
		h.FinalRating,
	)
	return err
}

func (r *Repo) ListByCity(ctx context.Context, city string) ([]domain.HotelRecord, error) {
	rows, err := r.db.QueryContext(ctx, listByCitySQL, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelRecord
	for rows.Next() {
		var rec domain.HotelRecord
		var address, status, propType, cur sql.NullString
		var lat, lon, price, rating sql.NullFloat64
		if err := rows.Scan(&rec.ID, &rec.Name, &address, &lat, &lon,
			&propType, &status, &price, &cur, &rating, &rec.FinalRating); err != nil {
			return nil, err
		}
		rec.Address = address.String
		rec.PropertyType = propType.String
		rec.RoomStatus = domain.Availability(status.String)
		rec.Latitude = nullF64(lat)
		rec.Longitude = nullF64(lon)
		rec.Price = nullF64(price)
		rec.RawRating = nullF64(rating)
		if cur.Valid && cur.String != "" {
			c := cur.String
			rec.Currency = &c
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullF64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
