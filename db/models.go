package db

import (
	"database/sql"
	"time"
)

// Listing represents a classified ad
type Listing struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	ViewsCount  int64    `json:"views_count"`
	CreatedAt   int64    `json:"created_at"`
}

// scanListing scans a row into a Listing
func scanListing(row interface{ Scan(...any) error }) (Listing, error) {
	var l Listing
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Price,
		&lat, &lng, &l.ViewsCount, &l.CreatedAt,
	)
	l.Latitude = FloatPtr(lat)
	l.Longitude = FloatPtr(lng)
	return l, err
}

// NowUTC returns the current time in RFC3339 format
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NowMs returns the current time as Unix milliseconds (int64)
func NowMs() int64 {
	return time.Now().UnixMilli()
}

// NullFloat converts *float64 to sql.NullFloat64
func NullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// FloatPtr converts sql.NullFloat64 to *float64
func FloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}
