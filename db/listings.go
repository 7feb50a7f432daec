package db

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

const listingColumns = "id, owner_id, title, description, price, latitude, longitude, views_count, created_at"

// NewListing holds the caller-supplied fields of a listing to create
type NewListing struct {
	OwnerID     string   `json:"owner_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// CreateListing inserts a new listing and returns the stored record
func CreateListing(in NewListing) (Listing, error) {
	l := Listing{
		ID:          uuid.New().String(),
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		CreatedAt:   NowMs(),
	}

	_, err := GetDB().Exec(`
		INSERT INTO listings (`+listingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.OwnerID, l.Title, l.Description, l.Price,
		NullFloat(l.Latitude), NullFloat(l.Longitude), l.ViewsCount, l.CreatedAt)
	if err != nil {
		return Listing{}, err
	}
	return l, nil
}

// GetAllListings retrieves every listing, newest first
func GetAllListings() ([]Listing, error) {
	return queryListings(`
		SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC
	`)
}

// GetListingsByOwner retrieves all listings posted by one owner
func GetListingsByOwner(ownerID string) ([]Listing, error) {
	return queryListings(`
		SELECT `+listingColumns+` FROM listings WHERE owner_id = ? ORDER BY created_at DESC
	`, ownerID)
}

// SearchListings finds listings whose title or description contains the
// query, case-insensitive. Matching is delegated entirely to sqlite; the
// caller gets results in storage order.
func SearchListings(query string) ([]Listing, error) {
	pattern := "%" + escapeLike(query) + "%"
	return queryListings(`
		SELECT `+listingColumns+` FROM listings
		WHERE title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
	`, pattern, pattern)
}

// GetTopListings retrieves the most viewed listings. A negative limit
// returns all of them (sqlite treats LIMIT -1 as unbounded).
func GetTopListings(limit int) ([]Listing, error) {
	return queryListings(`
		SELECT `+listingColumns+` FROM listings ORDER BY views_count DESC LIMIT ?
	`, limit)
}

// IncrementListingViews bumps a listing's view counter and returns the new
// count. Returns sql.ErrNoRows if the listing does not exist.
func IncrementListingViews(id string) (int64, error) {
	res, err := GetDB().Exec("UPDATE listings SET views_count = views_count + 1 WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, sql.ErrNoRows
	}

	var views int64
	err = GetDB().QueryRow("SELECT views_count FROM listings WHERE id = ?", id).Scan(&views)
	return views, err
}

// CountListings returns the total number of listings
func CountListings() (int64, error) {
	var count int64
	err := GetDB().QueryRow("SELECT COUNT(*) FROM listings").Scan(&count)
	return count, err
}

func queryListings(query string, args ...any) ([]Listing, error) {
	rows, err := GetDB().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
