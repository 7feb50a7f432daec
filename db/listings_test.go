package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

// setTestDB points the package at a throwaway database for one test
func setTestDB(t *testing.T) {
	t.Helper()

	conn, err := openDatabase(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	once.Do(func() {})
	prev := db
	db = conn
	t.Cleanup(func() {
		conn.Close()
		db = prev
	})
}

func mustCreate(t *testing.T, in NewListing) Listing {
	t.Helper()
	l, err := CreateListing(in)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	return l
}

func TestCreateAndGetAllListings(t *testing.T) {
	setTestDB(t)

	lat, lng := 52.52, 13.405
	created := mustCreate(t, NewListing{
		OwnerID:     "user-1",
		Title:       "Laptop X",
		Description: "Used laptop",
		Price:       500,
		Latitude:    &lat,
		Longitude:   &lng,
	})

	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.ViewsCount != 0 {
		t.Errorf("views = %d, want 0", created.ViewsCount)
	}

	all, err := GetAllListings()
	if err != nil {
		t.Fatalf("GetAllListings: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(all))
	}
	got := all[0]
	if got.Title != "Laptop X" || got.Price != 500 {
		t.Errorf("unexpected listing: %+v", got)
	}
	if got.Latitude == nil || *got.Latitude != lat {
		t.Errorf("latitude = %v", got.Latitude)
	}
	if got.Longitude == nil || *got.Longitude != lng {
		t.Errorf("longitude = %v", got.Longitude)
	}
}

func TestCreateListingWithoutCoordinates(t *testing.T) {
	setTestDB(t)

	mustCreate(t, NewListing{OwnerID: "user-1", Title: "Bike", Price: 80})

	all, err := GetAllListings()
	if err != nil {
		t.Fatalf("GetAllListings: %v", err)
	}
	if all[0].Latitude != nil || all[0].Longitude != nil {
		t.Errorf("expected nil coordinates, got %+v", all[0])
	}
}

func TestGetListingsByOwner(t *testing.T) {
	setTestDB(t)

	mustCreate(t, NewListing{OwnerID: "alice", Title: "Desk"})
	mustCreate(t, NewListing{OwnerID: "bob", Title: "Chair"})
	mustCreate(t, NewListing{OwnerID: "alice", Title: "Lamp"})

	mine, err := GetListingsByOwner("alice")
	if err != nil {
		t.Fatalf("GetListingsByOwner: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(mine))
	}
	for _, l := range mine {
		if l.OwnerID != "alice" {
			t.Errorf("listing %q belongs to %q", l.Title, l.OwnerID)
		}
	}
}

func TestSearchListings(t *testing.T) {
	setTestDB(t)

	mustCreate(t, NewListing{OwnerID: "u", Title: "Gaming Laptop", Description: "RTX graphics"})
	mustCreate(t, NewListing{OwnerID: "u", Title: "Office chair", Description: "has a laptop tray"})
	mustCreate(t, NewListing{OwnerID: "u", Title: "Bicycle", Description: "city bike"})

	matches, err := SearchListings("laptop")
	if err != nil {
		t.Fatalf("SearchListings: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches across title and description, got %d", len(matches))
	}

	matches, err = SearchListings("LAPTOP")
	if err != nil {
		t.Fatalf("SearchListings: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected case-insensitive matching, got %d", len(matches))
	}

	matches, err = SearchListings("submarine")
	if err != nil {
		t.Fatalf("SearchListings: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestSearchListingsWildcardsAreLiteral(t *testing.T) {
	setTestDB(t)

	mustCreate(t, NewListing{OwnerID: "u", Title: "100% cotton shirt"})
	mustCreate(t, NewListing{OwnerID: "u", Title: "Plain shirt"})

	matches, err := SearchListings("100%")
	if err != nil {
		t.Fatalf("SearchListings: %v", err)
	}
	if len(matches) != 1 || matches[0].Title != "100% cotton shirt" {
		t.Errorf("percent should match literally, got %+v", matches)
	}

	matches, err = SearchListings("_hirt")
	if err != nil {
		t.Fatalf("SearchListings: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("underscore should match literally, got %+v", matches)
	}
}

func TestIncrementListingViews(t *testing.T) {
	setTestDB(t)

	l := mustCreate(t, NewListing{OwnerID: "u", Title: "Sofa"})

	for want := int64(1); want <= 3; want++ {
		views, err := IncrementListingViews(l.ID)
		if err != nil {
			t.Fatalf("IncrementListingViews: %v", err)
		}
		if views != want {
			t.Errorf("views = %d, want %d", views, want)
		}
	}
}

func TestIncrementListingViewsMissing(t *testing.T) {
	setTestDB(t)

	_, err := IncrementListingViews("no-such-id")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGetTopListings(t *testing.T) {
	setTestDB(t)

	a := mustCreate(t, NewListing{OwnerID: "u", Title: "A"})
	b := mustCreate(t, NewListing{OwnerID: "u", Title: "B"})
	c := mustCreate(t, NewListing{OwnerID: "u", Title: "C"})

	for id, views := range map[string]int{a.ID: 2, b.ID: 9, c.ID: 5} {
		if _, err := GetDB().Exec("UPDATE listings SET views_count = ? WHERE id = ?", views, id); err != nil {
			t.Fatalf("seed views: %v", err)
		}
	}

	top, err := GetTopListings(2)
	if err != nil {
		t.Fatalf("GetTopListings: %v", err)
	}
	if len(top) != 2 || top[0].Title != "B" || top[1].Title != "C" {
		t.Errorf("unexpected top listings: %+v", top)
	}

	all, err := GetTopListings(-1)
	if err != nil {
		t.Fatalf("GetTopListings(-1): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("negative limit should return everything, got %d", len(all))
	}
}

func TestCountListings(t *testing.T) {
	setTestDB(t)

	count, err := CountListings()
	if err != nil {
		t.Fatalf("CountListings: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	mustCreate(t, NewListing{OwnerID: "u", Title: "A"})
	mustCreate(t, NewListing{OwnerID: "u", Title: "B"})

	count, err = CountListings()
	if err != nil {
		t.Fatalf("CountListings: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":   "plain",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
