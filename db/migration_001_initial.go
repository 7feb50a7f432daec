package db

import "database/sql"

func init() {
	RegisterMigration(Migration{
		Version:     1,
		Description: "Initial schema - listings table",
		Up:          migration001Initial,
	})
}

func migration001Initial(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE listings (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			latitude REAL,
			longitude REAL,
			views_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX idx_listings_owner ON listings(owner_id)`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX idx_listings_views ON listings(views_count DESC)`)
	return err
}
