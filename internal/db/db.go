package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite place index used for location autocomplete.
type DB struct {
	*sql.DB
}

// Open opens the place index at path, creating the schema if needed.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open place index: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping place index: %w", err)
	}

	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{sqlDB}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS places (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		latitude REAL NOT NULL,
		longitude REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_places_name ON places(name);
	CREATE INDEX IF NOT EXISTS idx_places_zip ON places(zip);
	`
	_, err := db.Exec(schema)
	return err
}

// Place is one row of the autocomplete index.
type Place struct {
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Zip       string  `json:"zip,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchPlaces returns up to 10 places whose name or ZIP starts with query.
func (d *DB) SearchPlaces(query string) ([]Place, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	rows, err := d.Query(
		`SELECT name, state, zip, latitude, longitude FROM places
		 WHERE name LIKE ? || '%' OR zip LIKE ? || '%'
		 ORDER BY name, state LIMIT 10`, q, q)
	if err != nil {
		return nil, fmt.Errorf("search places %q: %w", q, err)
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.Name, &p.State, &p.Zip, &p.Latitude, &p.Longitude); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// InsertPlaces adds rows in a single transaction; used by the importer.
func (d *DB) InsertPlaces(places []Place) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO places (name, state, zip, latitude, longitude) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range places {
		if _, err := stmt.Exec(p.Name, p.State, p.Zip, p.Latitude, p.Longitude); err != nil {
			return fmt.Errorf("insert place %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}
