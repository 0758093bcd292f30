// Command import-places downloads US Census gazetteer data and loads it into
// the SQLite place index that backs location autocomplete.
package main

import (
	"archive/zip"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hourlycast/hourlycast/internal/db"
)

const batchSize = 5000

// rowMapper turns one gazetteer record into a Place, or reports that the
// record should be skipped.
type rowMapper func(record []string) (db.Place, bool)

type dataset struct {
	name    string
	url     string
	minCols int
	mapRow  rowMapper
}

var datasets = []dataset{
	{
		name:    "places",
		url:     "https://www2.census.gov/geo/docs/maps-data/data/gazetteer/2023_Gazetteer/2023_Gaz_place_national.zip",
		minCols: 12,
		// USPS(0) GEOID(1) ANSICODE(2) NAME(3) ... INTPTLAT(10) INTPTLONG(11)
		mapRow: func(record []string) (db.Place, bool) {
			lat, lon, err := parseCoordinates(record[10], record[11])
			if err != nil {
				return db.Place{}, false
			}
			return db.Place{
				Name:      cleanPlaceName(strings.TrimSpace(record[3])),
				State:     strings.TrimSpace(record[0]),
				Latitude:  lat,
				Longitude: lon,
			}, true
		},
	},
	{
		name:    "zctas",
		url:     "https://www2.census.gov/geo/docs/maps-data/data/gazetteer/2023_Gazetteer/2023_Gaz_zcta_national.zip",
		minCols: 7,
		// GEOID(0) ALAND(1) AWATER(2) ... INTPTLAT(5) INTPTLONG(6)
		mapRow: func(record []string) (db.Place, bool) {
			lat, lon, err := parseCoordinates(record[5], record[6])
			if err != nil {
				return db.Place{}, false
			}
			zipCode := strings.TrimSpace(record[0])
			return db.Place{
				Name:      zipCode,
				Zip:       zipCode,
				Latitude:  lat,
				Longitude: lon,
			}, true
		},
	},
}

func main() {
	dbPath := flag.String("db", "places.db", "Path to the place index database")
	dataDir := flag.String("data", "data", "Directory for downloaded gazetteer archives")
	flag.Parse()

	if err := run(*dbPath, *dataDir); err != nil {
		log.Fatal(err)
	}
}

func run(dbPath, dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open place index: %w", err)
	}
	defer database.Close()

	for _, ds := range datasets {
		if err := importDataset(database, ds, dataDir); err != nil {
			return fmt.Errorf("failed to import %s: %w", ds.name, err)
		}
	}
	return nil
}

func importDataset(database *db.DB, ds dataset, dataDir string) error {
	zipPath := filepath.Join(dataDir, ds.name+".zip")

	if _, err := os.Stat(zipPath); os.IsNotExist(err) {
		fmt.Printf("Downloading %s...\n", ds.name)
		if err := downloadFile(ds.url, zipPath); err != nil {
			return err
		}
	} else {
		fmt.Printf("Using existing %s.zip\n", ds.name)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".txt") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return importRows(database, ds, rc)
	}
	return fmt.Errorf("no txt file found in %s", zipPath)
}

func importRows(database *db.DB, ds dataset, r io.Reader) error {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return err
	}

	count := 0
	batch := make([]db.Place, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := database.InsertPlaces(batch); err != nil {
			return err
		}
		count += len(batch)
		batch = batch[:0]
		fmt.Printf("Imported %d %s...\r", count, ds.name)
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // Skip malformed lines
		}
		if len(record) < ds.minCols {
			continue
		}
		place, ok := ds.mapRow(record)
		if !ok {
			continue
		}
		batch = append(batch, place)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	fmt.Printf("\nFinished importing %d %s.\n", count, ds.name)
	return nil
}

func downloadFile(url, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	_, err = io.Copy(out, resp.Body)
	return err
}

func cleanPlaceName(name string) string {
	suffixes := []string{" city", " town", " village", " CDP", " borough"}
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}

func parseCoordinates(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude out of range: %f", lat)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("longitude out of range: %f", lon)
	}

	return lat, lon, nil
}
