// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/photocat-tools/photocat/geocode"
	"github.com/photocat-tools/photocat/spatial"
)

func TestWriteCatalog(t *testing.T) {
	taken := time.Date(2023, 7, 14, 12, 30, 0, 0, time.UTC)

	rec := &Record{
		SourcePath: "photos/IMG_0001.jpg",
		FileName:   "IMG_0001.jpg",
		Taken:      taken,
		TakenValid: true,
		Offset:     UTCOffset{Valid: true, Offset: -3 * time.Hour},
		Coord:      &spatial.Point{Lat: -34.9011, Lon: -56.1645},
		H3Cell:     "88a90100b1fffff",
		GeoSource:  GeoSourceExif,
		Resolution: PlaceResolved,
		Place: geocode.Place{
			CityLabel:    "Montevideo, Montevideo",
			Neighborhood: "Pocitos",
			County:       "Montevideo",
			State:        "Montevideo",
			CountryCode:  "UY",
			FolderLabel:  "Montevideo, Montevideo_Pocitos",
		},
		Motion: &Motion{
			DistanceMi:   12.5,
			ElapsedHours: 0.5,
			SpeedMPH:     25.0,
			SpeedValid:   true,
		},
		Camera: Camera{Make: "Apple", Model: "iPhone 14", ISO: "64"},
	}

	var buf bytes.Buffer
	if err := WriteCatalog(&buf, []*Record{rec}); err != nil {
		t.Fatalf("WriteCatalog: %s", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %s", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}

	if diff := cmp.Diff(catalogHeader, rows[0]); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}

	row := map[string]string{}
	for i, col := range rows[0] {
		row[col] = rows[1][i]
	}

	want := map[string]string{
		"source_path":     "photos/IMG_0001.jpg",
		"file_name":       "IMG_0001.jpg",
		"date":            "2023-07-14",
		"time":            "12:30:00",
		"utc_offset":      "UTC-03:00",
		"lat":             "-34.9011",
		"lon":             "-56.1645",
		"h3_cell":         "88a90100b1fffff",
		"geo_source":      "exif",
		"resolution":      "resolved",
		"city_label":      "Montevideo, Montevideo",
		"neighborhood":    "Pocitos",
		"distance_mi":     "12.50",
		"elapsed_hr":      "0.50",
		"speed_mph":       "25.00",
		"make":            "Apple",
		"iso":             "64",
		"proposed_folder": "Montevideo,_Montevideo_Pocitos_2023-07-14",
		"final_folder":    "",
	}

	for col, val := range want {
		if row[col] != val {
			t.Fatalf("%s: want %q, got %q", col, val, row[col])
		}
	}
}

func TestWriteCatalogUnresolvedRecord(t *testing.T) {
	rec := newRecord("photos/IMG_0002.jpg", nil)
	rec.Taken = time.Date(2023, 7, 14, 9, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteCatalog(&buf, []*Record{rec}); err != nil {
		t.Fatalf("WriteCatalog: %s", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %s", err)
	}

	row := map[string]string{}
	for i, col := range rows[0] {
		row[col] = rows[1][i]
	}

	if row["city_label"] != geocode.UnknownCity {
		t.Fatalf("city_label: want %q, got %q", geocode.UnknownCity, row["city_label"])
	}

	if row["proposed_folder"] != "UnknownLocation_2023-07-14" {
		t.Fatalf("proposed_folder: got %q", row["proposed_folder"])
	}

	for _, col := range []string{"lat", "lon", "distance_mi", "speed_mph", "utc_offset"} {
		if row[col] != "" {
			t.Fatalf("%s should be empty for an unresolved record, got %q", col, row[col])
		}
	}
}
