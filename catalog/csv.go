// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// catalogHeader is the column layout of the output catalog. final_folder is
// reserved empty for manual overrides consumed by the downstream
// file-organizing step.
var catalogHeader = []string{
	"source_path", "file_name",
	"date", "time", "utc_offset",
	"lat", "lon", "h3_cell", "geo_source", "resolution",
	"city_label", "neighborhood", "county", "state", "country_code",
	"distance_mi", "elapsed_hr", "speed_mph",
	"make", "model", "lens", "fnumber", "exposure", "iso",
	"focal_length", "orientation", "width", "height",
	"proposed_folder", "final_folder",
}

// WriteCatalog writes one CSV row per record, in input order.
func WriteCatalog(w io.Writer, records []*Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(catalogHeader); err != nil {
		return fmt.Errorf("writing catalog header: %w", err)
	}

	for _, rec := range records {
		if err := cw.Write(catalogRow(rec)); err != nil {
			return fmt.Errorf("writing catalog row for %s: %w", rec.SourcePath, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing catalog: %w", err)
	}

	return nil
}

func catalogRow(rec *Record) []string {
	var lat, lon string
	if rec.Coord != nil {
		lat = strconv.FormatFloat(rec.Coord.Lat, 'f', -1, 64)
		lon = strconv.FormatFloat(rec.Coord.Lon, 'f', -1, 64)
	}

	var distance, elapsed, speed string
	if m := rec.Motion; m != nil {
		distance = strconv.FormatFloat(m.DistanceMi, 'f', 2, 64)
		elapsed = strconv.FormatFloat(m.ElapsedHours, 'f', 2, 64)

		if m.SpeedValid {
			speed = strconv.FormatFloat(m.SpeedMPH, 'f', 2, 64)
		}
	}

	return []string{
		rec.SourcePath, rec.FileName,
		rec.Date(), rec.Time(), rec.Offset.String(),
		lat, lon, rec.H3Cell, string(rec.GeoSource), string(rec.Resolution),
		rec.Place.CityLabel, rec.Place.Neighborhood, rec.Place.County,
		rec.Place.State, rec.Place.CountryCode,
		distance, elapsed, speed,
		rec.Camera.Make, rec.Camera.Model, rec.Camera.Lens,
		rec.Camera.FNumber, rec.Camera.Exposure, rec.Camera.ISO,
		rec.Camera.FocalLength, rec.Camera.Orientation,
		rec.Camera.Width, rec.Camera.Height,
		rec.ProposedFolder(),
		"", // final_folder, reserved for manual edits
	}
}
