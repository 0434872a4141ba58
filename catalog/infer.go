// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"time"

	"github.com/photocat-tools/photocat/spatial"
)

// InferenceWindow is the maximum distance in time between a donor and a
// recipient for coordinate inference.
const InferenceWindow = 60 * time.Minute

// inferCoordinates runs over the fully resolved set and backfills
// coordinates for records that ended up without GPS, borrowing from the
// strictly time-nearest record that has one. Records whose capture
// timestamp did not parse are excluded on both sides. Returns the records
// that received a coordinate, now classified as inferred.
func inferCoordinates(records []*Record) []*Record {
	var donors []*Record
	for _, rec := range records {
		if rec.Coord != nil && rec.TakenValid {
			donors = append(donors, rec)
		}
	}

	if len(donors) == 0 {
		return nil
	}

	var inferred []*Record

	for _, rec := range records {
		if rec.Coord != nil || !rec.TakenValid {
			continue
		}

		donor := nearestDonor(donors, rec)
		if donor == nil {
			continue
		}

		coord := *donor.Coord
		rec.Coord = &spatial.Point{Lat: coord.Lat, Lon: coord.Lon}
		rec.H3Cell = h3CellFor(coord)
		rec.GeoSource = GeoSourceInferred

		inferred = append(inferred, rec)
	}

	return inferred
}

func nearestDonor(donors []*Record, rec *Record) *Record {
	var best *Record
	var bestGap time.Duration

	for _, donor := range donors {
		gap := donor.Taken.Sub(rec.Taken)
		if gap < 0 {
			gap = -gap
		}

		if gap > InferenceWindow {
			continue
		}

		if best == nil || gap < bestGap {
			best, bestGap = donor, gap
		}
	}

	return best
}
