// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"log"

	"github.com/photocat-tools/photocat/geocode"
	"github.com/photocat-tools/photocat/spatial"
)

// placeResolver resolves coordinates into place labels, consulting the
// anchor cache before falling back to the external geocoder.
type placeResolver struct {
	cache    *AnchorCache
	geocoder geocode.ReverseGeocoder
	metrics  *Metrics
}

// resolve returns the place labels for pt. On a cache miss an anchor is
// registered even when the lookup fails, with whatever partial labels were
// assigned; a failed coordinate is never re-resolved within the run.
func (r *placeResolver) resolve(ctx context.Context, pt spatial.Point) (geocode.Place, PlaceResolution) {
	if anchor, ok := r.cache.Lookup(pt); ok {
		r.metrics.CacheHits++

		return anchor.Place, PlaceResolved
	}

	place := geocode.Unknown()
	outcome := PlaceResolved

	r.metrics.Lookups++

	resolved, err := r.geocoder.ReverseGeocode(ctx, pt.Lat, pt.Lon)
	if err != nil {
		log.Printf("Reverse geocoding (%f, %f) failed: %s", pt.Lat, pt.Lon, err)

		r.metrics.LookupErrs++
		outcome = PlaceFailed
	} else {
		place = *resolved
	}

	r.cache.Add(Anchor{
		Point:  pt,
		Place:  place,
		H3Cell: h3CellFor(pt),
	})
	r.metrics.NewAnchors++

	return place, outcome
}
