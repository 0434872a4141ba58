// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/photocat-tools/photocat/geocode"
	"github.com/photocat-tools/photocat/spatial"
)

// Anchor is a cached, previously-resolved coordinate to place-label
// association. Every anchor comes from exactly one external lookup attempt,
// or from a prior run's persisted cache.
type Anchor struct {
	spatial.Point
	geocode.Place
	H3Cell string `json:"h3_cell,omitempty"`
}

// AnchorCache is the append-only proximity cache consulted before any
// external lookup. Anchors are never deleted or merged within a run.
type AnchorCache struct {
	radiusMi float64
	anchors  []Anchor
}

// NewAnchorCache creates a cache with the given hit radius in miles, seeded
// with anchors from a prior run. A radius of zero disables reuse entirely.
func NewAnchorCache(radiusMi float64, seed []Anchor) *AnchorCache {
	return &AnchorCache{
		radiusMi: radiusMi,
		anchors:  append([]Anchor(nil), seed...),
	}
}

// Lookup returns the first anchor in insertion order within the cache
// radius of pt. This is a greedy earliest-registered policy, not true
// nearest-neighbor: overlapping radii favor the anchor discovered first.
func (c *AnchorCache) Lookup(pt spatial.Point) (Anchor, bool) {
	if c.radiusMi <= 0 {
		return Anchor{}, false
	}

	for _, a := range c.anchors {
		if pt.HaversineMiles(a.Point) <= c.radiusMi {
			return a, true
		}
	}

	return Anchor{}, false
}

// Add appends a new anchor. The cache does not deduplicate.
func (c *AnchorCache) Add(a Anchor) {
	c.anchors = append(c.anchors, a)
}

// Len returns the number of anchors.
func (c *AnchorCache) Len() int {
	return len(c.anchors)
}

// Anchors returns the full anchor list in insertion order.
func (c *AnchorCache) Anchors() []Anchor {
	return c.anchors
}

// LoadAnchors reads a persisted anchor list. Callers treat any error as an
// empty cache; the run proceeds without prior anchors.
func LoadAnchors(path string) ([]Anchor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var anchors []Anchor
	if err := json.Unmarshal(data, &anchors); err != nil {
		return nil, fmt.Errorf("parsing anchor cache %s: %w", path, err)
	}

	return anchors, nil
}

// SaveAnchors overwrites the persisted cache with the full anchor list.
func SaveAnchors(path string, anchors []Anchor) error {
	data, err := json.MarshalIndent(anchors, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding anchor cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing anchor cache %s: %w", path, err)
	}

	return nil
}
