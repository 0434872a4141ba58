// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import "math"

// motionCursor holds the previous GPS-bearing record so consecutive
// coordinates can be compared. Records without GPS never touch it.
type motionCursor struct {
	prev *Record
}

// observe computes motion fields for a GPS-bearing record against the
// cursor and then advances the cursor, whether or not the fields were
// computable. The first GPS-bearing record gets no motion fields.
func (c *motionCursor) observe(rec *Record) {
	if rec.Coord == nil {
		return
	}

	if c.prev != nil {
		m := &Motion{
			DistanceMi:   c.prev.Coord.HaversineMiles(*rec.Coord),
			ElapsedHours: elapsedHours(c.prev, rec),
		}

		if m.ElapsedHours > 0 {
			m.SpeedMPH = m.DistanceMi / m.ElapsedHours
			m.SpeedValid = true
		}

		rec.Motion = m
	}

	c.prev = rec
}

// elapsedHours is the absolute time difference between two captures. When
// both records carry a known UTC offset the wall clocks are normalized to
// UTC first; otherwise this is a naive wall-clock subtraction.
func elapsedHours(a, b *Record) float64 {
	ta, tb := a.Taken, b.Taken

	if a.Offset.Valid && b.Offset.Valid {
		ta = ta.Add(-a.Offset.Offset)
		tb = tb.Add(-b.Offset.Offset)
	}

	return math.Abs(tb.Sub(ta).Hours())
}
