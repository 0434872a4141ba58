// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/photocat-tools/photocat/metadata"
)

// UTCOffset is a signed hour:minute offset from UTC extracted from capture
// metadata. Valid is false when no offset field was present, in which case
// the capture time is naive local time.
type UTCOffset struct {
	Valid  bool
	Offset time.Duration
}

// String formats the offset as UTC±HH:MM, or "" when unknown.
func (o UTCOffset) String() string {
	if !o.Valid {
		return ""
	}

	total := int(o.Offset / time.Minute)

	sign := "+"
	if total < 0 {
		sign, total = "-", -total
	}

	return fmt.Sprintf("UTC%s%02d:%02d", sign, total/60, total%60)
}

// ParseOffset parses an EXIF offset string such as "+02:00", "-0330" or
// "Z" into a UTCOffset.
func ParseOffset(s string) (UTCOffset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UTCOffset{}, fmt.Errorf("empty offset")
	}

	if s == "Z" {
		return UTCOffset{Valid: true}, nil
	}

	sign := 1

	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}

	var hh, mm string

	switch {
	case strings.Contains(s, ":"):
		hh, mm, _ = strings.Cut(s, ":")
	case len(s) == 4:
		hh, mm = s[:2], s[2:]
	default:
		hh, mm = s, "0"
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return UTCOffset{}, fmt.Errorf("invalid offset hours %q", hh)
	}

	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return UTCOffset{}, fmt.Errorf("invalid offset minutes %q", mm)
	}

	// the sign was already stripped, so both components must be unsigned
	if hours < 0 || hours > 14 {
		return UTCOffset{}, fmt.Errorf("offset hours out of range: %d", hours)
	}

	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute

	return UTCOffset{Valid: true, Offset: time.Duration(sign) * d}, nil
}

// offsetFields in preference order: the original-capture offset wins over
// the generic one, which wins over the digitized one.
var offsetFields = []string{
	metadata.FieldOffsetTimeOriginal,
	metadata.FieldOffsetTime,
	metadata.FieldOffsetTimeDigitized,
}

// resolveOffset extracts the capture UTC offset from metadata. There is no
// geographic timezone lookup; offset resolution is metadata-only.
func resolveOffset(fields metadata.Fields) UTCOffset {
	raw := fields.First(offsetFields...)
	if raw == "" {
		return UTCOffset{}
	}

	offset, err := ParseOffset(raw)
	if err != nil {
		return UTCOffset{}
	}

	return offset
}

// timestampFormats accepted for capture timestamps, in trial order.
var timestampFormats = []string{
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
