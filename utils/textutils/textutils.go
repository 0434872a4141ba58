// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils provides helpers to turn place labels into file-system
// friendly names.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is the slug used when nothing printable remains.
const Fallback = "UnknownLocation"

// ASCIIFolding removes combining marks so accented place names reduce to
// their ASCII skeletons ("Garzón" -> "Garzon").
func ASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(s),
	)

	return s
}

// Slug converts a label into a folder-name safe slug: accents folded,
// anything that is not a letter, digit or one of " _-," replaced with
// underscores, words joined with underscores. Non-Latin scripts pass
// through untouched so Japanese or Cyrillic place names keep their name.
func Slug(s string) string {
	s = ASCIIFolding(s)

	var b strings.Builder
	for _, ch := range s {
		switch {
		case unicode.IsLetter(ch), unicode.IsDigit(ch):
			b.WriteRune(ch)
		case ch == ' ', ch == '_', ch == '-', ch == ',':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}

	s = strings.Trim(b.String(), " _-,")

	parts := strings.Fields(s)
	s = strings.Join(parts, "_")

	if s == "" {
		return Fallback
	}

	return s
}
