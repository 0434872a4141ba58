// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import "context"

// UnknownCity is the placeholder label used when a place could not be
// resolved to any administrative division.
const UnknownCity = "UnknownLocation"

// Place represents the resolved place labels for a coordinate.
type Place struct {
	// CityLabel pairs the city with its state or country code,
	// e.g. "Phoenix, Arizona" or "Montevideo, UY".
	CityLabel    string `json:"city_label"`
	Neighborhood string `json:"neighborhood"`
	County       string `json:"county"`
	State        string `json:"state"`
	CountryCode  string `json:"country_code"`

	// FolderLabel is the composite grouping label:
	// CityLabel, or CityLabel_Neighborhood when a neighborhood exists.
	FolderLabel string `json:"folder_label"`
}

// Unknown returns the default Place assigned to records whose location
// could not be resolved.
func Unknown() Place {
	return Place{
		CityLabel:   UnknownCity,
		FolderLabel: UnknownCity,
	}
}

// ReverseGeocoder resolves a coordinate into place labels.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error)
}

// cityKeys is the preference order used to pick the city-tier name from
// an address.
var cityKeys = []string{"city", "town", "village", "hamlet", "municipality", "county"}

// neighborhoodKeys is the preference order used to pick the
// neighborhood-tier name from an address.
var neighborhoodKeys = []string{
	"neighbourhood", "neighborhood", "suburb", "quarter", "locality", "borough", "district",
}

func pickFirst(addr map[string]string, keys []string) string {
	for _, k := range keys {
		if v := addr[k]; v != "" {
			return v
		}
	}

	return ""
}

// PlaceFromAddress builds the place labels from the address components
// returned by a reverse-geocoding service.
func PlaceFromAddress(addr map[string]string) Place {
	city := pickFirst(addr, cityKeys)
	if city == "" {
		city = addr["state"]
	}

	if city == "" {
		city = addr["country"]
	}

	if city == "" {
		city = UnknownCity
	}

	p := Place{
		Neighborhood: pickFirst(addr, neighborhoodKeys),
		County:       addr["county"],
		State:        addr["state"],
		CountryCode:  toUpperASCII(addr["country_code"]),
	}

	switch {
	case p.State != "":
		p.CityLabel = city + ", " + p.State
	case p.CountryCode != "":
		p.CityLabel = city + ", " + p.CountryCode
	default:
		p.CityLabel = city
	}

	p.FolderLabel = p.CityLabel
	if p.Neighborhood != "" {
		p.FolderLabel = p.CityLabel + "_" + p.Neighborhood
	}

	return p
}

// country codes are plain ASCII, no need for unicode case mapping.
func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}

	return string(b)
}
