// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/photocat-tools/photocat/utils/httputils"
)

// DefaultBaseURL is the public Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimOptions configuration for the Nominatim client.
type NominatimOptions struct {
	// BaseURL of the reverse-geocoding service. Defaults to the public
	// Nominatim instance.
	BaseURL string

	// UserAgent identifies the caller to the service. The Nominatim usage
	// policy requires contact information, so it must not be empty.
	UserAgent string

	// Delay applied after every call, successful or not, to honor the
	// service rate-limit policy.
	Delay time.Duration

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool
}

// Nominatim resolves coordinates against a Nominatim-compatible
// reverse-geocoding endpoint.
type Nominatim struct {
	baseURL string
	delay   time.Duration
	client  *http.Client
}

// NewNominatim creates a reverse geocoder backed by a Nominatim-compatible
// service.
func NewNominatim(options NominatimOptions) (*Nominatim, error) {
	if options.UserAgent == "" {
		return nil, fmt.Errorf("nominatim requires a user agent with contact information")
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	loggingTransport := &httputils.LoggingRoundTripper{
		Writer:    httpLogWriter,
		DumpBody:  options.EnableHTTPBodyTrace,
		Transport: http.DefaultTransport,
	}

	headerTransport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": options.UserAgent,
			"Accept":     "application/json",
		},
		Transport: loggingTransport,
	}

	return &Nominatim{
		baseURL: baseURL,
		delay:   options.Delay,
		client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: headerTransport,
		},
	}, nil
}

type nominatimResponse struct {
	Address map[string]string `json:"address"`
}

// ReverseGeocode resolves a coordinate into place labels with a single
// lookup. The configured delay is applied before returning, regardless of
// the outcome.
func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error) {
	defer func() {
		if n.delay > 0 {
			time.Sleep(n.delay)
		}
	}()

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", fmt.Sprintf("%v", lat))
	params.Set("lon", fmt.Sprintf("%v", lon))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	reqURL := n.baseURL + "/reverse?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocoding returned status %d", resp.StatusCode)
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	place := PlaceFromAddress(nr.Address)

	return &place, nil
}
