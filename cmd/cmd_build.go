// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/photocat-tools/photocat/catalog"
	"github.com/photocat-tools/photocat/config"
	"github.com/photocat-tools/photocat/geocode"
	"github.com/photocat-tools/photocat/metadata"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	src           string
	out           string
	userAgent     string
	cacheFile     string
	radiusMi      float64
	sleepSeconds  float64
	geocodeURL    string
	useExiftool   bool
	exiftoolPath  string
	traceHTTP     bool
	traceHTTPBody bool
	configFile    string
}

var buildOpts = &buildFlags{}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the CSV catalog for a directory of photos",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if buildOpts.configFile != "" {
			cfg, err := config.Load(buildOpts.configFile)
			if err != nil {
				return err
			}

			applyConfig(cmd, cfg)
		}

		if buildOpts.src == "" || buildOpts.out == "" {
			return fmt.Errorf("both --src and --out are required")
		}

		if buildOpts.userAgent == "" {
			return fmt.Errorf("--user-agent with contact info is required per the Nominatim usage policy")
		}

		geocoder, err := geocode.NewNominatim(geocode.NominatimOptions{
			BaseURL:             buildOpts.geocodeURL,
			UserAgent:           buildOpts.userAgent,
			Delay:               time.Duration(buildOpts.sleepSeconds * float64(time.Second)),
			EnableHTTPTrace:     buildOpts.traceHTTP,
			EnableHTTPBodyTrace: buildOpts.traceHTTPBody,
		})
		if err != nil {
			return err
		}

		var provider metadata.Provider = metadata.Exif{}
		if buildOpts.useExiftool {
			provider = metadata.Exiftool{Path: buildOpts.exiftoolPath}
		}

		b := catalog.NewBuilder(&catalog.Options{
			Src:       buildOpts.src,
			Out:       buildOpts.out,
			CacheFile: buildOpts.cacheFile,
			RadiusMi:  buildOpts.radiusMi,
		}, provider, geocoder)

		return b.Run(cmd.Context())
	},
}

// applyConfig fills in file-config values for flags the user did not set
// explicitly.
func applyConfig(cmd *cobra.Command, cfg *config.Run) {
	flags := cmd.Flags()

	if !flags.Changed("src") && cfg.Src != "" {
		buildOpts.src = cfg.Src
	}

	if !flags.Changed("out") && cfg.Out != "" {
		buildOpts.out = cfg.Out
	}

	if !flags.Changed("user-agent") && cfg.UserAgent != "" {
		buildOpts.userAgent = cfg.UserAgent
	}

	if !flags.Changed("cache-file") && cfg.CacheFile != "" {
		buildOpts.cacheFile = cfg.CacheFile
	}

	if !flags.Changed("radius-mi") && cfg.RadiusMi != nil {
		buildOpts.radiusMi = *cfg.RadiusMi
	}

	if !flags.Changed("sleep") && cfg.SleepSeconds != nil {
		buildOpts.sleepSeconds = *cfg.SleepSeconds
	}

	if !flags.Changed("geocode-url") && cfg.GeocodeURL != "" {
		buildOpts.geocodeURL = cfg.GeocodeURL
	}

	if !flags.Changed("exiftool") && cfg.Exiftool != nil {
		buildOpts.useExiftool = *cfg.Exiftool
	}

	if !flags.Changed("exiftool-path") && cfg.ExiftoolPath != "" {
		buildOpts.exiftoolPath = cfg.ExiftoolPath
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildOpts.src, "src", "", "Source directory of photos")
	buildCmd.Flags().StringVar(&buildOpts.out, "out", "", "Output CSV file")
	buildCmd.Flags().StringVar(
		&buildOpts.userAgent,
		"user-agent",
		"",
		"User-Agent for geocoding requests; include contact info per the Nominatim policy",
	)
	buildCmd.Flags().Float64Var(
		&buildOpts.radiusMi,
		"radius-mi",
		10.0,
		"Anchor cache hit radius in miles; 0 disables cache reuse",
	)
	buildCmd.Flags().Float64Var(
		&buildOpts.sleepSeconds,
		"sleep",
		1.0,
		"Delay after every geocoding request, in seconds",
	)
	buildCmd.Flags().StringVar(
		&buildOpts.cacheFile,
		"cache-file",
		"",
		"Anchor cache file persisted across runs",
	)
	buildCmd.Flags().StringVar(
		&buildOpts.geocodeURL,
		"geocode-url",
		"",
		"Base URL of a Nominatim-compatible reverse-geocoding service",
	)
	buildCmd.Flags().BoolVar(
		&buildOpts.useExiftool,
		"exiftool",
		false,
		"Extract metadata with the exiftool binary instead of the built-in decoder",
	)
	buildCmd.Flags().StringVar(
		&buildOpts.exiftoolPath,
		"exiftool-path",
		"",
		"Path to the exiftool binary",
	)
	buildCmd.Flags().BoolVar(
		&buildOpts.traceHTTP,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	buildCmd.Flags().BoolVar(
		&buildOpts.traceHTTPBody,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
	buildCmd.Flags().StringVar(
		&buildOpts.configFile,
		"config",
		"",
		"YAML run configuration; explicit flags take precedence",
	)
}
