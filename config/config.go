// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads an optional YAML run configuration. Command-line
// flags always take precedence over file values.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Run mirrors the build command flags. Pointer fields distinguish "absent"
// from zero values.
type Run struct {
	Src          string   `yaml:"src"`
	Out          string   `yaml:"out"`
	UserAgent    string   `yaml:"user_agent"`
	RadiusMi     *float64 `yaml:"radius_mi" validate:"omitempty,gte=0"`
	SleepSeconds *float64 `yaml:"sleep_seconds" validate:"omitempty,gte=0"`
	CacheFile    string   `yaml:"cache_file"`
	GeocodeURL   string   `yaml:"geocode_url" validate:"omitempty,url"`
	Exiftool     *bool    `yaml:"exiftool"`
	ExiftoolPath string   `yaml:"exiftool_path"`
}

// Load reads and validates a YAML run configuration.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Run
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}

	return &cfg, nil
}
