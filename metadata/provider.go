// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

// Package metadata extracts photo metadata as flat field maps, the way
// exiftool reports them.
package metadata

import "context"

// Field names shared by all providers. GPS coordinates are reported in
// decimal degrees, numeric values as their decimal string form.
const (
	FieldDateTimeOriginal    = "DateTimeOriginal"
	FieldCreateDate          = "CreateDate"
	FieldOffsetTime          = "OffsetTime"
	FieldOffsetTimeOriginal  = "OffsetTimeOriginal"
	FieldOffsetTimeDigitized = "OffsetTimeDigitized"
	FieldGPSLatitude         = "GPSLatitude"
	FieldGPSLongitude        = "GPSLongitude"
	FieldGPSAltitude         = "GPSAltitude"
	FieldMake                = "Make"
	FieldModel               = "Model"
	FieldLensModel           = "LensModel"
	FieldFNumber             = "FNumber"
	FieldExposureTime        = "ExposureTime"
	FieldISO                 = "ISO"
	FieldFocalLength         = "FocalLength"
	FieldOrientation         = "Orientation"
	FieldImageWidth          = "ImageWidth"
	FieldImageHeight         = "ImageHeight"
)

// Fields is the flat field to value mapping extracted for one file.
// An empty map means the extraction failed or the file carried no metadata.
type Fields map[string]string

// First returns the first non-empty value among the given field names.
func (f Fields) First(names ...string) string {
	for _, name := range names {
		if v := f[name]; v != "" {
			return v
		}
	}

	return ""
}

// Provider extracts metadata for a batch of files, keyed by cleaned path.
// Per-file failures yield an empty Fields value, never an error.
type Provider interface {
	Extract(ctx context.Context, paths []string) (map[string]Fields, error)
}
