// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog builds a CSV catalog of photos enriched with resolved
// place labels, motion data between consecutive shots, and coordinates
// inferred from temporal neighbors.
package catalog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/photocat-tools/photocat/geocode"
	"github.com/photocat-tools/photocat/metadata"
	"github.com/photocat-tools/photocat/spatial"
	"github.com/photocat-tools/photocat/utils/textutils"
	"github.com/uber/h3-go/v4"
)

// GeoSource classifies how a record's coordinate was obtained.
type GeoSource string

// Geo-source values.
const (
	GeoSourceExif     GeoSource = "exif"
	GeoSourceInferred GeoSource = "inferred"
	GeoSourceUnknown  GeoSource = "unknown"
)

// PlaceResolution is the per-record outcome of place resolution. It keeps
// "the photo has no GPS" distinguishable from "the lookup failed".
type PlaceResolution string

// Place resolution outcomes.
const (
	PlaceResolved PlaceResolution = "resolved"
	PlaceNone     PlaceResolution = "no-gps"
	PlaceFailed   PlaceResolution = "failed"
)

// Camera carries the pass-through EXIF camera attributes for the catalog.
type Camera struct {
	Make        string
	Model       string
	Lens        string
	FNumber     string
	Exposure    string
	ISO         string
	FocalLength string
	Orientation string
	Width       string
	Height      string
}

func cameraFromFields(fields metadata.Fields) Camera {
	return Camera{
		Make:        fields[metadata.FieldMake],
		Model:       fields[metadata.FieldModel],
		Lens:        fields[metadata.FieldLensModel],
		FNumber:     fields[metadata.FieldFNumber],
		Exposure:    fields[metadata.FieldExposureTime],
		ISO:         fields[metadata.FieldISO],
		FocalLength: fields[metadata.FieldFocalLength],
		Orientation: fields[metadata.FieldOrientation],
		Width:       fields[metadata.FieldImageWidth],
		Height:      fields[metadata.FieldImageHeight],
	}
}

// Motion describes a record relative to the previous GPS-bearing record.
type Motion struct {
	DistanceMi   float64
	ElapsedHours float64
	SpeedMPH     float64

	// SpeedValid is false when no time elapsed between the two records.
	SpeedValid bool
}

// Record is one photo's resolved state. It is created once per input file
// and populated incrementally by each pipeline stage.
type Record struct {
	SourcePath string
	FileName   string

	// Taken is the capture wall-clock time; TakenValid reports whether it
	// was parsed from metadata rather than derived from the file mtime.
	Taken      time.Time
	TakenValid bool
	Offset     UTCOffset

	Coord     *spatial.Point
	H3Cell    string
	GeoSource GeoSource

	Place      geocode.Place
	Resolution PlaceResolution

	Motion *Motion
	Camera Camera
}

func newRecord(path string, fields metadata.Fields) *Record {
	return &Record{
		SourcePath: path,
		FileName:   filepath.Base(path),
		GeoSource:  GeoSourceUnknown,
		Place:      geocode.Unknown(),
		Resolution: PlaceNone,
		Camera:     cameraFromFields(fields),
	}
}

// Date returns the capture date in ISO form.
func (r *Record) Date() string {
	return r.Taken.Format("2006-01-02")
}

// Time returns the capture time of day in ISO form.
func (r *Record) Time() string {
	return r.Taken.Format("15:04:05")
}

// ProposedFolder is the suggested grouping folder,
// Slug(folder label)_YYYY-MM-DD.
func (r *Record) ProposedFolder() string {
	return fmt.Sprintf("%s_%s", textutils.Slug(r.Place.FolderLabel), r.Date())
}

// h3Resolution indexes anchors and records at roughly neighborhood scale.
const h3Resolution = 8

func h3CellFor(pt spatial.Point) string {
	cell, err := h3.LatLngToCell(h3.NewLatLng(pt.Lat, pt.Lon), h3Resolution)
	if err != nil {
		return ""
	}

	return cell.String()
}
