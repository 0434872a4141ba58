// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Exif extracts metadata in-process using the goexif decoder. It needs no
// external binary but understands fewer formats than exiftool.
type Exif struct{}

// tagged fields read straight out of the EXIF directory.
var exifTagFields = map[string]exif.FieldName{
	FieldDateTimeOriginal: exif.DateTimeOriginal,
	FieldCreateDate:       exif.DateTimeDigitized,
	FieldGPSAltitude:      exif.GPSAltitude,
	FieldMake:             exif.Make,
	FieldModel:            exif.Model,
	FieldLensModel:        exif.LensModel,
	FieldFNumber:          exif.FNumber,
	FieldExposureTime:     exif.ExposureTime,
	FieldISO:              exif.ISOSpeedRatings,
	FieldFocalLength:      exif.FocalLength,
	FieldOrientation:      exif.Orientation,
	FieldImageWidth:       exif.PixelXDimension,
	FieldImageHeight:      exif.PixelYDimension,
}

// EXIF 2.31 time-offset tag IDs. goexif's field table predates them, so
// the decoder drops them; they have to be dug out of the raw sub-IFD.
const (
	tagOffsetTime          = 0x9010
	tagOffsetTimeOriginal  = 0x9011
	tagOffsetTimeDigitized = 0x9012
)

var offsetTagFields = map[uint16]string{
	tagOffsetTime:          FieldOffsetTime,
	tagOffsetTimeOriginal:  FieldOffsetTimeOriginal,
	tagOffsetTimeDigitized: FieldOffsetTimeDigitized,
}

// Extract decodes EXIF metadata for each file. Files that cannot be decoded
// map to an empty Fields value.
func (Exif) Extract(ctx context.Context, paths []string) (map[string]Fields, error) {
	out := make(map[string]Fields, len(paths))

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields, err := extractFile(p)
		if err != nil {
			log.Printf("Metadata extraction failed for %s: %s", p, err)

			fields = Fields{}
		}

		out[filepath.Clean(p)] = fields
	}

	return out, nil
}

func extractFile(path string) (Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}

	fields := Fields{}

	for name, tagName := range exifTagFields {
		tag, err := x.Get(tagName)
		if err != nil {
			continue
		}

		if v := tagValue(tag); v != "" {
			fields[name] = v
		}
	}

	for name, v := range offsetTags(x) {
		fields[name] = v
	}

	if lat, lon, err := x.LatLong(); err == nil {
		fields[FieldGPSLatitude] = strconv.FormatFloat(lat, 'f', -1, 64)
		fields[FieldGPSLongitude] = strconv.FormatFloat(lon, 'f', -1, 64)
	}

	return fields, nil
}

// offsetTags re-decodes the Exif sub-IFD from the raw bytes and picks out
// the time-offset tags the decoder skipped as unnamed.
func offsetTags(x *exif.Exif) map[string]string {
	pointer, err := x.Get(exif.ExifIFDPointer)
	if err != nil {
		return nil
	}

	offset, err := pointer.Int64(0)
	if err != nil {
		return nil
	}

	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil
	}

	subDir, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return nil
	}

	var out map[string]string

	for _, tag := range subDir.Tags {
		name, ok := offsetTagFields[tag.Id]
		if !ok {
			continue
		}

		s, err := tag.StringVal()
		if err != nil {
			continue
		}

		if s = strings.TrimSpace(s); s != "" {
			if out == nil {
				out = map[string]string{}
			}

			out[name] = s
		}
	}

	return out
}

// tagValue renders a tag the way exiftool -n would: strings verbatim,
// integers as integers, rationals as their decimal value.
func tagValue(tag *tiff.Tag) string {
	if s, err := tag.StringVal(); err == nil {
		return strings.TrimSpace(s)
	}

	if i, err := tag.Int(0); err == nil {
		return strconv.Itoa(i)
	}

	if r, err := tag.Rat(0); err == nil {
		f, _ := r.Float64()

		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strings.Trim(tag.String(), `"`)
}
