// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
)

// requestedFields is what we ask exiftool for, one -Tag flag each.
var requestedFields = []string{
	FieldDateTimeOriginal, FieldCreateDate,
	FieldOffsetTimeOriginal, FieldOffsetTime, FieldOffsetTimeDigitized,
	FieldGPSLatitude, FieldGPSLongitude, FieldGPSAltitude,
	FieldMake, FieldModel, FieldLensModel,
	FieldFNumber, FieldExposureTime, FieldISO, FieldFocalLength,
	FieldOrientation, FieldImageWidth, FieldImageHeight,
}

// Exiftool extracts metadata by invoking the exiftool binary once for the
// whole batch (-j -n), which is much faster than one process per file.
type Exiftool struct {
	// Path to the exiftool binary. Defaults to "exiftool" on $PATH.
	Path string
}

// Extract runs exiftool over the batch. Files exiftool reports nothing for
// map to an empty Fields value.
func (e Exiftool) Extract(ctx context.Context, paths []string) (map[string]Fields, error) {
	bin := e.Path
	if bin == "" {
		bin = "exiftool"
	}

	args := []string{"-m", "-api", "largefilesupport=1", "-j", "-n"}
	for _, f := range requestedFields {
		args = append(args, "-"+f)
	}

	args = append(args, paths...)

	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		// exiftool exits non-zero when some files have no metadata but
		// still emits valid JSON for the rest
		if len(out) == 0 {
			return nil, fmt.Errorf("running exiftool: %w", err)
		}

		log.Printf("exiftool reported errors, continuing with partial output: %s", err)
	}

	byPath, err := parseExiftoolOutput(out)
	if err != nil {
		return nil, err
	}

	// files exiftool skipped entirely still need an entry
	for _, p := range paths {
		key := filepath.Clean(p)
		if _, ok := byPath[key]; !ok {
			byPath[key] = Fields{}
		}
	}

	return byPath, nil
}

func parseExiftoolOutput(out []byte) (map[string]Fields, error) {
	var entries []map[string]any
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("decoding exiftool output: %w", err)
	}

	byPath := make(map[string]Fields, len(entries))

	for _, entry := range entries {
		source, _ := entry["SourceFile"].(string)
		if source == "" {
			continue
		}

		fields := Fields{}

		for k, v := range entry {
			if k == "SourceFile" {
				continue
			}

			switch val := v.(type) {
			case string:
				fields[k] = val
			case float64:
				fields[k] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				fields[k] = strconv.FormatBool(val)
			}
		}

		byPath[filepath.Clean(source)] = fields
	}

	return byPath, nil
}
