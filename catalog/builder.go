// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/photocat-tools/photocat/geocode"
	"github.com/photocat-tools/photocat/metadata"
	"github.com/photocat-tools/photocat/spatial"
	"github.com/schollz/progressbar/v3"
)

// ErrNoPhotos is returned when the source tree contains no JPG/JPEG files.
var ErrNoPhotos = errors.New("no JPG/JPEG files found")

// Options configuration for a catalog run.
type Options struct {
	// Src is the root directory to scan for photos
	Src string

	// Out is the CSV file to write
	Out string

	// CacheFile persists the anchor cache across runs; empty disables it
	CacheFile string

	// RadiusMi is the anchor-cache hit radius in miles; 0 disables reuse
	RadiusMi float64
}

// Metrics tracks counters collected during a catalog run.
type Metrics struct {
	Files      int
	CacheHits  int
	Lookups    int
	LookupErrs int
	NewAnchors int
	Inferred   int
}

// Builder drives the pipeline: discover, extract metadata, resolve places,
// compute motion, infer missing coordinates, write the catalog.
type Builder struct {
	options  *Options
	provider metadata.Provider
	geocoder geocode.ReverseGeocoder
	Metrics  Metrics
}

// NewBuilder creates a pipeline driver over the given collaborators.
func NewBuilder(options *Options, provider metadata.Provider, geocoder geocode.ReverseGeocoder) *Builder {
	if options == nil {
		options = &Options{}
	}

	return &Builder{
		options:  options,
		provider: provider,
		geocoder: geocoder,
	}
}

// Run executes one full catalog build.
func (b *Builder) Run(ctx context.Context) error {
	files, err := discoverPhotos(b.options.Src)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", b.options.Src, err)
	}

	if len(files) == 0 {
		return ErrNoPhotos
	}

	b.Metrics.Files = len(files)

	records, err := b.collectRecords(ctx, files)
	if err != nil {
		return err
	}

	cache := NewAnchorCache(b.options.RadiusMi, b.loadAnchors())
	resolver := &placeResolver{cache: cache, geocoder: b.geocoder, metrics: &b.Metrics}

	b.resolveRecords(ctx, resolver, records)

	inferred := inferCoordinates(records)
	b.Metrics.Inferred = len(inferred)

	// inferred coordinates get their place re-resolved through the same
	// cache-first path; the donor's anchor normally makes this a hit
	for _, rec := range inferred {
		rec.Place, rec.Resolution = resolver.resolve(ctx, *rec.Coord)
	}

	if err := b.writeCatalog(records); err != nil {
		return err
	}

	log.Printf("Catalog written to %s (%d records)", b.options.Out, len(records))

	if b.options.CacheFile != "" {
		if err := SaveAnchors(b.options.CacheFile, cache.Anchors()); err != nil {
			return err
		}

		log.Printf("Anchor cache saved to %s (total anchors: %d)", b.options.CacheFile, cache.Len())
	}

	log.Printf(
		"Resolve phase completed - %d cache hits, %d lookups, %d failed, %d new anchors",
		b.Metrics.CacheHits, b.Metrics.Lookups, b.Metrics.LookupErrs, b.Metrics.NewAnchors,
	)
	log.Printf("Inference phase completed - %d records inferred", b.Metrics.Inferred)

	return nil
}

// discoverPhotos walks the source tree collecting JPG/JPEG files.
func discoverPhotos(src string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".jpg", ".jpeg":
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// collectRecords extracts metadata, attaches capture times and offsets,
// parses coordinates, and returns the records ordered by capture time.
func (b *Builder) collectRecords(ctx context.Context, files []string) ([]*Record, error) {
	fieldsByPath, err := b.provider.Extract(ctx, files)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}

		// a failed batch degrades to empty metadata for every record
		log.Printf("Metadata extraction failed, proceeding without metadata: %s", err)

		fieldsByPath = map[string]metadata.Fields{}
	}

	records := make([]*Record, 0, len(files))

	for _, path := range files {
		fields := fieldsByPath[filepath.Clean(path)]
		if fields == nil {
			fields = metadata.Fields{}
		}

		rec := newRecord(path, fields)
		b.attachCaptureTime(rec, fields)
		attachCoordinate(rec, fields)

		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Taken.Equal(records[j].Taken) {
			return records[i].SourcePath < records[j].SourcePath
		}

		return records[i].Taken.Before(records[j].Taken)
	})

	return records, nil
}

// attachCaptureTime sets the record's capture time from metadata, falling
// back to the file modification time interpreted as UTC.
func (b *Builder) attachCaptureTime(rec *Record, fields metadata.Fields) {
	raw := fields.First(metadata.FieldDateTimeOriginal, metadata.FieldCreateDate)
	if raw != "" {
		if t, ok := parseTimestamp(raw); ok {
			rec.Taken = t
			rec.TakenValid = true
			rec.Offset = resolveOffset(fields)

			return
		}

		log.Printf("Unparseable capture timestamp %q for %s, using file mtime", raw, rec.SourcePath)
	}

	info, err := os.Stat(rec.SourcePath)
	if err != nil {
		log.Printf("Stat failed for %s: %s", rec.SourcePath, err)

		return
	}

	rec.Taken = info.ModTime().UTC()
	rec.Offset = UTCOffset{Valid: true}
}

func attachCoordinate(rec *Record, fields metadata.Fields) {
	lat, errLat := strconv.ParseFloat(fields[metadata.FieldGPSLatitude], 64)
	lon, errLon := strconv.ParseFloat(fields[metadata.FieldGPSLongitude], 64)

	if errLat != nil || errLon != nil {
		return
	}

	rec.Coord = &spatial.Point{Lat: lat, Lon: lon}
	rec.H3Cell = h3CellFor(*rec.Coord)
	rec.GeoSource = GeoSourceExif
}

// resolveRecords is the single sequential resolve pass: place labels via
// cache or lookup, then motion against the previous GPS-bearing record.
func (b *Builder) resolveRecords(ctx context.Context, resolver *placeResolver, records []*Record) {
	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("Resolving places"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	cursor := &motionCursor{}

	for _, rec := range records {
		if rec.Coord != nil {
			rec.Place, rec.Resolution = resolver.resolve(ctx, *rec.Coord)

			cursor.observe(rec)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}
}

func (b *Builder) loadAnchors() []Anchor {
	if b.options.CacheFile == "" {
		return nil
	}

	anchors, err := LoadAnchors(b.options.CacheFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Anchor cache unavailable, starting empty: %s", err)
		}

		return nil
	}

	log.Printf("Loaded %d anchors from %s", len(anchors), b.options.CacheFile)

	return anchors
}

func (b *Builder) writeCatalog(records []*Record) error {
	f, err := os.Create(b.options.Out)
	if err != nil {
		return fmt.Errorf("creating catalog %s: %w", b.options.Out, err)
	}

	if err := WriteCatalog(f, records); err != nil {
		return errors.Join(err, f.Close())
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing catalog %s: %w", b.options.Out, err)
	}

	return nil
}
