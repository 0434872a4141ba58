// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	tiffASCII    = 2
	tiffShort    = 3
	tiffLong     = 4
	tiffRational = 5
)

type tiffEntry struct {
	tag    uint16
	typ    uint16
	count  uint32
	value  uint32
	inline []byte
}

func writeIFD(buf *bytes.Buffer, entries []tiffEntry) {
	binary.Write(buf, binary.LittleEndian, uint16(len(entries)))

	for _, e := range entries {
		binary.Write(buf, binary.LittleEndian, e.tag)
		binary.Write(buf, binary.LittleEndian, e.typ)
		binary.Write(buf, binary.LittleEndian, e.count)

		if e.inline != nil {
			v := make([]byte, 4)
			copy(v, e.inline)
			buf.Write(v)
		} else {
			binary.Write(buf, binary.LittleEndian, e.value)
		}
	}

	// no next IFD
	binary.Write(buf, binary.LittleEndian, uint32(0))
}

func rationals(buf *bytes.Buffer, pairs ...uint32) {
	for _, v := range pairs {
		binary.Write(buf, binary.LittleEndian, v)
	}
}

// testTIFF builds a little-endian TIFF with an Exif sub-IFD carrying a
// capture timestamp, an EXIF 2.31 time-offset tag and an FNumber, plus a
// GPS sub-IFD placing the shot at 40.5N 74W.
func testTIFF() []byte {
	ifdSize := func(entries int) uint32 { return uint32(2 + 12*entries + 4) }

	ifd0Off := uint32(8)
	exifOff := ifd0Off + ifdSize(4)
	gpsOff := exifOff + ifdSize(3)

	dto := "2023:07:14 12:30:00\x00"
	offsetOriginal := "-03:00\x00"

	dtoOff := gpsOff + ifdSize(4)
	offsetOff := dtoOff + uint32(len(dto))
	fnumOff := offsetOff + uint32(len(offsetOriginal))
	latOff := fnumOff + 8
	lonOff := latOff + 24

	buf := &bytes.Buffer{}
	buf.WriteString("II")
	binary.Write(buf, binary.LittleEndian, uint16(0x2A))
	binary.Write(buf, binary.LittleEndian, ifd0Off)

	writeIFD(buf, []tiffEntry{
		{tag: 0x010F, typ: tiffASCII, count: 3, inline: []byte("Go\x00")},
		{tag: 0x0112, typ: tiffShort, count: 1, inline: []byte{6, 0}},
		{tag: 0x8769, typ: tiffLong, count: 1, value: exifOff},
		{tag: 0x8825, typ: tiffLong, count: 1, value: gpsOff},
	})

	writeIFD(buf, []tiffEntry{
		{tag: 0x829D, typ: tiffRational, count: 1, value: fnumOff},
		{tag: 0x9003, typ: tiffASCII, count: uint32(len(dto)), value: dtoOff},
		{tag: 0x9011, typ: tiffASCII, count: uint32(len(offsetOriginal)), value: offsetOff},
	})

	writeIFD(buf, []tiffEntry{
		{tag: 0x0001, typ: tiffASCII, count: 2, inline: []byte("N\x00")},
		{tag: 0x0002, typ: tiffRational, count: 3, value: latOff},
		{tag: 0x0003, typ: tiffASCII, count: 2, inline: []byte("W\x00")},
		{tag: 0x0004, typ: tiffRational, count: 3, value: lonOff},
	})

	buf.WriteString(dto)
	buf.WriteString(offsetOriginal)
	rationals(buf, 28, 10)          // f/2.8
	rationals(buf, 40, 1, 30, 1, 0, 1)
	rationals(buf, 74, 1, 0, 1, 0, 1)

	return buf.Bytes()
}

func TestExifExtract(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "IMG_0001.jpg")
	if err := os.WriteFile(path, testTIFF(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (Exif{}).Extract(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := map[string]Fields{
		path: {
			FieldMake:               "Go",
			FieldOrientation:        "6",
			FieldDateTimeOriginal:   "2023:07:14 12:30:00",
			FieldOffsetTimeOriginal: "-03:00",
			FieldFNumber:            "2.8",
			FieldGPSLatitude:        "40.5",
			FieldGPSLongitude:       "-74",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExifExtractUndecodableFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("not a photo"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (Exif{}).Extract(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(got[path]) != 0 {
		t.Fatalf("want empty fields, got %v", got[path])
	}
}
