// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "photocat",
	Short: "catalog photos with EXIF and reverse-geocoded place info",
	Long: `
photocat scans a directory of photos and builds a CSV catalog with key EXIF
fields, decimal GPS coordinates, reverse-geocoded place labels, motion data
between consecutive shots, and a proposed folder name per photo. A proximity
cache of previously resolved locations keeps external geocoding calls to a
minimum and can be persisted across runs.

Review the catalog, adjust the proposed folders (or fill in the final_folder
column), and feed it to your file-organizing tool of choice.
`,
}

var Version = "dev"

func Execute(version string) {
	Version = version
	rootCmd.Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
