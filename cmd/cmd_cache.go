// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/photocat-tools/photocat/catalog"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the persisted anchor cache",
}

var cacheFile string

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the anchors in the persisted cache",
	RunE: func(_ *cobra.Command, _ []string) error {
		anchors, err := catalog.LoadAnchors(cacheFile)
		if err != nil {
			return err
		}

		a, b, c := strings.Repeat("─", 10), strings.Repeat("─", 11), strings.Repeat("─", 44)
		fmt.Printf("Anchors in %s:\n", cacheFile)
		fmt.Printf("╭─%10s─┬─%11s─┬─%-44s╮\n", a, b, c)
		fmt.Printf("│ %10s │ %11s │ %-44s│\n", "Lat", "Lon", "Folder label")
		fmt.Printf("├─%10s─┼─%11s─┼─%-44s┤\n", a, b, c)

		for _, anchor := range anchors {
			fmt.Printf("│ %10.5f │ %11.5f │ %-44s│\n", anchor.Lat, anchor.Lon, anchor.FolderLabel)
		}

		fmt.Printf("╰─%10s─┴─%11s─┴─%-44s╯\n", a, b, c)
		fmt.Printf("%d anchors\n", len(anchors))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.PersistentFlags().StringVar(
		&cacheFile,
		"cache-file",
		"",
		"Anchor cache file to inspect",
	)
	_ = cacheCmd.MarkPersistentFlagRequired("cache-file")
}
