// Copyright 2025 The PhotoCat Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/photocat-tools/photocat/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
