// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/mapavotos/mapavotos/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
