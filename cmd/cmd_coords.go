// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/mapavotos/mapavotos/geocoding"
	"github.com/mapavotos/mapavotos/utils/textutils"
	"github.com/spf13/cobra"
)

var coordsCmd = &cobra.Command{
	Use:   "coords",
	Short: "Lista a tabela estática de coordenadas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var extra []geocoding.StaticEntry

		if geoOpts.coordsFile != "" {
			var err error
			if extra, err = geocoding.LoadStaticFile(geoOpts.coordsFile); err != nil {
				return err
			}
		}

		static := geocoding.NewStatic(log.Printf, extra...)
		out := cmd.OutOrStdout()

		a, b, c := strings.Repeat("─", 25), strings.Repeat("─", 2), strings.Repeat("─", 10)
		fmt.Fprintf(out, "Coordenadas conhecidas (%d):\n", static.Len())
		fmt.Fprintf(out, "╭─%s─┬─%s─┬─%s─┬─%s─╮\n", a, b, c, c)
		fmt.Fprintf(out, "│ %s │ %s │ %s │ %s │\n",
			textutils.PadRight("Município", 25), "UF", textutils.PadLeft("Latitude", 10), textutils.PadLeft("Longitude", 10))
		fmt.Fprintf(out, "├─%s─┼─%s─┼─%s─┼─%s─┤\n", a, b, c, c)
		err := static.Each(func(e geocoding.StaticEntry) error {
			fmt.Fprintf(out, "│ %s │ %-2s │ %10.4f │ %10.4f │\n", textutils.PadRight(e.Name, 25), e.Region, e.Lat, e.Lng)

			return nil
		})
		fmt.Fprintf(out, "╰─%s─┴─%s─┴─%s─┴─%s─╯\n", a, b, c, c)

		return err
	},
}

func init() {
	rootCmd.AddCommand(coordsCmd)
}
