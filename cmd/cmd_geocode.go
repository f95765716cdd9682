// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/mapavotos/mapavotos/geocoding"
	"github.com/mapavotos/mapavotos/report"
	"github.com/mapavotos/mapavotos/tse"
	"github.com/spf13/cobra"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <municipio> <uf>",
	Short: "Resolve as coordenadas de um único município",
	Long: `Consulta as fontes de coordenadas configuradas com --resolver para um
município, como faria o processamento completo. A saída traz, separados
por tabulação: município/UF, latitude, longitude, célula H3, fonte,
confiança e o nome do local segundo a fonte.

$ mapavotos geocode Joinville SC --resolver static,nominatim --trace-http
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, region := tse.NormalizeName(args[0]), tse.NormalizeRegion(args[1])

		resolver, err := geoOpts.resolver(cmd.Context())
		if err != nil {
			return err
		}

		result, ok := geocoding.Locate(cmd.Context(), resolver, name, region)
		if !ok {
			return fmt.Errorf("coordenadas não encontradas para %s/%s", name, region)
		}

		p := result.Point()

		cell, err := p.Cell(report.MarkerCellRes)
		if err != nil {
			return err
		}

		// municipality, lat, lng, H3 cell, provider, confidence, provider's name for the place
		fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\t%.4f\t%.4f\t%s\t%s\t%s\t%s\n",
			name, region, p.Lat, p.Lng, cell, result.Provider, result.Confidence, result.DisplayName)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}
