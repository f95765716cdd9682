// Copyright 2025 The MapaVotos Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mapavotos/mapavotos/geocoding"
	"github.com/mapavotos/mapavotos/tse"
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
	Use:   "mapavotos",
	Short: "mapa de calor e relatório de votações do TSE",
	Long: `
mapavotos lê um extrato de resultados do Tribunal Superior Eleitoral (CSV
separado por ponto e vírgula), soma os votos por município e gera um mapa de
calor, gráficos de barras e de pizza e um relatório estatístico.

Sem argumentos, processa dados_tse.csv no diretório atual.
`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), runOpts, cmd.OutOrStdout())
	},
}

var runOpts = &runOptions{}

var Version = "dev"

func userAgent() string {
	return fmt.Sprintf("mapavotos/%s (+https://github.com/mapavotos/mapavotos)", Version)
}

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&runOpts.Input, "input", "dados_tse.csv", "Arquivo CSV do TSE a processar")
	flags.StringVar(&runOpts.OutDir, "out-dir", ".", "Diretório onde gravar mapa, gráficos e relatório")
	flags.StringVar(&runOpts.Charset, "charset", tse.DefaultCharset, "Codificação do arquivo de entrada (utf-8, latin1, ...)")
	flags.StringVar(&runOpts.Bands, "bands", "50,100,200", "Limites superiores das faixas de votos, separados por vírgula")
	flags.IntVar(&runOpts.TopReport, "top-report", 0, "Municípios no ranking do relatório (0 = todos)")
	flags.IntVar(&runOpts.TopChart, "top-chart", 0, "Municípios no gráfico de barras (0 = todos)")
	flags.IntVar(&runOpts.H3Res, "h3-res", -1, "Agrupa a camada de calor em células H3 desta resolução (-1 = desativado)")
	flags.StringVar(&runOpts.Election, "election", "", "Descrição da eleição, exibida nos títulos e no relatório")
	flags.StringVar(&runOpts.Candidate, "candidate", "", "Nome do candidato, exibido nos títulos e no relatório")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&geoOpts.resolvers, "resolver", geocoding.ResolverStatic,
		"Fontes de coordenadas em ordem de consulta: static, nominatim, google (ex.: static,nominatim)")
	persistent.StringVar(&geoOpts.coordsFile, "coords-file", "", "Arquivo YAML com coordenadas adicionais para a tabela estática")
	persistent.DurationVar(&geoOpts.delay, "geocode-delay", geocoding.DefaultDelay,
		fmt.Sprintf("Intervalo entre consultas ao geocodificador (mínimo %s)", geocoding.MinDelay))
	persistent.BoolVar(&geoOpts.traceHTTP, "trace-http", false, "Registra em stderr as requisições HTTP ao geocodificador")
}
