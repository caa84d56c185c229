// Package cli implements the boltgen command line.
package cli

import (
	"fmt"
	"os"

	"boltgen/internal/version"

	"github.com/spf13/cobra"
)

var presetsFile string

var rootCmd = &cobra.Command{
	Use:   "boltgen",
	Short: "Parametric bolt mesh generator",
	Long: `boltgen - parametric bolt mesh generator

Builds a quadrilateral surface mesh of a bolt (cylindrical head on a
cylindrical shank) from five dimensions and writes it as an Abaqus
input file, JSON, a PNG projection, a PDF report or an Excel workbook.`,
	SilenceUsage: true,
	Version:      version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&presetsFile, "presets-file", "", "YAML preset catalog (default: builtin)")
}
