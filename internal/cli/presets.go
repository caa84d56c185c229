package cli

import (
	"fmt"
	"text/tabwriter"

	"boltgen/internal/calc/presets"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the named parameter sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := presets.Load(presetsFile)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLABEL\tHEAD D\tHEAD T\tSHANK D\tSHANK L\tELEM\t")
		for _, p := range catalog.Presets {
			mark := ""
			if p.Name == catalog.Default {
				mark = " *"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%g\t%g\t%g\t%g\t%g\t\n", p.Name, mark, p.Label,
				p.HeadDiameter, p.HeadThickness, p.ShankDiameter, p.ShankLength, p.ElementSize)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
