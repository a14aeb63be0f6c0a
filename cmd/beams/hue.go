package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/beams/beam"
)

func newHueCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "hue [hex...]",
		Short: "Print the hue and paint color of each palette entry",
		Long: `Print the hue of each palette color and the color a beam of that hue paints with.

Without arguments the configured custom palette is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			palette := args
			if len(palette) == 0 {
				palette = c.cfg.CustomColors
			}
			if len(palette) == 0 {
				return fmt.Errorf("no colors given and the custom palette is empty")
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("COLOR", "HUE", "SLOT", "PAINT")
			for _, hex := range palette {
				hue := beam.HexToHue(hex)
				slot := beam.PaletteIndex(hue, len(palette))
				if err := table.Append(hex, fmt.Sprintf("%.2f", hue), fmt.Sprintf("%d", slot), beam.Substitute(palette[slot])); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
