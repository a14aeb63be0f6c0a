package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/beams/window"
)

func newWindowCmd(c *cli) *cobra.Command {
	var width, height int
	var unit float64

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Animate the beams in a desktop window (gui builds)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(c.cfg.LogFile, c.cfg.LogLevel, true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			bc, err := c.beamConfig()
			if err != nil {
				return err
			}
			surface, err := c.cfg.NewSurface(unit)
			if err != nil {
				return err
			}

			return window.Run(cmd.Context(), window.Options{
				Title:        "beams",
				Width:        width,
				Height:       height,
				Config:       bc,
				Surface:      surface,
				Logger:       logger,
				FieldOptions: c.fieldOptions(logger),
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 1280, "window width")
	cmd.Flags().IntVar(&height, "height", 720, "window height")
	cmd.Flags().Float64Var(&unit, "unit", 2, "device pixels per rendered pixel")
	return cmd
}
