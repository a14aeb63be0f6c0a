package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/beams/export"
)

func newExportCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Record the animation to an animated GIF or a PNG sequence",
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
			opts, err := c.cfg.ExportOptions()
			if err != nil {
				return err
			}
			surface, err := c.cfg.NewSurface(1)
			if err != nil {
				return err
			}

			rec, err := export.NewRecorder(bc, surface, opts, logger, c.fieldOptions(logger)...)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := rec.Save(cmd.Context()); err != nil {
				return err
			}
			logger.Info("export finished",
				zap.String("output", opts.Output),
				zap.Int("frames", opts.Frames),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		},
	}

	f := cmd.Flags()
	f.Int("width", 0, "layout width")
	f.Int("height", 0, "layout height")
	f.Float64("pixel-ratio", 0, "surface pixels per layout unit")
	f.Int("frames", 0, "frames to record")
	f.String("format", "", "output format: gif, png")
	f.StringP("output", "o", "", "gif file or png directory")
	for key, flag := range map[string]string{
		"export.width":       "width",
		"export.height":      "height",
		"export.pixel_ratio": "pixel-ratio",
		"export.frames":      "frames",
		"export.format":      "format",
		"export.output":      "output",
	} {
		_ = c.v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}
