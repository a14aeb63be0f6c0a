package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/config"
)

// cli carries state shared by the subcommands
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.New()}

	root := &cobra.Command{
		Use:   "beams",
		Short: "Animated light beam backdrop",
		Long: `beams renders a field of softly pulsing diagonal light beams drifting upward.

It runs full-screen in a terminal, in a desktop window (gui builds) or offline,
recording an animated GIF or a PNG sequence. Settings come from beams.toml,
BEAMS_* environment variables and flags, in increasing precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.v, c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default beams.toml in . or $HOME/.config/beams)")
	pf.String("intensity", "", "beam intensity: subtle, medium, strong")
	pf.String("color-mode", "", "hue source: default, custom")
	pf.StringSlice("colors", nil, "custom palette, comma separated hex colors")
	pf.String("background", "", "container background color")
	pf.Int("minimum-beams", 0, "minimum beam count, scaled by 1.5")
	pf.Float64("blur", 0, "beam blur radius in surface pixels")
	pf.Bool("overlay", true, "animate the translucent overlay")
	pf.Int("fps", 0, "frames per second")
	pf.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	pf.String("backend", "", "surface backend: raster, canvas")
	pf.String("log-file", "", "write JSON logs to this file")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"intensity":     "intensity",
		"color_mode":    "color-mode",
		"custom_colors": "colors",
		"background":    "background",
		"minimum_beams": "minimum-beams",
		"blur":          "blur",
		"overlay":       "overlay",
		"fps":           "fps",
		"seed":          "seed",
		"backend":       "backend",
		"log_file":      "log-file",
		"log_level":     "log-level",
	} {
		_ = c.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newRunCmd(c),
		newWindowCmd(c),
		newExportCmd(c),
		newHueCmd(c),
	)
	return root
}

// fieldOptions returns the random source and logger options shared by every host
func (c *cli) fieldOptions(logger *zap.Logger) []beam.Option {
	seed := c.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return []beam.Option{beam.WithSource(beam.NewSource(seed)), beam.WithLogger(logger)}
}

func (c *cli) beamConfig() (beam.Config, error) {
	bc, err := c.cfg.Beam()
	if err != nil {
		return beam.Config{}, fmt.Errorf("beam config: %w", err)
	}
	return bc, nil
}
