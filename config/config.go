package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/beams/audio"
	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/export"
	"github.com/lixenwraith/beams/render"
)

// EnvPrefix prefixes environment overrides, nested keys use underscores: BEAMS_EXPORT_FRAMES
const EnvPrefix = "BEAMS"

// Surface backends
const (
	BackendRaster = "raster"
	BackendCanvas = "canvas"
)

var (
	ErrInvalidBackend = errors.New("invalid backend")
	ErrInvalidValue   = errors.New("invalid config value")
)

type Config struct {
	Intensity     string   `mapstructure:"intensity"`
	ColorMode     string   `mapstructure:"color_mode"`
	CustomColors  []string `mapstructure:"custom_colors"`
	Background    string   `mapstructure:"background"`
	MinimumBeams  int      `mapstructure:"minimum_beams"`
	Blur          float64  `mapstructure:"blur"`
	ContainerBlur float64  `mapstructure:"container_blur"`
	Overlay       bool     `mapstructure:"overlay"`
	FPS           int      `mapstructure:"fps"`
	Seed          uint64   `mapstructure:"seed"`
	Backend       string   `mapstructure:"backend"`
	Audio         bool     `mapstructure:"audio"`
	Volume        float64  `mapstructure:"volume"`
	LogFile       string   `mapstructure:"log_file"`
	LogLevel      string   `mapstructure:"log_level"`
	Export        Export   `mapstructure:"export"`
}

type Export struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	Frames     int     `mapstructure:"frames"`
	Format     string  `mapstructure:"format"`
	Output     string  `mapstructure:"output"`
	PixelRatio float64 `mapstructure:"pixel_ratio"`
}

// New returns a viper instance carrying every default and the environment binding
func New() *viper.Viper {
	v := viper.New()

	d := beam.DefaultConfig()
	v.SetDefault("intensity", d.Intensity.String())
	v.SetDefault("color_mode", d.ColorMode.String())
	v.SetDefault("custom_colors", d.CustomColors)
	v.SetDefault("background", d.Background)
	v.SetDefault("minimum_beams", d.MinimumBeams)
	v.SetDefault("blur", d.Blur)
	v.SetDefault("container_blur", render.DefaultContainerBlur)
	v.SetDefault("overlay", true)
	v.SetDefault("fps", 60)
	v.SetDefault("seed", 0)
	v.SetDefault("backend", BackendRaster)
	v.SetDefault("audio", false)
	v.SetDefault("volume", audio.DefaultConfig().MasterVolume)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("export.width", 640)
	v.SetDefault("export.height", 360)
	v.SetDefault("export.frames", 120)
	v.SetDefault("export.format", string(export.FormatGIF))
	v.SetDefault("export.output", "beams.gif")
	v.SetDefault("export.pixel_ratio", 1.0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or beams.toml from the working directory or $HOME/.config/beams
// A missing file in the search paths is not an error
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("beams")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "beams"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerations and ranges
func (c *Config) Validate() error {
	if _, err := beam.ParseIntensity(c.Intensity); err != nil {
		return fmt.Errorf("intensity: %w", err)
	}
	if _, err := beam.ParseColorMode(c.ColorMode); err != nil {
		return fmt.Errorf("color_mode: %w", err)
	}
	switch strings.ToLower(c.Backend) {
	case BackendRaster, BackendCanvas:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
	if _, ok := beam.ParseHex(c.Background); !ok {
		return fmt.Errorf("%w: background %q", ErrInvalidValue, c.Background)
	}
	if c.MinimumBeams <= 0 {
		return fmt.Errorf("%w: minimum_beams must be positive, got %d", ErrInvalidValue, c.MinimumBeams)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidValue, c.FPS)
	}
	if c.Blur < 0 || c.ContainerBlur < 0 {
		return fmt.Errorf("%w: blur radii must not be negative", ErrInvalidValue)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	return nil
}

// Beam converts to the field configuration
func (c *Config) Beam() (beam.Config, error) {
	intensity, err := beam.ParseIntensity(c.Intensity)
	if err != nil {
		return beam.Config{}, err
	}
	mode, err := beam.ParseColorMode(c.ColorMode)
	if err != nil {
		return beam.Config{}, err
	}
	return beam.Config{
		Intensity:    intensity,
		ColorMode:    mode,
		CustomColors: append([]string(nil), c.CustomColors...),
		Background:   c.Background,
		MinimumBeams: c.MinimumBeams,
		Blur:         c.Blur,
	}, nil
}

// Backdrop converts to compositing settings
func (c *Config) Backdrop() (render.Backdrop, error) {
	bg, ok := beam.ParseHex(c.Background)
	if !ok {
		return render.Backdrop{}, fmt.Errorf("%w: background %q", ErrInvalidValue, c.Background)
	}
	b := render.DefaultBackdrop()
	b.Background = bg
	b.ContainerBlur = c.ContainerBlur
	b.Overlay = c.Overlay
	b.FPS = c.FPS
	return b, nil
}

// AudioConfig converts to drone settings
func (c *Config) AudioConfig() audio.Config {
	a := audio.DefaultConfig()
	a.Enabled = c.Audio
	a.MasterVolume = c.Volume
	return a
}

// ExportOptions converts to recorder options
func (c *Config) ExportOptions() (export.Options, error) {
	format, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{
		Width:      c.Export.Width,
		Height:     c.Export.Height,
		PixelRatio: c.Export.PixelRatio,
		Frames:     c.Export.Frames,
		FPS:        c.FPS,
		Format:     format,
		Output:     c.Export.Output,
	}, nil
}

// NewSurface builds the configured surface at the given raster unit
func (c *Config) NewSurface(unit float64) (render.Surface, error) {
	backdrop, err := c.Backdrop()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Backend) {
	case BackendCanvas:
		return render.NewCanvas(unit, backdrop), nil
	case BackendRaster:
		return render.NewRaster(unit, backdrop), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
}
