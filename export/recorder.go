package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/frame"
	"github.com/lixenwraith/beams/render"
)

// Format selects the output encoding
type Format string

const (
	FormatGIF Format = "gif"
	FormatPNG Format = "png"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrInvalidSize   = errors.New("export size must be positive")
	ErrNoFrames      = errors.New("export needs at least one frame")
)

// ParseFormat accepts gif or png, case-insensitive
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatGIF, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options describes one recording
type Options struct {
	Width, Height int // layout units
	PixelRatio    float64
	Frames        int
	FPS           int
	Format        Format
	Output        string // gif file, or directory for png frames
}

// Recorder steps a field deterministically and encodes its frames
type Recorder struct {
	opts    Options
	field   *beam.Field
	sched   *frame.Manual
	view    *frame.Static
	surface render.Surface
	log     *zap.Logger
}

// NewRecorder builds a field over a static viewport driven by a manual scheduler
func NewRecorder(cfg beam.Config, surface render.Surface, opts Options, logger *zap.Logger, fieldOpts ...beam.Option) (*Recorder, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.FPS <= 0 {
		opts.FPS = frame.DefaultFPS
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Recorder{
		opts:    opts,
		sched:   frame.NewManual(),
		view:    frame.NewStatic(opts.Width, opts.Height, opts.PixelRatio),
		surface: surface,
		log:     logger.Named("export"),
	}
	opt := append([]beam.Option{beam.WithLogger(logger), beam.WithSurface(surface)}, fieldOpts...)
	r.field = beam.New(cfg, r.sched, r.view, opt...)
	return r, nil
}

// Field exposes the recorded field
func (r *Recorder) Field() *beam.Field { return r.field }

// Record runs the configured number of frames, handing each composited frame to fn
// The image passed to fn is reused by the surface after fn returns
func (r *Recorder) Record(ctx context.Context, fn func(i int, img *image.RGBA) error) error {
	r.field.Start()
	defer r.field.Stop()

	for i := 0; i < r.opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.sched.Advance() == 0 {
			return fmt.Errorf("frame %d: no tick scheduled", i)
		}
		if err := fn(i, r.surface.Image()); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// Save writes the recording to Options.Output
func (r *Recorder) Save(ctx context.Context) error {
	switch r.opts.Format {
	case FormatPNG:
		_, err := r.WritePNGs(ctx, r.opts.Output)
		return err
	default:
		if err := os.MkdirAll(filepath.Dir(r.opts.Output), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		f, err := os.Create(r.opts.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		if err := r.WriteGIF(ctx, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

// WriteGIF encodes all frames as an endlessly looping animation
func (r *Recorder) WriteGIF(ctx context.Context, w io.Writer) error {
	anim := &gif.GIF{}
	delay := gifDelay(r.opts.FPS)

	err := r.Record(ctx, func(_ int, img *image.RGBA) error {
		p := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, img.Bounds(), img, image.Point{})
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
		return nil
	})
	if err != nil {
		return err
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	r.log.Info("gif written", zap.Int("frames", len(anim.Image)), zap.Int("delay_cs", delay))
	return nil
}

// WritePNGs writes frame_0000.png onward into dir and returns the paths
func (r *Recorder) WritePNGs(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	err := r.Record(ctx, func(i int, img *image.RGBA) error {
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := writePNG(path, img); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, err
	}

	r.log.Info("png frames written", zap.Int("frames", len(paths)), zap.String("dir", dir))
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// gifDelay converts fps into hundredths of a second, minimum 2
func gifDelay(fps int) int {
	if fps <= 0 {
		fps = frame.DefaultFPS
	}
	return max(100/fps, 2)
}
