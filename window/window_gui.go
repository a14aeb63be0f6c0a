//go:build gui

package window

import (
	"context"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/frame"
	"github.com/lixenwraith/beams/render"
)

var watchedKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1',
	ebiten.KeyDigit2: '2',
	ebiten.KeyDigit3: '3',
	ebiten.KeyC:      'c',
	ebiten.KeyQ:      'q',
	ebiten.KeyEscape: 'q',
}

// host is the ebiten game; it schedules frames from Update and is the field viewport
type host struct {
	ctx       context.Context
	sched     *frame.Manual
	listeners frame.Listeners
	field     *beam.Field
	surface   render.Surface
	log       *zap.Logger

	width, height int
	ratio         float64
	texture       *ebiten.Image
}

var (
	_ ebiten.Game   = (*host)(nil)
	_ beam.Viewport = (*host)(nil)
)

func (h *host) Size() (int, int)          { return h.width, h.height }
func (h *host) PixelRatio() float64       { return h.ratio }
func (h *host) OnResize(fn func()) func() { return h.listeners.Add(fn) }

func (h *host) Update() error {
	if h.ctx.Err() != nil {
		return ebiten.Termination
	}

	for key, r := range watchedKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		cfg, act := keyAction(h.field.Config(), r)
		switch act {
		case actionQuit:
			return ebiten.Termination
		case actionConfigure:
			h.field.Configure(cfg)
		}
	}

	h.sched.Advance()
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	img := h.surface.Image()
	b := img.Bounds()
	if b.Empty() {
		return
	}

	if h.texture == nil || h.texture.Bounds().Size() != b.Size() {
		if h.texture != nil {
			h.texture.Deallocate()
		}
		h.texture = ebiten.NewImage(b.Dx(), b.Dy())
	}
	h.texture.WritePixels(img.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(sw)/float64(b.Dx()), float64(sh)/float64(b.Dy()))
	screen.DrawImage(h.texture, op)
}

// Layout tracks the logical size and renders at device resolution
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()
	if ratio <= 0 {
		ratio = 1
	}
	if outsideWidth != h.width || outsideHeight != h.height || ratio != h.ratio {
		h.width, h.height, h.ratio = outsideWidth, outsideHeight, ratio
		h.log.Debug("window resized", zap.Int("width", h.width), zap.Int("height", h.height), zap.Float64("ratio", ratio))
		h.listeners.Emit()
	}
	return int(math.Round(float64(outsideWidth) * ratio)), int(math.Round(float64(outsideHeight) * ratio))
}

// Run opens the window and animates the field until the window closes, q is pressed or ctx ends
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	h := &host{
		ctx:     ctx,
		sched:   frame.NewManual(),
		surface: opts.Surface,
		log:     opts.Logger.Named("window"),
		width:   opts.Width,
		height:  opts.Height,
		ratio:   1,
	}
	fieldOpts := append([]beam.Option{beam.WithLogger(opts.Logger), beam.WithSurface(opts.Surface)}, opts.FieldOptions...)
	h.field = beam.New(opts.Config, h.sched, h, fieldOpts...)

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	h.field.Start()
	defer h.field.Stop()

	h.log.Debug("window opened", zap.String("title", opts.Title))
	return ebiten.RunGame(h)
}
