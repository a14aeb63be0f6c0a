package tty

import (
	"fmt"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/frame"
)

// Cell extent in viewport units; one cell shows two raster pixels stacked
const (
	CellWidth  = 8
	CellHeight = 16

	// RasterUnit maps viewport units to half-block pixels
	RasterUnit = CellWidth
)

const halfBlock = '▀'

var (
	hudFg = tcell.NewRGBColor(180, 180, 180)
	hudBg = tcell.NewRGBColor(12, 12, 20)
)

// Screen presents composited frames on a terminal and acts as the field viewport
type Screen struct {
	screen    tcell.Screen
	log       *zap.Logger
	listeners frame.Listeners

	mu      sync.Mutex
	status  string
	showHUD bool
}

var _ beam.Viewport = (*Screen)(nil)

// Open initializes the terminal
func Open(logger *zap.Logger) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewScreen(s, logger), nil
}

// NewScreen wraps an initialized tcell screen
func NewScreen(s tcell.Screen, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s, log: logger.Named("tty"), showHUD: true}
}

// Size returns the terminal extent in viewport units
func (s *Screen) Size() (int, int) {
	cols, rows := s.screen.Size()
	return cols * CellWidth, rows * CellHeight
}

func (s *Screen) PixelRatio() float64 { return 1 }

func (s *Screen) OnResize(fn func()) func() { return s.listeners.Add(fn) }

// NotifyResize runs the resize listeners on the calling goroutine
func (s *Screen) NotifyResize() {
	s.screen.Sync()
	cols, rows := s.screen.Size()
	s.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
	s.listeners.Emit()
}

// SetStatus replaces the HUD text
func (s *Screen) SetStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
}

// ToggleHUD flips HUD visibility and returns the new state
func (s *Screen) ToggleHUD() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showHUD = !s.showHUD
	return s.showHUD
}

// Draw paints img with half blocks, pixel rows 2y and 2y+1 share cell row y
func (s *Screen) Draw(img *image.RGBA) {
	cols, rows := s.screen.Size()

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := img.RGBAAt(x, 2*y)
			bottom := img.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}

	s.mu.Lock()
	status, show := s.status, s.showHUD
	s.mu.Unlock()
	if show && rows > 0 {
		s.drawText(0, rows-1, cols, status)
	}

	s.screen.Show()
}

func (s *Screen) drawText(x, y, width int, text string) {
	style := tcell.StyleDefault.Foreground(hudFg).Background(hudBg)
	for _, r := range text {
		if x >= width {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// PollEvent blocks for the next terminal event, nil after Fini
func (s *Screen) PollEvent() tcell.Event { return s.screen.PollEvent() }

// Fini restores the terminal
func (s *Screen) Fini() { s.screen.Fini() }
