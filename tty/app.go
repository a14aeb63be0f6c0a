package tty

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/beams/beam"
)

// Poster runs work on the frame goroutine
type Poster interface {
	Post(fn func())
}

// App binds a field to a terminal screen and handles key controls
type App struct {
	screen *Screen
	field  *beam.Field
	post   Poster
	log    *zap.Logger
}

// NewApp creates the terminal host; the field must paint through a surface that calls Screen.Draw
func NewApp(screen *Screen, field *beam.Field, post Poster, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{screen: screen, field: field, post: post, log: logger.Named("app")}
	a.updateStatus(field.Config())
	return a
}

// Run reads terminal events until ctx ends or a quit key arrives
// The field is started on entry and stopped on every exit path
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.field.Start()
	defer a.field.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if a.HandleEvent(ev) {
				a.log.Debug("quit requested")
				return nil
			}
		}
	}
}

// HandleEvent applies one terminal event and reports whether the app should quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.post.Post(a.screen.NotifyResize)
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	cfg := a.field.Config()
	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case '1':
		cfg.Intensity = beam.IntensitySubtle
	case '2':
		cfg.Intensity = beam.IntensityMedium
	case '3':
		cfg.Intensity = beam.IntensityStrong
	case 'c', 'C':
		if cfg.ColorMode == beam.ColorModeCustom {
			cfg.ColorMode = beam.ColorModeDefault
		} else {
			cfg.ColorMode = beam.ColorModeCustom
		}
	case 'h', 'H':
		a.screen.ToggleHUD()
		return false
	default:
		return false
	}

	a.updateStatus(cfg)
	a.post.Post(func() { a.field.Configure(cfg) })
	return false
}

func (a *App) updateStatus(cfg beam.Config) {
	a.screen.SetStatus(fmt.Sprintf(" BEAMS  intensity:%s  colors:%s  [1/2/3] intensity  [c] colors  [h] hud  [q] quit ",
		cfg.Intensity, cfg.ColorMode))
}
