package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/beams/audio"
	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/frame"
	"github.com/lixenwraith/beams/tty"
)

func newRunCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate the beams full-screen in the terminal",
		Long: `Animate the beams full-screen in the terminal using half-block cells.

Keys: 1/2/3 intensity, c toggle color mode, h toggle HUD, q/Esc/Ctrl-C quit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTerminal(cmd.Context())
		},
	}
	cmd.Flags().Bool("audio", false, "play an ambient drone following beam brightness")
	_ = c.v.BindPFlag("audio", cmd.Flags().Lookup("audio"))
	return cmd
}

func (c *cli) runTerminal(ctx context.Context) error {
	logger, err := newLogger(c.cfg.LogFile, c.cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	bc, err := c.beamConfig()
	if err != nil {
		return err
	}
	surface, err := c.cfg.NewSurface(tty.RasterUnit)
	if err != nil {
		return err
	}

	screen, err := tty.Open(logger)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	// Panic recovery runs after Fini so the trace lands on a restored terminal
	defer func() {
		if r := recover(); r != nil {
			crashed(r)
		}
	}()
	defer screen.Fini()

	surface.SetOnPresent(screen.Draw)

	loop := frame.NewLoop(c.cfg.FPS, logger)
	loop.SetCrashHandler(func(r any) {
		screen.Fini()
		crashed(r)
	})
	field := beam.New(bc, loop, screen, append(c.fieldOptions(logger), beam.WithSurface(surface))...)

	loop.Start()
	defer loop.Stop()

	if c.cfg.Audio {
		engine := audio.NewEngine(c.cfg.AudioConfig(), logger)
		if err := engine.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			defer engine.Cleanup()
			followCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go engine.Follow(followCtx, field, 100*time.Millisecond)
		}
	}

	return tty.NewApp(screen, field, loop, logger).Run(ctx)
}

// crashed prints the panic and stack to stderr and exits
func crashed(r any) {
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mBEAMS CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
