//go:build !gui

package window

import (
	"context"

	"go.uber.org/zap"
)

// Run reports ErrUnavailable, the desktop host needs the gui build tag
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	opts.Logger.Named("window").Warn("window host disabled", zap.String("title", opts.Title))
	return ErrUnavailable
}
