//go:build !gui

package window

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunUnavailableWithoutGUI(t *testing.T) {
	assert.ErrorIs(t, Run(context.Background(), Options{}), ErrUnavailable)
}
