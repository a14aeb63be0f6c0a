package export

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/beams/beam"
	"github.com/lixenwraith/beams/render"
)

func newTestRecorder(t *testing.T, opts Options) *Recorder {
	t.Helper()
	surface := render.NewRaster(4, render.DefaultBackdrop())
	r, err := NewRecorder(beam.DefaultConfig(), surface, opts, nil, beam.WithSource(beam.NewSource(11)))
	require.NoError(t, err)
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"gif", FormatGIF, false},
		{" PNG ", FormatPNG, false},
		{"webm", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRecorderValidates(t *testing.T) {
	surface := render.NewRaster(1, render.DefaultBackdrop())

	_, err := NewRecorder(beam.DefaultConfig(), surface, Options{Width: 0, Height: 10, Frames: 1, Format: FormatGIF}, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewRecorder(beam.DefaultConfig(), surface, Options{Width: 10, Height: 10, Format: FormatGIF}, nil)
	assert.ErrorIs(t, err, ErrNoFrames)

	_, err = NewRecorder(beam.DefaultConfig(), surface, Options{Width: 10, Height: 10, Frames: 1, Format: "bmp"}, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRecordStepsEveryFrameAndReleases(t *testing.T) {
	r := newTestRecorder(t, Options{Width: 80, Height: 40, PixelRatio: 2, Frames: 5, Format: FormatGIF})

	var sizes []image.Rectangle
	err := r.Record(context.Background(), func(i int, img *image.RGBA) error {
		assert.Equal(t, len(sizes), i)
		sizes = append(sizes, img.Bounds())
		return nil
	})
	require.NoError(t, err)

	require.Len(t, sizes, 5)
	assert.Equal(t, image.Rect(0, 0, 40, 20), sizes[0], "80x40 at ratio 2 over unit 4")
	assert.False(t, r.Field().Running())
	assert.Zero(t, r.sched.Pending())
	assert.Zero(t, r.view.Listeners())
}

func TestRecordHonorsContext(t *testing.T) {
	r := newTestRecorder(t, Options{Width: 40, Height: 40, Frames: 10, Format: FormatGIF})

	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	err := r.Record(ctx, func(i int, _ *image.RGBA) error {
		n++
		if i == 2 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, n)
	assert.False(t, r.Field().Running())
}

func TestWriteGIF(t *testing.T) {
	r := newTestRecorder(t, Options{Width: 64, Height: 48, Frames: 4, FPS: 25, Format: FormatGIF})

	var buf bytes.Buffer
	require.NoError(t, r.WriteGIF(context.Background(), &buf))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)
	assert.Equal(t, []int{4, 4, 4, 4}, anim.Delay)
	assert.Equal(t, 16, anim.Image[0].Bounds().Dx())
	assert.Equal(t, 12, anim.Image[0].Bounds().Dy())
}

func TestSavePNGSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	r := newTestRecorder(t, Options{Width: 32, Height: 32, Frames: 3, Format: FormatPNG, Output: dir})

	require.NoError(t, r.Save(context.Background()))

	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	}
}

func TestSaveGIFFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "beams.gif")
	r := newTestRecorder(t, Options{Width: 32, Height: 32, Frames: 2, Format: FormatGIF, Output: out})

	require.NoError(t, r.Save(context.Background()))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGIFDelay(t *testing.T) {
	assert.Equal(t, 4, gifDelay(25))
	assert.Equal(t, 2, gifDelay(60))
	assert.Equal(t, 10, gifDelay(10))
	assert.Equal(t, 2, gifDelay(0))
}
