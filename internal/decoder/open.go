package decoder

import (
	"context"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

// Pair is an audio and a video reader over the same file.
type Pair struct {
	Audio *AudioReader
	Video *VideoReader
}

// OpenPair opens both readers of path concurrently. Either both succeed or
// whatever was opened is closed again and the first error is returned.
func OpenPair(ctx context.Context, path string, format media.AudioFormat) (Pair, error) {
	var p Pair

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := NewAudioReader(path, format)
		if err != nil {
			return err
		}
		p.Audio = r
		return ctx.Err()
	})
	g.Go(func() error {
		r, err := NewVideoReader(path)
		if err != nil {
			return err
		}
		p.Video = r
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		p.Close()
		return Pair{}, err
	}
	return p, nil
}

// Close closes whichever readers are open.
func (p Pair) Close() {
	if p.Audio != nil {
		p.Audio.Close()
	}
	if p.Video != nil {
		p.Video.Close()
	}
}

// Info summarizes a file for display.
type Info struct {
	Path string

	Duration mo.Option[float64]

	VideoCodec string
	Width      int
	Height     int
	FrameRate  float64

	AudioCodec  string
	SourceRate  int
	AudioFormat media.AudioFormat
}

// Probe opens path, reads its stream parameters and closes it again.
func Probe(ctx context.Context, path string, format media.AudioFormat) (Info, error) {
	p, err := OpenPair(ctx, path, format)
	if err != nil {
		return Info{}, err
	}
	defer p.Close()

	duration := p.Video.Duration()
	if duration.IsAbsent() {
		duration = p.Audio.Duration()
	}

	return Info{
		Path:        path,
		Duration:    duration,
		VideoCodec:  p.Video.Codec(),
		Width:       p.Video.Width(),
		Height:      p.Video.Height(),
		FrameRate:   p.Video.FrameRate(),
		AudioCodec:  p.Audio.Codec(),
		SourceRate:  p.Audio.SourceRate(),
		AudioFormat: p.Audio.Format(),
	}, nil
}
