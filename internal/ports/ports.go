// Package ports defines the collaborators the synchronization engine drives:
// media readers, the audio sink, the renderer and the input source.
package ports

import (
	"io"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/samber/mo"
)

// AudioReader yields decoded audio. ReadChunk returns io.EOF at end of
// stream and an error joined with media.ErrDecode on decode failure.
type AudioReader interface {
	io.Closer

	ReadChunk() (media.AudioChunk, error)

	// Seek is best effort and may land before the target.
	Seek(seconds float64) error

	Duration() mo.Option[float64]
	Format() media.AudioFormat
}

// VideoReader decodes frames into a caller-owned RGBA buffer of
// Width()*Height()*4 bytes.
type VideoReader interface {
	io.Closer
	media.FrameSource

	// Seek is best effort and usually lands on the keyframe at or before
	// the target.
	Seek(seconds float64) error

	Duration() mo.Option[float64]
	Width() int
	Height() int
}
