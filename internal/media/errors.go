package media

import "errors"

// Error kinds. Producers join one of these with the underlying cause so that
// callers can classify with errors.Is while keeping the original message.
var (
	ErrOpen   = errors.New("open failed")
	ErrDecode = errors.New("decode failed")
	ErrSeek   = errors.New("seek failed")
	ErrSink   = errors.New("sink failed")

	ErrNoAudio = errors.New("no audio stream")
	ErrNoVideo = errors.New("no video stream")
)
