// Package media holds the data model shared by the media readers, the audio
// sinks and the synchronization engine.
package media

// AudioChunk is one decoded, resampled unit of audio. Samples are 16-bit
// signed little-endian interleaved PCM in the reader's AudioFormat.
// Ownership of Samples moves to the caller of ReadChunk.
type AudioChunk struct {
	Start   float64
	End     float64
	Samples []byte
}

// VideoFrame describes the frame currently held in a FrameBuffer.
type VideoFrame struct {
	PTS    float64
	Pixels []byte
	Width  int
	Height int
}

// AudioFormat is the PCM layout delivered by audio readers and consumed by sinks.
type AudioFormat struct {
	SampleRate int
	Channels   int
}

const BytesPerSample = 2

func (f AudioFormat) BytesPerFrame() int {
	return f.Channels * BytesPerSample
}

func (f AudioFormat) BytesPerSecond() int {
	return f.SampleRate * f.BytesPerFrame()
}

// Seconds returns the play time of n bytes in this format.
func (f AudioFormat) Seconds(n int) float64 {
	bps := f.BytesPerSecond()
	if bps == 0 {
		return 0
	}
	return float64(n) / float64(bps)
}

// FrameSource is anything that decodes the next frame into dst.
type FrameSource interface {
	ReadFrame(dst []byte) (float64, error)
}
