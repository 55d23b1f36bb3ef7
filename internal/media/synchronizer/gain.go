package synchronizer

import (
	"encoding/binary"
	"math"
)

// ApplyGain scales 16-bit signed little-endian PCM in place. gain is clamped
// to [0, 1]; 1 leaves samples untouched and 0 produces silence. A trailing
// odd byte is left as is.
func ApplyGain(samples []byte, gain float64) {
	g := clampGain(gain)
	if g == 1 {
		return
	}

	for i := 0; i+1 < len(samples); i += 2 {
		s := int16(binary.LittleEndian.Uint16(samples[i:]))
		v := math.Round(float64(s) * g)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(samples[i:], uint16(int16(v)))
	}
}
