package synchronizer

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func pcm(samples ...int16) []byte {
	b := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}
	return b
}

func samplesOf(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return out
}

func TestApplyGain(t *testing.T) {
	input := []int16{0, 1, -1, 1000, -1001, 32767, -32768, 12345}

	tests := []struct {
		name string
		gain float64
		want []int16
	}{
		{"identity", 1, input},
		{"silence", 0, []int16{0, 0, 0, 0, 0, 0, 0, 0}},
		{"half", 0.5, []int16{0, 1, -1, 500, -501, 16384, -16384, 6173}},
		{"above one clamps to identity", 2, input},
		{"negative clamps to silence", -1, []int16{0, 0, 0, 0, 0, 0, 0, 0}},
		{"nan is silence", math.NaN(), []int16{0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := pcm(input...)
			ApplyGain(b, tt.gain)

			got := samplesOf(b)
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("sample %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestApplyGainIdentityIsByteExact(t *testing.T) {
	b := make([]byte, 4096)
	for i := range b {
		b[i] = byte(i * 7)
	}
	want := append([]byte(nil), b...)

	ApplyGain(b, 1)
	if !bytes.Equal(b, want) {
		t.Fatal("gain 1.0 modified samples")
	}
}

func TestApplyGainStaysInRange(t *testing.T) {
	for _, g := range []float64{0.1, 0.33, 0.999, 1} {
		b := pcm(math.MaxInt16, math.MinInt16, -32767, 32766)
		ApplyGain(b, g)
		for _, s := range samplesOf(b) {
			if int(s) > math.MaxInt16 || int(s) < math.MinInt16 {
				t.Fatalf("gain %v produced %d", g, s)
			}
		}
	}
}

func TestApplyGainKeepsTrailingByte(t *testing.T) {
	b := append(pcm(1000), 0x7f)
	ApplyGain(b, 0)
	if b[2] != 0x7f {
		t.Fatalf("trailing byte = %#x", b[2])
	}
	if samplesOf(b[:2])[0] != 0 {
		t.Fatal("sample not silenced")
	}
}
