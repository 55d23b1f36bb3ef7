package media

import "fmt"

// Rational is a stream time base.
type Rational struct {
	Num int
	Den int
}

// Seconds converts a raw stream timestamp to seconds.
func (r Rational) Seconds(pts int64) float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(pts) * float64(r.Num) / float64(r.Den)
}

// Ticks converts seconds back to stream ticks, rounding to nearest.
func (r Rational) Ticks(seconds float64) int64 {
	if r.Num == 0 {
		return 0
	}
	v := seconds * float64(r.Den) / float64(r.Num)
	if v < 0 {
		return int64(v - 0.5)
	}
	return int64(v + 0.5)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Basis is the pts treated as time zero for the current playback segment.
// It is set from the first sample seen after open or a seek and cleared only
// by Reset.
type Basis struct {
	value float64
	set   bool
}

// Set records the basis. Later calls are ignored until Reset.
func (b *Basis) Set(pts float64) bool {
	if b.set {
		return false
	}
	b.value = pts
	b.set = true
	return true
}

func (b *Basis) IsSet() bool {
	return b.set
}

func (b *Basis) Value() float64 {
	return b.value
}

func (b *Basis) Reset() {
	*b = Basis{}
}

// Rebase returns abs relative to the basis. It panics if no basis has been set.
func (b *Basis) Rebase(abs float64) float64 {
	if !b.set {
		panic("media: rebase before basis was set")
	}
	return abs - b.value
}
