package widget

import (
	"fyne.io/fyne/v2"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/samber/lo"
)

// Keys maps key presses to commands. Volume keys step from the last volume
// the keys themselves set, so the player state is never read from the UI
// goroutine.
type Keys struct {
	SeekStep   float64
	VolumeStep float64

	volume float64
}

func NewKeys(seekStep, volumeStep, volume float64) *Keys {
	return &Keys{
		SeekStep:   seekStep,
		VolumeStep: volumeStep,
		volume:     lo.Clamp(volume, 0, 1),
	}
}

func (k *Keys) Command(key fyne.KeyName) (ports.Command, bool) {
	switch key {
	case fyne.KeySpace, fyne.KeyP:
		return ports.TogglePause(), true
	case fyne.KeyRight:
		return ports.SeekRelative(k.SeekStep), true
	case fyne.KeyLeft:
		return ports.SeekRelative(-k.SeekStep), true
	case fyne.KeyUp:
		k.volume = lo.Clamp(k.volume+k.VolumeStep, 0, 1)
		return ports.SetVolume(k.volume), true
	case fyne.KeyDown:
		k.volume = lo.Clamp(k.volume-k.VolumeStep, 0, 1)
		return ports.SetVolume(k.volume), true
	case fyne.KeyEscape, fyne.KeyQ:
		return ports.Quit(), true
	}
	return ports.Command{}, false
}
