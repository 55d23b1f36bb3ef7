package widget

import (
	"hash/crc32"

	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
)

// Headless accepts frames without showing them. It keeps a running checksum
// of everything uploaded so offline runs can be compared.
type Headless struct {
	Uploads  int
	Presents int
	Checksum uint32
}

func (h *Headless) Upload(pixels []byte, width, height int) {
	h.Uploads++
	h.Checksum = crc32.Update(h.Checksum, crc32.IEEETable, pixels)
}

func (h *Headless) Draw() {}

func (h *Headless) Present() {
	h.Presents++
}

var _ ports.Renderer = (*Headless)(nil)
