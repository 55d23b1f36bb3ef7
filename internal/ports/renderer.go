package ports

// Renderer presents RGBA frames. Upload must finish reading pixels before it
// returns because the buffer is overwritten by the next frame read.
type Renderer interface {
	Upload(pixels []byte, width, height int)
	Draw()
	Present()
}
