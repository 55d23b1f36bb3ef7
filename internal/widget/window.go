// Package widget shows decoded frames. Window is the fyne frontend; Headless
// stands in for it when nothing should be drawn.
package widget

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"github.com/GoldenFealla/SyncPlayerGo/internal/input"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/sirupsen/logrus"
)

// Window is a fyne window showing one video. Upload, Draw and Present are
// called from the player goroutine; the window itself lives on the fyne main
// loop started by Run.
type Window struct {
	app   fyne.App
	win   fyne.Window
	image *canvas.Image
	log   *logrus.Entry

	// back is written by Upload on the player goroutine. front is only
	// touched on the fyne goroutine.
	back  *image.RGBA
	front *image.RGBA
	dirty bool
}

func NewWindow(title string, width, height int, queue *input.Queue, keys *Keys) *Window {
	a := app.NewWithID("io.github.goldenfealla.syncplayer")

	w := &Window{
		app:   a,
		win:   a.NewWindow(title),
		back:  image.NewRGBA(image.Rect(0, 0, 1, 1)),
		front: image.NewRGBA(image.Rect(0, 0, 1, 1)),
		log:   logrus.WithField("component", "window"),
	}

	w.image = canvas.NewImageFromImage(w.front)
	w.image.FillMode = canvas.ImageFillContain
	w.image.ScaleMode = canvas.ImageScaleFastest

	w.win.SetContent(w.image)
	w.win.Resize(fyne.NewSize(float32(width), float32(height)))
	w.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if cmd, ok := keys.Command(ev.Name); ok {
			queue.Push(cmd)
		}
	})
	w.win.SetCloseIntercept(func() {
		queue.Push(ports.Quit())
	})

	return w
}

// Upload copies pixels into the back buffer.
func (w *Window) Upload(pixels []byte, width, height int) {
	if w.back.Rect.Dx() != width || w.back.Rect.Dy() != height {
		w.back = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	copy(w.back.Pix, pixels)
	w.dirty = true
}

func (w *Window) Draw() {}

// Present hands the back buffer to the window and waits until it is shown.
func (w *Window) Present() {
	dirty := w.dirty
	w.dirty = false

	fyne.DoAndWait(func() {
		if dirty {
			if w.front.Rect != w.back.Rect {
				w.front = image.NewRGBA(w.back.Rect)
				w.image.Image = w.front
			}
			copy(w.front.Pix, w.back.Pix)
		}
		w.image.Refresh()
	})
}

// Run shows the window and blocks on the fyne main loop until Quit.
func (w *Window) Run() {
	w.win.ShowAndRun()
}

// Quit ends Run. It is safe from any goroutine.
func (w *Window) Quit() {
	fyne.Do(w.app.Quit)
}

var _ ports.Renderer = (*Window)(nil)
