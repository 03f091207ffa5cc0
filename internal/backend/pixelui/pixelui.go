// Package pixelui presents the display in an OpenGL window and reads the
// keypad from its keyboard.
package pixelui

import (
	"image"

	"chip8vm/internal/backend"
	"chip8vm/internal/display"
	"chip8vm/internal/keypad"

	"github.com/gopxl/pixel/v2"
	"github.com/gopxl/pixel/v2/backends/opengl"
	"github.com/pkg/errors"
)

var keyMap = map[pixel.Button]uint8{
	pixel.Key1: 0x1, pixel.Key2: 0x2, pixel.Key3: 0x3, pixel.Key4: 0xC,
	pixel.KeyQ: 0x4, pixel.KeyW: 0x5, pixel.KeyE: 0x6, pixel.KeyR: 0xD,
	pixel.KeyA: 0x7, pixel.KeyS: 0x8, pixel.KeyD: 0x9, pixel.KeyF: 0xE,
	pixel.KeyZ: 0xA, pixel.KeyX: 0x0, pixel.KeyC: 0xB, pixel.KeyV: 0xF,

	pixel.KeyUp:    0x2,
	pixel.KeyLeft:  0x4,
	pixel.KeyRight: 0x6,
	pixel.KeyDown:  0x8,
}

// Run calls fn on the main thread, which OpenGL requires. Every Window must
// be created and used from within fn.
func Run(fn func()) {
	opengl.Run(fn)
}

// Window is a clock.Backend and keypad.Keypad.
type Window struct {
	win   *opengl.Window
	keys  keypad.State
	img   *image.RGBA
	scale float64
}

// New opens a window sized scale times the geometry.
func New(g display.Geometry, scale int) (*Window, error) {
	cfg := opengl.WindowConfig{
		Title:     backend.Title,
		Bounds:    pixel.R(0, 0, float64(g.Width()*scale), float64(g.Height()*scale)),
		VSync:     false,
		Resizable: false,
	}
	win, err := opengl.NewWindow(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "opening window")
	}

	win.SetMatrix(pixel.IM.Scaled(pixel.ZV, 1))
	win.Clear(backend.ColorOff)
	win.Update()

	return &Window{
		win:   win,
		img:   backend.NewImage(g),
		scale: float64(scale),
	}, nil
}

// Present implements clock.Backend.
func (w *Window) Present(plane *display.Plane) error {
	backend.Fill(w.img, plane)

	pic := pixel.PictureDataFromImage(w.img)
	sprite := pixel.NewSprite(pic, pic.Bounds())

	mat := pixel.IM.
		Scaled(pixel.ZV, w.scale).
		Moved(w.win.Bounds().Center())

	w.win.Clear(backend.ColorOff)
	sprite.Draw(w.win, mat)
	w.win.Update()
	return nil
}

// Poll implements clock.Backend.
func (w *Window) Poll() bool {
	w.win.UpdateInput()

	if w.win.Closed() || w.win.Pressed(pixel.KeyEscape) {
		return false
	}

	w.keys.Reset()
	for key, code := range keyMap {
		if w.win.Pressed(key) {
			w.keys.Press(code)
		}
	}
	return true
}

func (w *Window) IsDown(key uint8) bool  { return w.keys.IsDown(key) }
func (w *Window) AnyDown() (uint8, bool) { return w.keys.AnyDown() }

// Close destroys the window.
func (w *Window) Close() {
	w.win.Destroy()
}
