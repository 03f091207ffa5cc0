// Package sdlui presents the display with an SDL2 renderer and reads the
// keypad from the SDL keyboard state.
package sdlui

import (
	"runtime"

	"chip8vm/internal/backend"
	"chip8vm/internal/display"
	"chip8vm/internal/keypad"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

var keyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1, sdl.SCANCODE_2: 0x2, sdl.SCANCODE_3: 0x3, sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4, sdl.SCANCODE_W: 0x5, sdl.SCANCODE_E: 0x6, sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7, sdl.SCANCODE_S: 0x8, sdl.SCANCODE_D: 0x9, sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA, sdl.SCANCODE_X: 0x0, sdl.SCANCODE_C: 0xB, sdl.SCANCODE_V: 0xF,

	sdl.SCANCODE_UP:    0x2,
	sdl.SCANCODE_LEFT:  0x4,
	sdl.SCANCODE_RIGHT: 0x6,
	sdl.SCANCODE_DOWN:  0x8,
}

// Window is a clock.Backend and keypad.Keypad.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	keys     keypad.State
	rects    []sdl.Rect
	quit     bool
}

// New opens a window sized scale times the geometry. SDL must be driven from
// the thread that initialised it so the calling goroutine is locked to its
// thread.
func New(g display.Geometry, scale int) (*Window, error) {
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize SDL2")
	}

	window, err := sdl.CreateWindow(backend.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(g.Width()*scale), int32(g.Height()*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "failed to create window")
	}

	w := &Window{window: window}

	w.renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		w.Close()
		return nil, errors.Wrap(err, "failed to create renderer")
	}

	// one logical pixel per display cell, SDL does the scaling
	if err := w.renderer.SetLogicalSize(int32(g.Width()), int32(g.Height())); err != nil {
		w.Close()
		return nil, errors.Wrap(err, "failed to set logical size")
	}

	return w, nil
}

// Present implements clock.Backend.
func (w *Window) Present(plane *display.Plane) error {
	off, on := backend.ColorOff, backend.ColorOn

	if err := w.renderer.SetDrawColor(off.R, off.G, off.B, off.A); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}

	w.rects = w.rects[:0]
	for y := 0; y < plane.Height(); y++ {
		for x := 0; x < plane.Width(); x++ {
			if plane.Lit(x, y) {
				w.rects = append(w.rects, sdl.Rect{X: int32(x), Y: int32(y), W: 1, H: 1})
			}
		}
	}

	if len(w.rects) > 0 {
		if err := w.renderer.SetDrawColor(on.R, on.G, on.B, on.A); err != nil {
			return err
		}
		if err := w.renderer.FillRects(w.rects); err != nil {
			return err
		}
	}

	w.renderer.Present()
	return nil
}

// Poll implements clock.Backend.
func (w *Window) Poll() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			w.quit = true
		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				w.quit = true
			}
		}
	}

	state := sdl.GetKeyboardState()
	w.keys.Reset()
	for scancode, code := range keyMap {
		if state[scancode] != 0 {
			w.keys.Press(code)
		}
	}

	return !w.quit
}

func (w *Window) IsDown(key uint8) bool  { return w.keys.IsDown(key) }
func (w *Window) AnyDown() (uint8, bool) { return w.keys.AnyDown() }

// Close releases the renderer, the window and SDL itself.
func (w *Window) Close() {
	if w.renderer != nil {
		_ = w.renderer.Destroy()
		w.renderer = nil
	}
	if w.window != nil {
		_ = w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
