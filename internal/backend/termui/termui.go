// Package termui presents the display in a terminal using half block
// characters, two display rows per text row, and reads the keypad from
// terminal key events.
//
// Terminals report key presses but never releases. A key is therefore held
// for HoldTime after its last press event; the auto repeat of a held host key
// keeps renewing it.
package termui

import (
	"time"

	"chip8vm/internal/display"
	"chip8vm/internal/keypad"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

// HoldTime is how long a key press counts as held.
const HoldTime = 150 * time.Millisecond

const (
	colorOn  = termbox.ColorWhite
	colorOff = termbox.ColorBlack
)

// Terminal is a clock.Backend and keypad.Keypad.
type Terminal struct {
	events chan termbox.Event
	keys   *holder
	quit   bool
}

// New takes over the terminal until Close is called.
func New() (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, errors.Wrap(err, "initialising terminal")
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.OutputNormal)

	t := &Terminal{
		events: make(chan termbox.Event, 64),
		keys:   newHolder(time.Now),
	}

	// termbox only offers a blocking event read
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				close(t.events)
				return
			}
			t.forward(ev)
		}
	}()

	return t, nil
}

// forward queues ev for Poll. Events are dropped while the queue is full so
// the reader always returns to PollEvent, which Close relies on.
func (t *Terminal) forward(ev termbox.Event) bool {
	select {
	case t.events <- ev:
		return true
	default:
		return false
	}
}

// Present implements clock.Backend.
func (t *Terminal) Present(plane *display.Plane) error {
	if err := termbox.Clear(colorOff, colorOff); err != nil {
		return err
	}

	for y := 0; y < plane.Height(); y += 2 {
		for x := 0; x < plane.Width(); x++ {
			fg, bg := colorOff, colorOff
			if plane.Lit(x, y) {
				fg = colorOn
			}
			if plane.Lit(x, y+1) {
				bg = colorOn
			}
			termbox.SetCell(x, y/2, '▀', fg, bg)
		}
	}

	return termbox.Flush()
}

// Poll implements clock.Backend.
func (t *Terminal) Poll() bool {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return false
			}
			t.handle(ev)
		default:
			t.keys.expire()
			return !t.quit
		}
	}
}

func (t *Terminal) handle(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
			t.quit = true
			return
		}
		if code, ok := keypad.Lookup(ev.Ch); ok {
			t.keys.press(code)
		}
	case termbox.EventError:
		t.quit = true
	}
}

func (t *Terminal) IsDown(key uint8) bool  { return t.keys.IsDown(key) }
func (t *Terminal) AnyDown() (uint8, bool) { return t.keys.AnyDown() }

// Close gives the terminal back.
func (t *Terminal) Close() {
	termbox.Interrupt()
	termbox.Close()
}

// holder turns press events into held key state.
type holder struct {
	keypad.State
	now      func() time.Time
	lastSeen [keypad.Keys]time.Time
}

func newHolder(now func() time.Time) *holder {
	return &holder{now: now}
}

func (h *holder) press(code uint8) {
	h.lastSeen[code] = h.now()
	h.Press(code)
}

// expire releases keys without a press event for HoldTime.
func (h *holder) expire() {
	now := h.now()
	for code := range h.lastSeen {
		if h.IsDown(uint8(code)) && now.Sub(h.lastSeen[code]) > HoldTime {
			h.Release(uint8(code))
		}
	}
}
