// Package keypad defines the 16 key hexadecimal keypad that programs read.
package keypad

// Keys is the number of keys on the keypad.
const Keys = 16

// Keypad reports key state to the interpreter.
type Keypad interface {
	// IsDown reports whether key is held. Keys above 0xF are never down.
	IsDown(key uint8) bool
	// AnyDown returns a held key, if any.
	AnyDown() (uint8, bool)
}

// State is a Keypad backed by a plain array. Backends write to it as host
// key events arrive.
type State struct {
	down [Keys]bool
}

// IsDown implements Keypad.
func (s *State) IsDown(key uint8) bool {
	if key >= Keys {
		return false
	}
	return s.down[key]
}

// AnyDown implements Keypad. The lowest held key wins.
func (s *State) AnyDown() (uint8, bool) {
	for k, down := range s.down {
		if down {
			return uint8(k), true
		}
	}
	return 0, false
}

// Set changes the state of a single key.
func (s *State) Set(key uint8, down bool) {
	if key < Keys {
		s.down[key] = down
	}
}

func (s *State) Press(key uint8)   { s.Set(key, true) }
func (s *State) Release(key uint8) { s.Set(key, false) }

// Reset releases every key.
func (s *State) Reset() {
	s.down = [Keys]bool{}
}

// Layout maps the conventional QWERTY block onto the keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var Layout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Lookup returns the keypad code for a host key rune, ignoring case.
func Lookup(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	k, ok := Layout[r]
	return k, ok
}
