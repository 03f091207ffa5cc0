// Package memory implements the 4 KiB address space of the interpreter.
package memory

import (
	"github.com/pkg/errors"
)

const (
	Size           = 0x1000
	FontAddress    = 0x050
	FontSize       = 80
	GlyphSize      = 5
	ProgramAddress = 0x200

	// MaxProgramSize is the largest program that fits between the program
	// origin and the end of memory.
	MaxProgramSize = Size - ProgramAddress
)

var (
	ErrOutOfRange      = errors.New("memory access out of range")
	ErrProgramTooLarge = errors.New("program too large")
)

var font = [FontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte addressable RAM.
type Memory struct {
	data [Size]byte
}

// New returns zeroed memory.
func New() *Memory {
	return &Memory{}
}

// LoadFont copies the hexadecimal glyph table to FontAddress.
func (m *Memory) LoadFont() {
	copy(m.data[FontAddress:FontAddress+FontSize], font[:])
}

// GlyphAddress returns the address of the glyph for the low nibble of digit.
func GlyphAddress(digit uint8) uint16 {
	return FontAddress + uint16(digit&0x0F)*GlyphSize
}

// LoadProgram copies program to ProgramAddress. Nothing is written if the
// program does not fit.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes, %d available", len(program), MaxProgramSize)
	}
	copy(m.data[ProgramAddress:], program)
	return nil
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) (byte, error) {
	if int(addr) >= Size {
		return 0, errors.Wrapf(ErrOutOfRange, "read 0x%04X", addr)
	}
	return m.data[addr], nil
}

// Fetch returns the big-endian instruction word at addr.
func (m *Memory) Fetch(addr uint16) (uint16, error) {
	if int(addr)+2 > Size {
		return 0, errors.Wrapf(ErrOutOfRange, "fetch 0x%04X", addr)
	}
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1]), nil
}

// WriteBlock copies block to memory starting at addr.
func (m *Memory) WriteBlock(addr uint16, block []byte) error {
	if int(addr)+len(block) > Size {
		return errors.Wrapf(ErrOutOfRange, "write %d bytes at 0x%04X", len(block), addr)
	}
	copy(m.data[addr:], block)
	return nil
}

// ReadBlock returns a copy of length bytes starting at addr.
func (m *Memory) ReadBlock(addr uint16, length int) ([]byte, error) {
	if length < 0 || int(addr)+length > Size {
		return nil, errors.Wrapf(ErrOutOfRange, "read %d bytes at 0x%04X", length, addr)
	}
	block := make([]byte, length)
	copy(block, m.data[addr:])
	return block, nil
}
