// Package chip8 implements the fetch, decode and execute engine.
//
// VF doubles as the flag register. Every instruction that produces a carry,
// borrow, shifted out bit or collision writes VF after its result, so the
// flag always wins when VF is also the destination.
package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"chip8vm/internal/display"
	"chip8vm/internal/keypad"
	"chip8vm/internal/memory"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// StackDepth is the number of nested subroutine calls supported.
const StackDepth = 16

// MaxIndex is the highest address the index register can refer to.
const MaxIndex = 0xFFF

// ErrStackOverflow is the cause of a fault on a call with a full stack.
var ErrStackOverflow = errors.New("call stack overflow")

// Config holds the construction options of the engine.
type Config struct {
	// ShiftInPlace makes 8XY6 and 8XYE shift VX directly. When false VY is
	// copied into VX before shifting.
	ShiftInPlace bool

	// Rand is the source for CXNN. A time seeded source is used when nil.
	Rand *rand.Rand

	Logger *log.Logger

	// Trace logs every executed instruction at debug level.
	Trace bool
}

type Chip8 struct {
	mem *memory.Memory

	// General Purpose 8-Bit Registers (V0-VF)
	Vx [16]uint8

	// Memory Address Store Register
	I uint16

	// Delay Timer Register
	DT uint8

	// Sound Timer Register
	ST uint8

	// Program Counter
	PC uint16

	// Stack Pointer
	SP uint8

	Stack [StackDepth]uint16

	shiftInPlace bool
	rand         *rand.Rand

	plane *display.Plane
	keys  keypad.Keypad

	logger *log.Logger
	trace  bool
}

// outcome tells Step what to do with the program counter after execution.
type outcome int

const (
	advance outcome = iota
	// retry leaves the program counter on the instruction just executed so
	// it runs again on the next step.
	retry
)

// Fault is a fatal runtime error. It halts the interpreter.
type Fault struct {
	Address uint16
	Opcode  uint16
	// Fetching is set when the instruction itself could not be read.
	Fetching bool
	Err      error
}

func (f *Fault) Error() string {
	if f.Fetching {
		return fmt.Sprintf("fault at 0x%03X fetching instruction: %v", f.Address, f.Err)
	}
	return fmt.Sprintf("fault at 0x%03X executing %04X (%s): %v", f.Address, f.Opcode, Mnemonic(f.Opcode), f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New returns an engine with the font loaded and the program counter at the
// program origin.
func New(cfg Config, plane *display.Plane, keys keypad.Keypad) *Chip8 {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Chip8{
		mem:          memory.New(),
		PC:           memory.ProgramAddress,
		shiftInPlace: cfg.ShiftInPlace,
		rand:         rng,
		plane:        plane,
		keys:         keys,
		logger:       cfg.Logger,
		trace:        cfg.Trace && cfg.Logger != nil,
	}
	c.mem.LoadFont()
	return c
}

// LoadProgram copies the program to the program origin. Programs that do not
// fit are rejected before anything runs.
func (c *Chip8) LoadProgram(program []byte) error {
	if err := c.mem.LoadProgram(program); err != nil {
		return errors.Wrap(err, "loading program")
	}
	return nil
}

func (c *Chip8) Memory() *memory.Memory { return c.mem }
func (c *Chip8) Plane() *display.Plane  { return c.plane }

// Step executes a single instruction. The returned error is always a *Fault.
func (c *Chip8) Step() error {
	addr := c.PC

	raw, err := c.fetch()
	if err != nil {
		return &Fault{Address: addr, Fetching: true, Err: err}
	}

	ins := decode(raw)
	if c.trace {
		c.logger.Debug("Executing instruction",
			log.Hex("pc", addr),
			log.Hex("opcode", raw),
			log.String("mnemonic", Mnemonic(raw)))
	}

	result, err := c.execute(ins)
	if err != nil {
		return &Fault{Address: addr, Opcode: raw, Err: err}
	}
	if result == retry {
		c.PC = addr
	}
	return nil
}

// TickTimers decrements both timers. Like every other 8-bit value they wrap
// below zero.
func (c *Chip8) TickTimers() {
	c.DT--
	c.ST--
}

// fetch reads the instruction at PC and moves PC past it before execution,
// so instructions that set PC are not overwritten.
func (c *Chip8) fetch() (uint16, error) {
	raw, err := c.mem.Fetch(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC += 2
	return raw, nil
}

func (c *Chip8) execute(ins instruction) (outcome, error) {
	switch ins.op {
	case opcode00E0:
		c.clearScreen()
	case opcode00EE:
		c.exitSubroutine()
	case opcode1NNN:
		c.jumpToAddr(ins)
	case opcode2NNN:
		return advance, c.callSubroutine(ins)
	case opcode3XNN:
		c.checkVxEqlNN(ins)
	case opcode4XNN:
		c.checkVxNotEqlNN(ins)
	case opcode5XY0:
		c.checkVxEqlVy(ins)
	case opcode6XNN:
		c.setVxToNN(ins)
	case opcode7XNN:
		c.addAssignToVx(ins)
	case opcode8XY0:
		c.setVxToVy(ins)
	case opcode8XY1:
		c.bitwiseORAssignVxToVy(ins)
	case opcode8XY2:
		c.bitwiseANDAssignVxToVy(ins)
	case opcode8XY3:
		c.bitwiseXORAssignVxToVy(ins)
	case opcode8XY4:
		c.addAssignVyToVx(ins)
	case opcode8XY5:
		c.subAssignVyToVx(ins)
	case opcode8XY6:
		c.rightShiftVxBy1(ins)
	case opcode8XY7:
		c.setVxToVySubVx(ins)
	case opcode8XYE:
		c.leftShiftVxBy1(ins)
	case opcode9XY0:
		c.checkVxNotEqlVy(ins)
	case opcodeANNN:
		c.setIReg(ins)
	case opcodeBNNN:
		c.pcJump(ins)
	case opcodeCXNN:
		c.setVxToRand(ins)
	case opcodeDXYN:
		return advance, c.drawSprite(ins)
	case opcodeEX9E:
		c.keyOpEqlCheck(ins)
	case opcodeEXA1:
		c.keyOpNotEqlCheck(ins)
	case opcodeFX07:
		c.setVxToDelayTimer(ins)
	case opcodeFX0A:
		return c.setVxToKeyPress(ins), nil
	case opcodeFX15:
		c.setDelayTimerToVx(ins)
	case opcodeFX18:
		c.setSoundTimerToVx(ins)
	case opcodeFX1E:
		c.addAssignVxToI(ins)
	case opcodeFX29:
		c.setIToSpriteAddrVx(ins)
	case opcodeFX33:
		return advance, c.storeBCDToI(ins)
	case opcodeFX55:
		return advance, c.regDump(ins)
	case opcodeFX65:
		return advance, c.regLoad(ins)
	default:
		// unknown instructions are skipped, PC is already past them
		if c.trace {
			c.logger.Debug("Skipping unknown instruction", log.Hex("opcode", ins.raw))
		}
	}

	return advance, nil
}
