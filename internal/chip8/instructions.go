package chip8

import (
	"math"

	"chip8vm/internal/memory"

	"github.com/pkg/errors"
)

func (c *Chip8) clearScreen() {
	c.plane.Clear()
}

// exitSubroutine pops the return address. Returning with an empty stack does
// nothing.
func (c *Chip8) exitSubroutine() {
	if c.SP == 0 {
		return
	}
	c.SP--
	c.PC = c.Stack[c.SP]
}

func (c *Chip8) jumpToAddr(ins instruction) {
	c.PC = ins.nnn
}

// callSubroutine pushes the address after the call and sets PC to NNN
func (c *Chip8) callSubroutine(ins instruction) error {
	if int(c.SP) >= len(c.Stack) {
		return errors.Wrapf(ErrStackOverflow, "depth %d", c.SP)
	}
	c.Stack[c.SP] = c.PC
	c.SP++
	c.PC = ins.nnn
	return nil
}

// checkVxEqlNN skips the next instruction if Vx equals NN
func (c *Chip8) checkVxEqlNN(ins instruction) {
	if c.Vx[ins.x] == ins.nn {
		c.PC += 2 // skip next instruction
	}
}

// checkVxNotEqlNN skips the next instruction if Vx does not equal NN
func (c *Chip8) checkVxNotEqlNN(ins instruction) {
	if c.Vx[ins.x] != ins.nn {
		c.PC += 2
	}
}

// checkVxEqlVy skips the next instruction if Vx equals Vy
func (c *Chip8) checkVxEqlVy(ins instruction) {
	if c.Vx[ins.x] == c.Vx[ins.y] {
		c.PC += 2
	}
}

func (c *Chip8) checkVxNotEqlVy(ins instruction) {
	if c.Vx[ins.x] != c.Vx[ins.y] {
		c.PC += 2
	}
}

func (c *Chip8) setVxToNN(ins instruction) {
	c.Vx[ins.x] = ins.nn
}

func (c *Chip8) addAssignToVx(ins instruction) {
	c.Vx[ins.x] += ins.nn
}

func (c *Chip8) setVxToVy(ins instruction) {
	c.Vx[ins.x] = c.Vx[ins.y]
}

func (c *Chip8) bitwiseORAssignVxToVy(ins instruction) {
	c.Vx[ins.x] |= c.Vx[ins.y]
}

func (c *Chip8) bitwiseANDAssignVxToVy(ins instruction) {
	c.Vx[ins.x] &= c.Vx[ins.y]
}

func (c *Chip8) bitwiseXORAssignVxToVy(ins instruction) {
	c.Vx[ins.x] ^= c.Vx[ins.y]
}

// addAssignVyToVx wraps and leaves VF alone. Programs written for this
// interpreter family do not expect a carry here.
func (c *Chip8) addAssignVyToVx(ins instruction) {
	c.Vx[ins.x] += c.Vx[ins.y]
}

// subAssignVyToVx sets VF to 1 when no borrow occurs.
func (c *Chip8) subAssignVyToVx(ins instruction) {
	vx, vy := c.Vx[ins.x], c.Vx[ins.y]
	c.Vx[ins.x] = vx - vy
	c.Vx[0xF] = flag(vx >= vy)
}

// setVxToVySubVx stores Vy - Vx in Vx, VF is 1 when no borrow occurs.
func (c *Chip8) setVxToVySubVx(ins instruction) {
	vx, vy := c.Vx[ins.x], c.Vx[ins.y]
	c.Vx[ins.x] = vy - vx
	c.Vx[0xF] = flag(vy >= vx)
}

// shiftSource returns the value a shift operates on.
func (c *Chip8) shiftSource(ins instruction) uint8 {
	if c.shiftInPlace {
		return c.Vx[ins.x]
	}
	return c.Vx[ins.y]
}

func (c *Chip8) rightShiftVxBy1(ins instruction) {
	v := c.shiftSource(ins)
	c.Vx[ins.x] = v >> 1
	c.Vx[0xF] = v & 0x1
}

func (c *Chip8) leftShiftVxBy1(ins instruction) {
	v := c.shiftSource(ins)
	c.Vx[ins.x] = v << 1
	c.Vx[0xF] = v >> 7
}

func (c *Chip8) setIReg(ins instruction) {
	c.I = ins.nnn
}

func (c *Chip8) pcJump(ins instruction) {
	c.PC = uint16(c.Vx[0]) + ins.nnn
}

func (c *Chip8) setVxToRand(ins instruction) {
	c.Vx[ins.x] = uint8(c.rand.Intn(256)) & ins.nn
}

// drawSprite draws the N byte sprite at I to (Vx, Vy), VF is the collision.
func (c *Chip8) drawSprite(ins instruction) error {
	sprite, err := c.mem.ReadBlock(c.I, int(ins.n))
	if err != nil {
		return errors.Wrap(err, "reading sprite")
	}
	c.Vx[0xF] = flag(c.plane.Draw(sprite, c.Vx[ins.x], c.Vx[ins.y]))
	return nil
}

func (c *Chip8) keyOpEqlCheck(ins instruction) {
	if c.keys.IsDown(c.Vx[ins.x]) {
		c.PC += 2
	}
}

func (c *Chip8) keyOpNotEqlCheck(ins instruction) {
	if !c.keys.IsDown(c.Vx[ins.x]) {
		c.PC += 2
	}
}

func (c *Chip8) setVxToDelayTimer(ins instruction) {
	c.Vx[ins.x] = c.DT
}

// setVxToKeyPress waits for a key by running again until one is held.
func (c *Chip8) setVxToKeyPress(ins instruction) outcome {
	key, ok := c.keys.AnyDown()
	if !ok {
		return retry
	}
	c.Vx[ins.x] = key
	return advance
}

func (c *Chip8) setDelayTimerToVx(ins instruction) {
	c.DT = c.Vx[ins.x]
}

func (c *Chip8) setSoundTimerToVx(ins instruction) {
	c.ST = c.Vx[ins.x]
}

// addAssignVxToI sets VF when I leaves the addressable range. I is neither
// masked nor wrapped, it saturates at 0xFFFF so a following memory access
// through it faults.
func (c *Chip8) addAssignVxToI(ins instruction) {
	sum := int(c.I) + int(c.Vx[ins.x])
	if sum > math.MaxUint16 {
		sum = math.MaxUint16
	}
	c.I = uint16(sum)
	c.Vx[0xF] = flag(sum > MaxIndex)
}

func (c *Chip8) setIToSpriteAddrVx(ins instruction) {
	c.I = memory.GlyphAddress(c.Vx[ins.x])
}

func (c *Chip8) storeBCDToI(ins instruction) error {
	val := c.Vx[ins.x]
	bcd := []byte{val / 100, (val / 10) % 10, val % 10}
	if err := c.mem.WriteBlock(c.I, bcd); err != nil {
		return errors.Wrap(err, "storing BCD")
	}
	return nil
}

// regDump stores V0 through Vx at I, I is unchanged.
func (c *Chip8) regDump(ins instruction) error {
	if err := c.mem.WriteBlock(c.I, c.Vx[:ins.x+1]); err != nil {
		return errors.Wrap(err, "storing registers")
	}
	return nil
}

// regLoad loads V0 through Vx from I, I is unchanged.
func (c *Chip8) regLoad(ins instruction) error {
	block, err := c.mem.ReadBlock(c.I, int(ins.x)+1)
	if err != nil {
		return errors.Wrap(err, "loading registers")
	}
	copy(c.Vx[:], block)
	return nil
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
