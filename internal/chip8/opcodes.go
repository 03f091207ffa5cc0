package chip8

type Opcode uint8

const (
	opcodeUnknown Opcode = iota
	opcode00E0
	opcode00EE
	opcode1NNN
	opcode2NNN
	opcode3XNN
	opcode4XNN
	opcode5XY0
	opcode6XNN
	opcode7XNN
	opcode8XY0
	opcode8XY1
	opcode8XY2
	opcode8XY3
	opcode8XY4
	opcode8XY5
	opcode8XY6
	opcode8XY7
	opcode8XYE
	opcode9XY0
	opcodeANNN
	opcodeBNNN
	opcodeCXNN
	opcodeDXYN
	opcodeEX9E
	opcodeEXA1
	opcodeFX07
	opcodeFX0A
	opcodeFX15
	opcodeFX18
	opcodeFX1E
	opcodeFX29
	opcodeFX33
	opcodeFX55
	opcodeFX65
)

// instruction is a decoded opcode together with every operand field. Which
// fields are meaningful depends on op.
type instruction struct {
	op  Opcode
	raw uint16

	x   uint8  // second nibble, register index
	y   uint8  // third nibble, register index
	n   uint8  // fourth nibble
	nn  uint8  // low byte
	nnn uint16 // low 12 bits, address
}

func decode(raw uint16) instruction {
	ins := instruction{
		raw: raw,
		x:   uint8(raw>>8) & 0x0F,
		y:   uint8(raw>>4) & 0x0F,
		n:   uint8(raw) & 0x0F,
		nn:  uint8(raw),
		nnn: raw & 0x0FFF,
	}
	ins.op = lookup(raw)
	return ins
}

func lookup(raw uint16) Opcode {
	switch raw & 0xF000 { // Mask the first 4 bits
	case 0x0000:
		switch raw {
		case 0x00E0:
			return opcode00E0
		case 0x00EE:
			return opcode00EE
		}
	case 0x1000:
		return opcode1NNN
	case 0x2000:
		return opcode2NNN
	case 0x3000:
		return opcode3XNN
	case 0x4000:
		return opcode4XNN
	case 0x5000:
		if raw&0x000F == 0 {
			return opcode5XY0
		}
	case 0x6000:
		return opcode6XNN
	case 0x7000:
		return opcode7XNN
	case 0x8000:
		switch raw & 0x000F {
		case 0x0000:
			return opcode8XY0
		case 0x0001:
			return opcode8XY1
		case 0x0002:
			return opcode8XY2
		case 0x0003:
			return opcode8XY3
		case 0x0004:
			return opcode8XY4
		case 0x0005:
			return opcode8XY5
		case 0x0006:
			return opcode8XY6
		case 0x0007:
			return opcode8XY7
		case 0x000E:
			return opcode8XYE
		}
	case 0x9000:
		if raw&0x000F == 0 {
			return opcode9XY0
		}
	case 0xA000:
		return opcodeANNN
	case 0xB000:
		return opcodeBNNN
	case 0xC000:
		return opcodeCXNN
	case 0xD000:
		return opcodeDXYN
	case 0xE000:
		switch raw & 0x00FF {
		case 0x009E:
			return opcodeEX9E
		case 0x00A1:
			return opcodeEXA1
		}
	case 0xF000:
		switch raw & 0x00FF {
		case 0x0007:
			return opcodeFX07
		case 0x000A:
			return opcodeFX0A
		case 0x0015:
			return opcodeFX15
		case 0x0018:
			return opcodeFX18
		case 0x001E:
			return opcodeFX1E
		case 0x0029:
			return opcodeFX29
		case 0x0033:
			return opcodeFX33
		case 0x0055:
			return opcodeFX55
		case 0x0065:
			return opcodeFX65
		}
	}

	return opcodeUnknown
}
