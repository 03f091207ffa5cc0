package chip8

import "fmt"

// Mnemonic returns the assembly form of a raw instruction word, for example
// "DRW V0, V1, 5". Unknown words are rendered as "??? 0x0123".
func Mnemonic(raw uint16) string {
	ins := decode(raw)
	x, y := ins.x, ins.y

	switch ins.op {
	case opcode00E0:
		return "CLS"
	case opcode00EE:
		return "RET"
	case opcode1NNN:
		return fmt.Sprintf("JP 0x%03X", ins.nnn)
	case opcode2NNN:
		return fmt.Sprintf("CALL 0x%03X", ins.nnn)
	case opcode3XNN:
		return fmt.Sprintf("SE V%X, 0x%02X", x, ins.nn)
	case opcode4XNN:
		return fmt.Sprintf("SNE V%X, 0x%02X", x, ins.nn)
	case opcode5XY0:
		return fmt.Sprintf("SE V%X, V%X", x, y)
	case opcode6XNN:
		return fmt.Sprintf("LD V%X, 0x%02X", x, ins.nn)
	case opcode7XNN:
		return fmt.Sprintf("ADD V%X, 0x%02X", x, ins.nn)
	case opcode8XY0:
		return fmt.Sprintf("LD V%X, V%X", x, y)
	case opcode8XY1:
		return fmt.Sprintf("OR V%X, V%X", x, y)
	case opcode8XY2:
		return fmt.Sprintf("AND V%X, V%X", x, y)
	case opcode8XY3:
		return fmt.Sprintf("XOR V%X, V%X", x, y)
	case opcode8XY4:
		return fmt.Sprintf("ADD V%X, V%X", x, y)
	case opcode8XY5:
		return fmt.Sprintf("SUB V%X, V%X", x, y)
	case opcode8XY6:
		return fmt.Sprintf("SHR V%X, V%X", x, y)
	case opcode8XY7:
		return fmt.Sprintf("SUBN V%X, V%X", x, y)
	case opcode8XYE:
		return fmt.Sprintf("SHL V%X, V%X", x, y)
	case opcode9XY0:
		return fmt.Sprintf("SNE V%X, V%X", x, y)
	case opcodeANNN:
		return fmt.Sprintf("LD I, 0x%03X", ins.nnn)
	case opcodeBNNN:
		return fmt.Sprintf("JP V0, 0x%03X", ins.nnn)
	case opcodeCXNN:
		return fmt.Sprintf("RND V%X, 0x%02X", x, ins.nn)
	case opcodeDXYN:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, ins.n)
	case opcodeEX9E:
		return fmt.Sprintf("SKP V%X", x)
	case opcodeEXA1:
		return fmt.Sprintf("SKNP V%X", x)
	case opcodeFX07:
		return fmt.Sprintf("LD V%X, DT", x)
	case opcodeFX0A:
		return fmt.Sprintf("LD V%X, K", x)
	case opcodeFX15:
		return fmt.Sprintf("LD DT, V%X", x)
	case opcodeFX18:
		return fmt.Sprintf("LD ST, V%X", x)
	case opcodeFX1E:
		return fmt.Sprintf("ADD I, V%X", x)
	case opcodeFX29:
		return fmt.Sprintf("LD F, V%X", x)
	case opcodeFX33:
		return fmt.Sprintf("LD B, V%X", x)
	case opcodeFX55:
		return fmt.Sprintf("LD [I], V%X", x)
	case opcodeFX65:
		return fmt.Sprintf("LD V%X, [I]", x)
	}

	return fmt.Sprintf("??? 0x%04X", raw)
}
