// preprocessor/bytecode/instructions.go

package bytecode

import "fmt"

// Opcode represents a single instruction. The value of each opcode is the
// source byte that spells it, so a stripped stream is valid source as well.
type Opcode byte

// Bytecode instructions
const (
	// Cell instructions
	INC Opcode = '+'
	DEC Opcode = '-'

	// Pointer instructions
	RIGHT Opcode = '>'
	LEFT  Opcode = '<'

	// I/O instructions
	OUTPUT Opcode = '.'
	INPUT  Opcode = ','

	// Control flow instructions
	LOOP_START Opcode = '['
	LOOP_END   Opcode = ']'
)

// Opcodes lists every instruction in source order of the language's usual
// presentation.
var Opcodes = []Opcode{INC, DEC, OUTPUT, INPUT, RIGHT, LEFT, LOOP_START, LOOP_END}

// IsInstruction reports whether b spells one of the eight instructions.
func IsInstruction(b byte) bool {
	switch Opcode(b) {
	case INC, DEC, OUTPUT, INPUT, RIGHT, LEFT, LOOP_START, LOOP_END:
		return true
	default:
		return false
	}
}

// IsJump returns true if the opcode needs an entry in the jump table.
func (op Opcode) IsJump() bool {
	return op == LOOP_START || op == LOOP_END
}

// String returns the string representation of the opcode.
func (op Opcode) String() string {
	switch op {
	case INC:
		return "INC"
	case DEC:
		return "DEC"
	case RIGHT:
		return "RIGHT"
	case LEFT:
		return "LEFT"
	case OUTPUT:
		return "OUTPUT"
	case INPUT:
		return "INPUT"
	case LOOP_START:
		return "LOOP_START"
	case LOOP_END:
		return "LOOP_END"
	default:
		return fmt.Sprintf("UNKNOWN_OPCODE(%d)", byte(op))
	}
}
