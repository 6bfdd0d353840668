package vm

import "fmt"

// Opcode identifies one of the 22 Synacor instructions (spec.md §4.3).
type Opcode uint16

// The following constants define the opcodes, in the order and with the
// values spec.md §4.3 assigns them. Grounded on
// original_source/src/program.rs's next_operation match arms and on
// sfluor-synacor-challenge's identical iota block.
const (
	OpHalt Opcode = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop

	opcodeCount
)

var mnemonics = [opcodeCount]string{
	OpHalt: "halt", OpSet: "set", OpPush: "push", OpPop: "pop",
	OpEq: "eq", OpGt: "gt", OpJmp: "jmp", OpJt: "jt", OpJf: "jf",
	OpAdd: "add", OpMult: "mult", OpMod: "mod", OpAnd: "and", OpOr: "or",
	OpNot: "not", OpRmem: "rmem", OpWmem: "wmem", OpCall: "call",
	OpRet: "ret", OpOut: "out", OpIn: "in", OpNoop: "noop",
}

// String returns the mnemonic for op, or "unknown" if op is out of range.
func (op Opcode) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return "unknown"
}

// Instruction is a fully decoded instruction: its opcode, the register a
// destination operand resolved to (when the opcode has one), and the
// operand Values in the order they appear in the encoding. Len is the
// instruction's length in words (1 + operand count), used by the
// executor to advance the cursor on straight-line flow (spec.md §4.3).
type Instruction struct {
	Op       Opcode
	Dst      uint16 // valid only when HasDst is true
	HasDst   bool
	Operands []Value
	Len      uint16
}

// operandShape describes, for a given opcode, whether a destination
// register word follows the opcode and how many plain Value operands come
// after it (the destination is not counted in values).
type operandShape struct {
	values int
	hasDst bool
}

var shapes = map[Opcode]operandShape{
	OpHalt: {0, false},
	OpSet:  {1, true},
	OpPush: {1, false},
	OpPop:  {0, true},
	OpEq:   {2, true},
	OpGt:   {2, true},
	OpJmp:  {1, false},
	OpJt:   {2, false},
	OpJf:   {2, false},
	OpAdd:  {2, true},
	OpMult: {2, true},
	OpMod:  {2, true},
	OpAnd:  {2, true},
	OpOr:   {2, true},
	OpNot:  {1, true},
	OpRmem: {1, true},
	OpWmem: {2, false},
	OpCall: {1, false},
	OpRet:  {0, false},
	OpOut:  {1, false},
	OpIn:   {0, true},
	OpNoop: {0, false},
}

// Decode reads one instruction from mem starting at cursor: the opcode
// word, then the declared number of operand words, each run through
// DecodeValue. Destination slots (spec.md §4.3's "R" operands) must
// decode to a register reference or decoding fails with
// ErrExpectedRegister. Opcodes above 21 fail with ErrUnknownOpcode.
func Decode(mem *Memory, cursor uint16) (Instruction, error) {
	raw, err := mem.ReadWord(cursor)
	if err != nil {
		return Instruction{}, err
	}
	op := Opcode(raw)
	shape, ok := shapes[op]
	if !ok {
		return Instruction{}, fmt.Errorf("%w: %d at %d", ErrUnknownOpcode, raw, cursor)
	}

	instr := Instruction{Op: op, Len: 1}
	pos := cursor + 1

	if shape.hasDst {
		word, err := mem.ReadWord(pos)
		if err != nil {
			return Instruction{}, err
		}
		val, err := DecodeValue(word)
		if err != nil {
			return Instruction{}, err
		}
		reg, err := AsRegister(val)
		if err != nil {
			return Instruction{}, err
		}
		instr.Dst = reg
		instr.HasDst = true
		pos++
		instr.Len++
	}

	instr.Operands = make([]Value, 0, shape.values)
	for i := 0; i < shape.values; i++ {
		word, err := mem.ReadWord(pos)
		if err != nil {
			return Instruction{}, err
		}
		val, err := DecodeValue(word)
		if err != nil {
			return Instruction{}, err
		}
		instr.Operands = append(instr.Operands, val)
		pos++
		instr.Len++
	}

	return instr, nil
}
