package vm

import (
	"errors"
	"testing"
)

func TestDecodeSet(t *testing.T) {
	mem := NewMemory()
	mem.Load(wordsToBytes([]uint16{OpSetWord(), MaxWord, 4}))
	instr, err := Decode(mem, 0)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, instr.Op == OpSet, "op = %v, want set", instr.Op)
	assert(t, instr.HasDst && instr.Dst == 0, "dst = %d, want register 0", instr.Dst)
	assert(t, len(instr.Operands) == 1, "expected 1 operand, got %d", len(instr.Operands))
	assert(t, instr.Operands[0].Encode() == 4, "operand = %d, want 4", instr.Operands[0].Encode())
	assert(t, instr.Len == 3, "len = %d, want 3", instr.Len)
}

func TestDecodeRejectsLiteralInRegisterSlot(t *testing.T) {
	mem := NewMemory()
	mem.Load(wordsToBytes([]uint16{OpSetWord(), 4, 4}))
	_, err := Decode(mem, 0)
	assert(t, errors.Is(err, ErrExpectedRegister), "expected ErrExpectedRegister, got %v", err)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	mem := NewMemory()
	mem.Load(wordsToBytes([]uint16{22}))
	_, err := Decode(mem, 0)
	assert(t, errors.Is(err, ErrUnknownOpcode), "expected ErrUnknownOpcode, got %v", err)
}

func TestDecodeNoOperandOpcodes(t *testing.T) {
	for _, op := range []Opcode{OpHalt, OpRet, OpNoop} {
		mem := NewMemory()
		mem.Load(wordsToBytes([]uint16{uint16(op)}))
		instr, err := Decode(mem, 0)
		assert(t, err == nil, "op %v: unexpected error %v", op, err)
		assert(t, instr.Len == 1, "op %v: len = %d, want 1", op, instr.Len)
		assert(t, !instr.HasDst, "op %v: unexpected dst", op)
	}
}

// OpSetWord exists purely so tests can refer to the numeric opcode
// without re-deriving it, keeping the intent ("the set opcode's word
// value") explicit at call sites above.
func OpSetWord() uint16 { return uint16(OpSet) }

func wordsToBytes(words []uint16) []byte {
	b := make([]byte, 2*len(words))
	for i, w := range words {
		b[2*i] = byte(w)
		b[2*i+1] = byte(w >> 8)
	}
	return b
}
