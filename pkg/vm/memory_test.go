package vm

import (
	"errors"
	"testing"
)

func TestMemoryLoadLittleEndian(t *testing.T) {
	mem := NewMemory()
	mem.Load([]byte{0x09, 0x00, 0x00, 0x80, 0x01, 0x80})
	w0, _ := mem.ReadWord(0)
	w1, _ := mem.ReadWord(1)
	w2, _ := mem.ReadWord(2)
	assert(t, w0 == 9, "word 0 = %d, want 9", w0)
	assert(t, w1 == 32768, "word 1 = %d, want 32768", w1)
	assert(t, w2 == 32769, "word 2 = %d, want 32769", w2)
}

func TestMemoryLoadDiscardsOddTrailingByte(t *testing.T) {
	mem := NewMemory()
	mem.Load([]byte{0x01, 0x00, 0xFF})
	w0, _ := mem.ReadWord(0)
	w1, _ := mem.ReadWord(1)
	assert(t, w0 == 1, "word 0 = %d, want 1", w0)
	assert(t, w1 == 0, "trailing odd byte leaked into word 1: %d", w1)
}

func TestMemoryReadWriteWordOutOfRange(t *testing.T) {
	mem := NewMemory()
	_, err := mem.ReadWord(MemSize)
	assert(t, errors.Is(err, ErrAddressOutOfRange), "expected ErrAddressOutOfRange, got %v", err)

	err = mem.WriteWord(MemSize, 1)
	assert(t, errors.Is(err, ErrAddressOutOfRange), "expected ErrAddressOutOfRange, got %v", err)
}

func TestMemoryPushPopPreservesDepth(t *testing.T) {
	mem := NewMemory()
	mem.Push(7)
	depthBefore := mem.StackDepth()
	mem.Push(5)

	v, ok := mem.Pop()
	assert(t, ok, "expected a value on pop")
	assert(t, v == 5, "popped %d, want 5", v)
	assert(t, mem.StackDepth() == depthBefore, "stack depth changed unexpectedly")

	v, ok = mem.Pop()
	assert(t, ok, "expected a value on second pop")
	assert(t, v == 7, "popped %d, want 7", v)
}

func TestMemoryPopEmptyReportsAbsence(t *testing.T) {
	mem := NewMemory()
	_, ok := mem.Pop()
	assert(t, !ok, "expected pop on empty stack to report absence")
}

func TestMemoryRegistersZeroInitialized(t *testing.T) {
	mem := NewMemory()
	for i := uint16(0); i < NumRegisters; i++ {
		assert(t, mem.ReadRegister(i) == 0, "register %d not zero-initialized", i)
	}
}
