package vm

import "errors"

// The following sentinel errors cover the taxonomy in spec.md §7. Every one
// is fatal to execution: the VM halts, and the caller (cmd/vm) surfaces the
// wrapped context and exits non-zero. None is retried or caught inside the
// VM itself, matching the teacher's ErrHalted/ErrNotPermitted/ErrSIGSEGV
// convention (pkg/vm/vm.go in bassosimone-risc32).
var (
	// ErrInvalidWord indicates an operand word above 32775.
	ErrInvalidWord = errors.New("vm: invalid word")

	// ErrUnknownOpcode indicates an opcode above 21.
	ErrUnknownOpcode = errors.New("vm: unknown opcode")

	// ErrExpectedRegister indicates a literal appeared where an
	// instruction requires a register reference.
	ErrExpectedRegister = errors.New("vm: expected register")

	// ErrBadJumpTarget indicates a jmp/call destination at or above
	// the 15-bit address space.
	ErrBadJumpTarget = errors.New("vm: bad jump target")

	// ErrAddressOutOfRange indicates an rmem/wmem address at or above
	// the 15-bit address space.
	ErrAddressOutOfRange = errors.New("vm: address out of range")

	// ErrDivisionByZero indicates a mod instruction with a zero divisor.
	ErrDivisionByZero = errors.New("vm: division by zero")

	// ErrInvalidCharacter indicates an out operand above 127.
	ErrInvalidCharacter = errors.New("vm: invalid character")

	// ErrStackUnderflow indicates a pop with an empty stack.
	ErrStackUnderflow = errors.New("vm: stack underflow")

	// ErrInputExhausted indicates EOF on stdin while an in instruction
	// is waiting for a byte.
	ErrInputExhausted = errors.New("vm: input exhausted")

	// ErrHalted indicates normal termination: a halt instruction or a
	// ret with an empty stack. Unlike the errors above this is not a
	// failure - cmd/vm treats it as exit code 0.
	ErrHalted = errors.New("vm: halted")
)
