// Package vm implements the Synacor Challenge virtual machine: a
// stack-and-register architecture with a 15-bit address space and 16-bit
// words.
//
// Four pieces make up the machine, leaves-first: the Value Model
// (value.go) decodes a raw word into a literal or register reference; the
// Memory Unit (memory.go) owns the word array, register file, and operand
// stack; the Instruction Decoder (decode.go) turns a cursor position into
// a typed Instruction; and the Executor (this file) drives the
// fetch-decode-execute loop, mediating standard input/output along the
// way.
//
// The VM is strictly single-threaded, cooperative, and synchronous: one
// cursor, one stack, one register file, one memory region, all owned
// exclusively by the Executor for the duration of Run.
package vm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// M is the modulus every arithmetic/logic result (add, mult, mod, and,
// or, not) is reduced under before storage (spec.md §3, §4.4). It equals
// MemSize, since both describe the same 15-bit space, but is named
// separately to keep the two meanings (address bound vs. arithmetic
// modulus) apart in the instruction semantics below.
const M = MemSize

// VM is the Synacor Executor: it owns a Memory Unit and a cursor, and
// drives the fetch-decode-execute loop against an input/output pair.
type VM struct {
	Mem    *Memory
	Cursor uint16

	stdout io.Writer
	input  *inputBuffer
	logger *slog.Logger

	// BypassEnabled turns on the historical "!"-triggered register
	// override hook (spec.md §4.4, §9): some variants of the source
	// intercept the input byte '!' to inject BypassValue into register
	// BypassRegister before consuming the next input byte. Off by
	// default - this is a debugging convenience, not part of the core
	// contract.
	BypassEnabled  bool
	BypassRegister uint16
	BypassValue    uint16

	// DumpOnCall, when non-zero, names a call target address at which
	// the executor performs a one-shot linear disassembly (spec.md
	// §4.4), writing each line to the logger at info level, instead of
	// taking the call: it assigns DumpRegister0Value
	// to register 0 and continues past the call as if it had returned.
	// Zero (the default) disables the hook entirely.
	DumpOnCall         uint16
	DumpRegister0Value uint16
	dumped             bool

	halted bool
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithStdout overrides the out instruction's destination (default
// io.Discard if unset by New; callers normally pass os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(v *VM) { v.stdout = w }
}

// WithStdin overrides the in instruction's source line-buffer reader
// (default an always-EOF reader if unset by New).
func WithStdin(r io.Reader) Option {
	return func(v *VM) { v.input = newInputBuffer(r) }
}

// WithLogger attaches a structured logger. The executor logs one debug
// line per decoded instruction and one info line on halt (see
// internal/vmlog and SPEC_FULL.md §1.1). Without this option, or with a
// nil logger, the executor logs to a handler that discards every record.
func WithLogger(l *slog.Logger) Option {
	return func(v *VM) {
		if l != nil {
			v.logger = l
		}
	}
}

// New returns a VM ready to run the program already loaded into mem.
func New(mem *Memory, opts ...Option) *VM {
	v := &VM{
		Mem:    mem,
		stdout: io.Discard,
		input:  newInputBuffer(nullReader{}),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type nullReader struct{}

func (nullReader) Read([]byte) (int, error) { return 0, io.EOF }

// Run drives the fetch-decode-execute loop until the program halts (via
// halt or an empty-stack ret) or a fatal error occurs. A clean
// termination returns nil; callers that need to distinguish "halted
// normally" from "never started" can check VM.Halted after Run returns.
func (v *VM) Run() error {
	for !v.halted {
		if err := v.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				v.halted = true
				v.logger.Info("halted", "cursor", v.Cursor)
				return nil
			}
			return err
		}
	}
	return nil
}

// Halted reports whether the VM has reached a terminal state.
func (v *VM) Halted() bool {
	return v.halted
}

// Step decodes and executes exactly one instruction, advancing the
// cursor per spec.md §4.3/§4.4: straight-line flow leaves the cursor one
// past the last operand consumed; jumps and calls overwrite it outright.
// Step returns ErrHalted (not as an error condition, but as the sentinel
// meaning "stop") on halt or empty-stack ret.
func (v *VM) Step() error {
	if v.DumpOnCall != 0 && !v.dumped {
		if instr, err := Decode(v.Mem, v.Cursor); err == nil && instr.Op == OpCall {
			if target := Resolve(instr.Operands[0], v.Mem); target == v.DumpOnCall {
				v.dumped = true
				for _, line := range DisassembleProgram(v.Mem) { // one-shot, diagnostic only
					v.logger.Info("dump", "line", line)
				}
				v.Mem.WriteRegister(0, v.DumpRegister0Value)
				v.Cursor += instr.Len
				return nil
			}
		}
	}

	instr, err := Decode(v.Mem, v.Cursor)
	if err != nil {
		return err
	}
	v.logger.Debug("step", "cursor", v.Cursor, "op", instr.Op.String())
	return v.execute(instr)
}

func (v *VM) execute(instr Instruction) error {
	mem := v.Mem
	startCursor := v.Cursor

	operand := func(i int) uint16 {
		return Resolve(instr.Operands[i], mem)
	}
	setDst := func(value uint16) {
		mem.WriteRegister(instr.Dst, value)
	}
	advance := func() {
		v.Cursor = startCursor + instr.Len
	}

	switch instr.Op {
	case OpHalt:
		return ErrHalted

	case OpSet:
		setDst(operand(0))
		advance()

	case OpPush:
		mem.Push(operand(0))
		advance()

	case OpPop:
		value, ok := mem.Pop()
		if !ok {
			return fmt.Errorf("%w: at %d", ErrStackUnderflow, startCursor)
		}
		setDst(value)
		advance()

	case OpEq:
		if operand(0) == operand(1) {
			setDst(1)
		} else {
			setDst(0)
		}
		advance()

	case OpGt:
		if operand(0) > operand(1) {
			setDst(1)
		} else {
			setDst(0)
		}
		advance()

	case OpJmp:
		target := operand(0)
		if int(target) >= MemSize {
			return fmt.Errorf("%w: %d", ErrBadJumpTarget, target)
		}
		v.Cursor = target

	case OpJt:
		if operand(0) != 0 {
			target := operand(1)
			if int(target) >= MemSize {
				return fmt.Errorf("%w: %d", ErrBadJumpTarget, target)
			}
			v.Cursor = target
		} else {
			advance()
		}

	case OpJf:
		if operand(0) == 0 {
			target := operand(1)
			if int(target) >= MemSize {
				return fmt.Errorf("%w: %d", ErrBadJumpTarget, target)
			}
			v.Cursor = target
		} else {
			advance()
		}

	case OpAdd:
		setDst((operand(0) + operand(1)) % M)
		advance()

	case OpMult:
		setDst(uint16((uint32(operand(0)) * uint32(operand(1))) % M))
		advance()

	case OpMod:
		b := operand(1)
		if b == 0 {
			return fmt.Errorf("%w: at %d", ErrDivisionByZero, startCursor)
		}
		setDst((operand(0) % b) % M)
		advance()

	case OpAnd:
		setDst((operand(0) & operand(1)) % M)
		advance()

	case OpOr:
		setDst((operand(0) | operand(1)) % M)
		advance()

	case OpNot:
		setDst((^operand(0)) & 0x7FFF)
		advance()

	case OpRmem:
		addr := operand(0)
		word, err := mem.ReadWord(addr)
		if err != nil {
			return err
		}
		setDst(word)
		advance()

	case OpWmem:
		addr := operand(0)
		if err := mem.WriteWord(addr, operand(1)); err != nil {
			return err
		}
		advance()

	case OpCall:
		target := operand(0)
		if int(target) >= MemSize {
			return fmt.Errorf("%w: %d", ErrBadJumpTarget, target)
		}
		mem.Push(startCursor + instr.Len)
		v.Cursor = target

	case OpRet:
		addr, ok := mem.Pop()
		if !ok {
			return ErrHalted
		}
		v.Cursor = addr

	case OpOut:
		ch := operand(0)
		if ch > 127 {
			return fmt.Errorf("%w: %d", ErrInvalidCharacter, ch)
		}
		if _, err := v.stdout.Write([]byte{byte(ch)}); err != nil {
			return err
		}
		advance()

	case OpIn:
		b, err := v.readInputByte()
		if err != nil {
			return err
		}
		setDst(uint16(b))
		advance()

	case OpNoop:
		advance()

	default:
		return fmt.Errorf("%w: %d", ErrUnknownOpcode, instr.Op)
	}

	return nil
}

// readInputByte delivers one byte from the input buffer, applying the
// optional bypass hook (spec.md §4.4, §9) when enabled: reading '!'
// injects BypassValue into BypassRegister before the next real byte is
// consumed.
func (v *VM) readInputByte() (byte, error) {
	b, err := v.input.next()
	if err != nil {
		return 0, err
	}
	if v.BypassEnabled && b == '!' {
		v.logger.Debug("bypass override", "register", v.BypassRegister, "value", v.BypassValue)
		v.Mem.WriteRegister(v.BypassRegister, v.BypassValue)
		return v.input.next()
	}
	return b, nil
}
