package vm

import "fmt"

// DisassembleProgram performs the optional linear disassembly hook
// described in spec.md §4.4: starting at address 0, it decodes one
// instruction after another - without following jumps or calls - until it
// runs past the end of the address space or hits a word it cannot decode,
// at which point it stops rather than treating the failure as fatal
// (disassembly is a diagnostic aid, not part of the conformance contract).
//
// Grounded on the teacher's Disassemble(ci uint32) string
// (bassosimone-risc32/pkg/vm/vm.go) and on markcol-dcpu16's dedicated
// disassembler file, adapted to Synacor's variable-length instructions by
// walking Decode's own Len field instead of a fixed instruction width.
func DisassembleProgram(mem *Memory) []string {
	var lines []string
	var cursor uint16
	for int(cursor) < MemSize {
		instr, err := Decode(mem, cursor)
		if err != nil {
			break
		}
		lines = append(lines, formatInstruction(cursor, instr))
		if instr.Len == 0 {
			break // decode bug guard; never happens for a well-formed shape
		}
		next := cursor + instr.Len
		if next <= cursor {
			break // wrapped past the end of the address space
		}
		cursor = next
	}
	return lines
}

func formatInstruction(addr uint16, instr Instruction) string {
	s := fmt.Sprintf("%05d: %s", addr, instr.Op)
	if instr.HasDst {
		s += fmt.Sprintf(" r%d", instr.Dst)
	}
	for _, operand := range instr.Operands {
		s += " " + operand.String()
	}
	return s
}
