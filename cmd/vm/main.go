// Command vm is the thin entry point for the Synacor VM (spec.md §1
// treats it as an external collaborator, not part of the core engine): it
// reads the program image named by its one positional argument, forwards
// it to pkg/vm, and runs it to completion.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/behos/synacor/internal/vmlog"
	"github.com/behos/synacor/pkg/vm"
)

func main() {
	log.SetFlags(0)

	verbose := flag.Bool("v", false, "log one line per decoded instruction")
	bypass := flag.Bool("bypass", false, "enable the '!' register-7 override hook")
	tty := flag.Bool("tty", false, "accept a TCP console instead of stdio")
	disasm := flag.Bool("disasm", false, "print a linear disassembly instead of running")
	dumpOnCall := flag.Uint("dump-on-call", 0, "call address at which to perform a one-shot disassembly dump")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: vm [-v] [-bypass] [-tty] [-disasm] [-dump-on-call addr] <program-image>")
	}
	path := flag.Arg(0)

	if *verbose {
		os.Setenv(vmlog.EnvVar, "debug")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	mem := vm.NewMemory()
	mem.Load(data)

	if *disasm {
		for _, line := range vm.DisassembleProgram(mem) {
			fmt.Println(line)
		}
		return
	}

	stdin := io.Reader(os.Stdin)
	stdout := io.Writer(os.Stdout)
	if *tty {
		console, err := vm.TTYAcceptConn()
		if err != nil {
			log.Fatal(err)
		}
		defer console.Close()
		stdin, stdout = console, console
	}

	opts := []vm.Option{
		vm.WithStdin(stdin),
		vm.WithStdout(stdout),
		vm.WithLogger(vmlog.New(os.Stderr)),
	}

	machine := vm.New(mem, opts...)
	if *bypass {
		machine.BypassEnabled = true
		machine.BypassRegister = 7
		machine.BypassValue = 25734
	}
	if *dumpOnCall != 0 {
		machine.DumpOnCall = uint16(*dumpOnCall)
		machine.DumpRegister0Value = 6
	}

	if err := machine.Run(); err != nil {
		if errors.Is(err, vm.ErrHalted) {
			return
		}
		log.Fatalf("vm: %v (cursor %d)", err, machine.Cursor)
	}
}
