package vm

import (
	"log"
	"net"
)

// SerialConsole is an optional TCP-backed front end for the VM's
// character I/O, replacing the default stdin/stdout pair. Adapted from
// the teacher's SerialTTY (bassosimone-risc32/pkg/vm/tty.go): that type
// polled a pair of status-register bits (TTYIn/TTYOut) because the
// RiSC-32 architecture it served has an interrupt controller. Synacor has
// none - in/out instructions simply block - so this keeps only what
// actually transfers: a net.Conn wrapped as a plain io.ReadWriter that
// WithStdin/WithStdout can plug straight into the VM, in place of the
// status-register polling loop.
//
// Usage mirrors the teacher's contract: call TTYAcceptConn, defer Close,
// and pass the result to vm.WithStdin/vm.WithStdout.
type SerialConsole struct {
	conn net.Conn
}

// TTYAcceptConn waits for a controlling TCP connection to attach to the
// console, then returns a SerialConsole wrapping it.
func TTYAcceptConn() (*SerialConsole, error) {
	nl, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	log.Printf("vm: waiting for console to attach on %s/tcp...", nl.Addr())
	conn, err := nl.Accept()
	if err != nil {
		return nil, err
	}
	return &SerialConsole{conn: conn}, nil
}

// Read implements io.Reader, satisfying WithStdin's io.Reader parameter.
func (c *SerialConsole) Read(p []byte) (int, error) {
	return c.conn.Read(p)
}

// Write implements io.Writer, satisfying WithStdout's io.Writer parameter.
func (c *SerialConsole) Write(p []byte) (int, error) {
	return c.conn.Write(p)
}

// LocalAddr returns the address where the console is listening.
func (c *SerialConsole) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Close closes the underlying connection.
func (c *SerialConsole) Close() error {
	return c.conn.Close()
}
