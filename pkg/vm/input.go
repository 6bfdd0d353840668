package vm

import (
	"bufio"
	"errors"
	"io"
)

// inputBuffer is the Synacor input buffer (spec.md §3): a byte sequence
// with a read cursor, refilled from an io.Reader one line at a time,
// trailing newline included. Grounded on original_source/src/program.rs's
// InputBuffer (buffer []byte, cursor) and on the teacher's/
// sfluor-synacor-challenge's bufio.NewReader(os.Stdin) usage.
type inputBuffer struct {
	r      *bufio.Reader
	buffer []byte
	cursor int
}

func newInputBuffer(r io.Reader) *inputBuffer {
	return &inputBuffer{r: bufio.NewReader(r)}
}

// next returns the next input byte, refilling from a full line (newline
// included) when the buffer is exhausted. EOF on refill is fatal, per
// spec.md §4.4: "EOF on input is fatal (InputExhausted)."
func (b *inputBuffer) next() (byte, error) {
	if b.cursor == len(b.buffer) {
		line, err := b.r.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrInputExhausted
			}
			return 0, err
		}
		// ReadBytes can return a partial final line alongside io.EOF
		// (no trailing newline); accept it as the last line.
		b.buffer = line
		b.cursor = 0
	}
	c := b.buffer[b.cursor]
	b.cursor++
	return c, nil
}
