package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLine bounds a single packet line.
const maxLine = 4096

// Reader decodes packets from a stream, one per line.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 256), maxLine)
	return &Reader{scanner: s}
}

// Next returns the next packet.
//
// A line that fails to decode returns its error (wrapping ErrUnknownPacket or
// ErrMalformedPacket) and the Reader stays usable. io.EOF is returned at the
// end of the stream.
func (r *Reader) Next() (Packet, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		return Decode(line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return nil, io.EOF
}

// Writer encodes packets onto a stream, one per line. It is not safe for
// concurrent use.
type Writer struct {
	w io.Writer

	// torn is set when a write stopped partway through a line.
	torn bool
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes p in a single write.
//
// A failed write may leave part of a line on the stream. The next Write then
// starts with a newline, so the fragment ends up on a line of its own that
// the receiving Reader rejects and skips.
func (w *Writer) Write(p Packet) error {
	line := Encode(p)
	if w.torn {
		line = append([]byte{'\n'}, line...)
	}
	n, err := w.w.Write(line)
	if err != nil {
		if n > 0 {
			w.torn = true
		}
		return fmt.Errorf("failed to write %s packet: %w", p.Kind(), err)
	}
	w.torn = false
	return nil
}
