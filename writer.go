package utfconv

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

// Writer encodes UTF-8 text or runes into a byte stream in a given Form.
// A UTF-8 sequence split across Write calls is carried over in a State.
//
// The first error is latched; later calls return it without writing.
type Writer struct {
	w     *bufio.Writer
	form  Form
	state State
	count int64 // encoded bytes produced
	err   error
}

var _ io.StringWriter = (*Writer)(nil)

// NewWriterSize creates a Writer with at least the given buffer size.
func NewWriterSize(w io.Writer, f Form, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	if f.Encoding.UnitSize() == 0 {
		return nil, ErrUnknownEncoding
	}
	if size <= 0 {
		size = CHUNK_SIZE
	}
	return &Writer{w: bufio.NewWriterSize(w, size), form: f}, nil
}

// NewWriter creates a Writer with a default buffer size.
func NewWriter(w io.Writer, f Form) (*Writer, error) {
	return NewWriterSize(w, f, 0)
}

// WithByteOrder sets the byte order of UTF-16 and UTF-32 output and returns
// the Writer for chaining.
func (w *Writer) WithByteOrder(order binary.ByteOrder) *Writer {
	w.form.Order = order
	return w
}

// Form returns the form being written.
func (w *Writer) Form() Form { return w.form }

// Count returns the encoded bytes produced so far, buffered ones included.
func (w *Writer) Count() int64 { return w.count }

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Buffered returns the number of bytes not yet flushed.
func (w *Writer) Buffered() int { return w.w.Buffered() }

func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) emit(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
}

// WriteBOM writes the byte order mark of the Writer's form.
func (w *Writer) WriteBOM() error {
	w.emit(BOM(w.form))
	return w.err
}

// WriteRune encodes one Unicode scalar value and returns the bytes produced.
// An invalid rune is rejected without latching the error.
func (w *Writer) WriteRune(r rune) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if !w.state.Initial() {
		w.setError(ErrInvalidState)
		return 0, w.err
	}
	if !ValidRune(r) {
		return 0, &SequenceError{Encoding: UTF32, Reason: runeReason(r)}
	}
	var buf [4]byte
	var n int
	switch w.form.Encoding {
	case UTF8:
		n = encodeUTF8(buf[:], 0, r)
	case UTF16:
		n = 2 * encodeUTF16(Bytes16{B: buf[:], Order: w.form.Order}, 0, r)
	case UTF32:
		orderOr(w.form.Order).PutUint32(buf[:], uint32(r))
		n = 4
	}
	before := w.count
	w.emit(buf[:n])
	return int(w.count - before), w.err
}

func runeReason(r rune) error {
	if r < 0 {
		return ErrOutOfRange
	}
	return checkScalar(uint32(r)).reason()
}

// Write consumes UTF-8 text from p and writes it in the Writer's form. A
// trailing incomplete sequence is held back until the next call completes
// it. The returned count is in bytes of p.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	read := 0
	if !w.state.Initial() {
		var cp uint32
		n, err := w.state.UTF8ToUTF32(&cp, p)
		switch err {
		case nil:
		case ErrIncomplete:
			return n, nil
		default:
			w.setError(err)
			return 0, err
		}
		if _, err := w.WriteRune(rune(cp)); err != nil {
			return n, err
		}
		read = n
	}

	bp := chunkPool.Get().(*[]byte)
	defer chunkPool.Put(bp)
	chunk := *bp
	unit := w.form.Encoding.UnitSize()
	for read < len(p) {
		res, err := Convert(chunk, p[read:], FormUTF8, w.form, &partialOptions)
		w.emit(chunk[:res.Written*unit])
		read += res.Read
		switch {
		case w.err != nil:
			return read, w.err
		case err == nil:
			return read, nil
		case errors.Is(err, ErrShortDst):
			continue
		case errors.Is(err, ErrIncomplete):
			n, _ := w.state.UTF8ToUTF32(nil, p[read:])
			return read + n, nil
		default:
			if se, ok := err.(*SequenceError); ok {
				se.Offset += read - res.Read
			}
			w.setError(err)
			return read, err
		}
	}
	return read, nil
}

// WriteString is like Write for a string.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush writes buffered output to the underlying writer. A pending partial
// sequence is kept.
func (w *Writer) Flush() error {
	w.setError(w.w.Flush())
	return w.err
}

// Result flushes and returns the total bytes produced and the final error
// state. Input ending inside a UTF-8 sequence is reported as a truncated
// *SequenceError.
func (w *Writer) Result() (int64, error) {
	if w.err == nil && !w.state.Initial() {
		w.setError(&SequenceError{Encoding: UTF8, Truncated: true})
	}
	w.Flush()
	return w.count, w.err
}
