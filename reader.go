package utfconv

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Reader decodes runes from a byte stream in a given Form. UTF-8 is fed to
// the incremental decoder one byte at a time, so sequences split across
// underlying reads are handled without look-ahead.
//
// The first error is latched; later calls return it.
type Reader struct {
	r     *bufio.Reader
	form  Form
	sniff bool
	state State
	count int64 // bytes consumed
	err   error
}

var _ io.RuneReader = (*Reader)(nil)

// NewReaderSize creates a Reader with at least the given buffer size. A
// zero-value Form detects the form from a byte order mark, defaulting to
// UTF-8 when there is none; the mark is consumed.
//
// A *bufio.Reader with a large enough buffer is used as is; a smaller one is
// refused with ErrAlreadyBuffered to prevent double buffering.
func NewReaderSize(r io.Reader, f Form, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	if f.Encoding != 0 && f.Encoding.UnitSize() == 0 {
		return nil, ErrUnknownEncoding
	}
	if size <= 0 {
		size = CHUNK_SIZE
	}
	br, ok := r.(*bufio.Reader)
	switch {
	case !ok:
		br = bufio.NewReaderSize(r, size)
	case br.Size() < size:
		return nil, ErrAlreadyBuffered
	}
	return &Reader{r: br, form: f, sniff: f.Encoding == 0}, nil
}

// NewReader creates a Reader with a default buffer size.
func NewReader(r io.Reader, f Form) (*Reader, error) {
	return NewReaderSize(r, f, 0)
}

// WithByteOrder sets the byte order of UTF-16 and UTF-32 input and returns
// the Reader for chaining.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.form.Order = order
	return r
}

// Form returns the form being decoded. Before the first read of a sniffing
// Reader it is the zero Form.
func (r *Reader) Form() Form { return r.form }

// Count returns the bytes consumed so far, a byte order mark included.
func (r *Reader) Count() int64 { return r.count }

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

// IsEOF reports whether the stream ended cleanly.
func (r *Reader) IsEOF() bool { return r.err == io.EOF }

// Result returns the total bytes consumed and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) sniffBOM() {
	r.sniff = false
	head, _ := r.r.Peek(4)
	f, n, ok := DetectBOM(head)
	if !ok {
		r.form = FormUTF8
		return
	}
	r.form = f
	discarded, err := r.r.Discard(n)
	r.count += int64(discarded)
	r.setError(err)
}

// ReadRune reads one character and returns it with its size in bytes.
// Invalid input yields a *SequenceError whose Offset is the offset of the
// sequence in code units from the start of the stream. A stream ending inside
// a character yields a truncated *SequenceError, or io.ErrUnexpectedEOF when
// it ends inside a UTF-16 or UTF-32 unit.
func (r *Reader) ReadRune() (rune, int, error) {
	if r.err != nil {
		return 0, 0, r.err
	}
	if r.sniff {
		r.sniffBOM()
		if r.err != nil {
			return 0, 0, r.err
		}
	}
	start := r.count
	var (
		cp   rune
		size int
		err  error
	)
	switch r.form.Encoding {
	case UTF8:
		cp, size, err = r.readUTF8(start)
	case UTF16:
		cp, size, err = r.readUTF16(start)
	case UTF32:
		cp, size, err = r.readUTF32(start)
	default:
		err = ErrUnknownEncoding
	}
	r.setError(err)
	return cp, size, r.err
}

func (r *Reader) readUTF8(start int64) (rune, int, error) {
	var (
		one [1]byte
		cp  uint32
	)
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF && !r.state.Initial() {
				return 0, int(r.count - start), &SequenceError{Encoding: UTF8, Offset: int(start), Truncated: true}
			}
			return 0, int(r.count - start), err
		}
		one[0] = b
		_, err = r.state.UTF8ToUTF32(&cp, one[:])
		switch {
		case err == nil:
			r.count++
			return rune(cp), int(r.count - start), nil
		case err == ErrIncomplete:
			r.count++
		default:
			if se, ok := err.(*SequenceError); ok {
				se.Offset = int(start)
			}
			return 0, int(r.count - start), err
		}
	}
}

func (r *Reader) readUnit(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.count += int64(n)
	if err == io.ErrUnexpectedEOF || (err == io.EOF && n > 0) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (r *Reader) readUTF16(start int64) (rune, int, error) {
	var buf [2]byte
	order := orderOr(r.form.Order)
	if err := r.readUnit(buf[:]); err != nil {
		return 0, int(r.count - start), err
	}
	u := order.Uint16(buf[:])
	switch {
	case isLowSurrogate(u):
		return 0, 2, &SequenceError{Encoding: UTF16, Offset: int(start) / 2, Reason: ErrMissingHighSurrogate}
	case !isHighSurrogate(u):
		return rune(u), 2, nil
	}
	if err := r.readUnit(buf[:]); err != nil {
		if err == io.EOF {
			err = &SequenceError{Encoding: UTF16, Offset: int(start) / 2, Reason: ErrExpectingLowSurrogate, Truncated: true}
		}
		return 0, int(r.count - start), err
	}
	u2 := order.Uint16(buf[:])
	if !isLowSurrogate(u2) {
		return 0, 4, &SequenceError{Encoding: UTF16, Offset: int(start) / 2, Reason: ErrExpectingLowSurrogate}
	}
	return combineSurrogates(u, u2), 4, nil
}

func (r *Reader) readUTF32(start int64) (rune, int, error) {
	var buf [4]byte
	if err := r.readUnit(buf[:]); err != nil {
		return 0, int(r.count - start), err
	}
	v := orderOr(r.form.Order).Uint32(buf[:])
	if f := checkScalar(v); f != faultNone {
		return 0, 4, sequenceError(UTF32, int(start)/4, f)
	}
	return rune(v), 4, nil
}
