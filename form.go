package utfconv

import (
	"encoding/binary"
	"fmt"
)

// Form is a byte-level serialization of an encoding: UTF-8, or UTF-16/UTF-32
// in a given byte order. A nil Order means the package default Order.
type Form struct {
	Encoding Encoding
	Order    binary.ByteOrder
}

var (
	FormUTF8 = Form{Encoding: UTF8}
	UTF16LE  = Form{Encoding: UTF16, Order: LE}
	UTF16BE  = Form{Encoding: UTF16, Order: BE}
	UTF32LE  = Form{Encoding: UTF32, Order: LE}
	UTF32BE  = Form{Encoding: UTF32, Order: BE}
)

func (f Form) String() string {
	if f.Encoding != UTF16 && f.Encoding != UTF32 {
		return f.Encoding.String()
	}
	if littleEndian(f.Order) {
		return f.Encoding.String() + "LE"
	}
	return f.Encoding.String() + "BE"
}

// Equal reports whether f and g serialize text identically.
func (f Form) Equal(g Form) bool {
	if f.Encoding != g.Encoding {
		return false
	}
	return f.Encoding == UTF8 || littleEndian(f.Order) == littleEndian(g.Order)
}

// Convert converts src, serialized as from, into dst, serialized as to.
// Result cursors count code units of the respective encodings; multiply by
// UnitSize for byte offsets. Byte-packed sources ignore a trailing partial unit.
func Convert(dst, src []byte, from, to Form, o *Options) (Result, error) {
	switch from.Encoding {
	case UTF8:
		return convertTo(dst, src8(src), to, o)
	case UTF16:
		return convertTo(dst, src16[Bytes16]{Bytes16{B: src, Order: from.Order}}, to, o)
	case UTF32:
		return convertTo(dst, src32[Bytes32]{Bytes32{B: src, Order: from.Order}}, to, o)
	}
	return Result{}, fmt.Errorf("%w: source %v", ErrUnknownEncoding, from.Encoding)
}

func convertTo[S source](dst []byte, s S, to Form, o *Options) (Result, error) {
	switch to.Encoding {
	case UTF8:
		return run(dst8(dst), s, o)
	case UTF16:
		return run(dst16[Bytes16]{Bytes16{B: dst, Order: to.Order}}, s, o)
	case UTF32:
		return run(dst32[Bytes32]{Bytes32{B: dst, Order: to.Order}}, s, o)
	}
	return Result{}, fmt.Errorf("%w: destination %v", ErrUnknownEncoding, to.Encoding)
}

// Bytes returns src converted from one form to another in a newly allocated slice.
func Bytes(src []byte, from, to Form) ([]byte, error) {
	res, err := Convert(nil, src, from, to, &Options{Mode: ModeQuery})
	if err != nil {
		return nil, err
	}
	dst := make([]byte, res.Size*to.Encoding.UnitSize())
	if _, err := Convert(dst, src, from, to, nil); err != nil {
		return nil, err
	}
	return dst, nil
}

// Valid reports whether src is well-formed in form f.
// A trailing partial UTF-16 or UTF-32 unit makes the input invalid.
func Valid(src []byte, f Form) bool {
	if size := f.Encoding.UnitSize(); size == 0 || len(src)%size != 0 {
		return false
	}
	_, err := Convert(nil, src, f, f, &Options{Mode: ModeQuery})
	return err == nil
}
