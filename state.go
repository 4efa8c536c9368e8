package utfconv

// State carries a partially converted character between incremental calls.
// The zero value is the initial state. A State must only be used for one
// conversion direction at a time; calling a method whose direction does not
// match the pending data fails with ErrInvalidState.
//
// Layout: the top two bits tag the content.
//
//	tagBytes: bits 0-23 hold up to three pending UTF-8 bytes, bits 24-25 their count
//	tagLow:   bits 0-15 hold a low surrogate not yet delivered
//	tagHigh:  bits 0-15 hold a high surrogate waiting for its low half
type State uint32

const (
	tagShift   = 30
	countShift = 24
)

const (
	tagBytes State = 1 << tagShift
	tagLow   State = 2 << tagShift
	tagHigh  State = 3 << tagShift
	tagMask  State = 3 << tagShift
)

func (s State) tag() State { return s & tagMask }

// Initial reports whether s holds no pending data.
func (s State) Initial() bool { return s == 0 }

// Reset returns s to the initial state.
func (s *State) Reset() { *s = 0 }

func (s State) pending(buf *[4]byte) int {
	if s.tag() != tagBytes {
		return 0
	}
	n := int(s>>countShift) & 3
	for k := 0; k < n; k++ {
		buf[k] = byte(s >> (8 * k))
	}
	return n
}

func packBytes(b []byte) State {
	s := tagBytes | State(len(b))<<countShift
	for k, c := range b {
		s |= State(c) << (8 * k)
	}
	return s
}

// decode completes one UTF-8 character from the pending bytes plus src. It
// leaves s untouched except to record a still incomplete prefix.
func (s *State) decode(src []byte) (rune, int, error) {
	var buf [4]byte
	have := s.pending(&buf)
	if len(src) == 0 {
		return 0, 0, ErrIncomplete
	}
	take := min(len(buf)-have, len(src))
	copy(buf[have:], src[:take])
	r, size, f := decodeUTF8(buf[:have+take], 0)
	switch f {
	case faultNone:
		return r, size - have, nil
	case faultShort:
		*s = packBytes(buf[:have+take])
		return 0, take, ErrIncomplete
	}
	return 0, 0, &SequenceError{Encoding: UTF8, Reason: f.reason()}
}

// UTF8ToUTF16 converts the next character of UTF-8 src into one UTF-16 unit
// stored in *dst (dst may be nil). It returns:
//
//   - (n, nil) with n > 0: a character was completed by the first n bytes of
//     src. If it needs a surrogate pair, *dst is the high surrogate and the low
//     surrogate stays cached in s.
//   - (0, nil): the cached low surrogate was stored in *dst; src was not read.
//   - (len(src), ErrIncomplete): src ended inside a character; its bytes are
//     kept in s. An empty src changes nothing.
//   - (0, *SequenceError): the input is invalid and s is unchanged.
func (s *State) UTF8ToUTF16(dst *uint16, src []byte) (int, error) {
	switch s.tag() {
	case tagLow:
		if dst != nil {
			*dst = uint16(*s)
		}
		*s = 0
		return 0, nil
	case tagHigh:
		return 0, ErrInvalidState
	}
	r, n, err := s.decode(src)
	if err != nil {
		return n, err
	}
	if r >= surrSelf {
		hi, lo := splitSurrogates(r)
		if dst != nil {
			*dst = hi
		}
		*s = tagLow | State(lo)
		return n, nil
	}
	if dst != nil {
		*dst = uint16(r)
	}
	*s = 0
	return n, nil
}

// UTF8ToUTF32 converts the next character of UTF-8 src into *dst (dst may be
// nil). Results are as for UTF8ToUTF16, except that no surrogate is ever cached.
func (s *State) UTF8ToUTF32(dst *uint32, src []byte) (int, error) {
	if t := s.tag(); t != 0 && t != tagBytes {
		return 0, ErrInvalidState
	}
	r, n, err := s.decode(src)
	if err != nil {
		return n, err
	}
	if dst != nil {
		*dst = uint32(r)
	}
	*s = 0
	return n, nil
}

// UTF16ToUTF8 feeds one UTF-16 unit and writes any completed character to dst
// as UTF-8, returning the bytes written. A high surrogate is cached in s and
// yields (0, nil). A unit that cannot follow the pending data is rejected with
// s unchanged; so is a dst shorter than the encoded character (ErrShortDst).
func (s *State) UTF16ToUTF8(dst []byte, u uint16) (int, error) {
	var r rune
	switch s.tag() {
	case tagHigh:
		if !isLowSurrogate(u) {
			return 0, &SequenceError{Encoding: UTF16, Reason: ErrExpectingLowSurrogate}
		}
		r = combineSurrogates(uint16(*s), u)
	case 0:
		switch {
		case isHighSurrogate(u):
			*s = tagHigh | State(u)
			return 0, nil
		case isLowSurrogate(u):
			return 0, &SequenceError{Encoding: UTF16, Reason: ErrMissingHighSurrogate}
		}
		r = rune(u)
	default:
		return 0, ErrInvalidState
	}
	if len(dst) < widthUTF8(r) {
		return 0, ErrShortDst
	}
	*s = 0
	return encodeUTF8(dst, 0, r), nil
}

// UTF32ToUTF8 writes the code point r to dst as UTF-8 and returns the bytes
// written. s must be in the initial state; it is accepted for symmetry with
// the other directions.
func (s *State) UTF32ToUTF8(dst []byte, r rune) (int, error) {
	if *s != 0 {
		return 0, ErrInvalidState
	}
	if r < 0 {
		return 0, &SequenceError{Encoding: UTF32, Reason: ErrOutOfRange}
	}
	if f := checkScalar(uint32(r)); f != faultNone {
		return 0, &SequenceError{Encoding: UTF32, Reason: f.reason()}
	}
	if len(dst) < widthUTF8(r) {
		return 0, ErrShortDst
	}
	return encodeUTF8(dst, 0, r), nil
}
