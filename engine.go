package utfconv

// utf8Lead classifies a UTF-8 lead byte. It returns the sequence length and
// the range the second byte must fall in; a second byte that is a
// continuation but lies outside [lo, hi] is reported as narrow (overlong,
// surrogate or out of range depending on the lead). A size of 0 means c
// cannot start a sequence and narrow holds the reason.
func utf8Lead(c byte) (size int, lo, hi byte, narrow fault) {
	switch {
	case c < 0x80:
		return 1, 0, 0, faultNone
	case c < 0xC0:
		return 0, 0, 0, faultLead
	case c < 0xC2:
		return 0, 0, 0, faultOverlong
	case c < 0xE0:
		return 2, 0x80, 0xBF, faultNone
	case c == 0xE0:
		return 3, 0xA0, 0xBF, faultOverlong
	case c == 0xED:
		return 3, 0x80, 0x9F, faultSurrogate
	case c < 0xF0:
		return 3, 0x80, 0xBF, faultNone
	case c == 0xF0:
		return 4, 0x90, 0xBF, faultOverlong
	case c < 0xF4:
		return 4, 0x80, 0xBF, faultNone
	case c == 0xF4:
		return 4, 0x80, 0x8F, faultRange
	}
	return 0, 0, 0, faultLead
}

func isContinuation(c byte) bool { return c&0xC0 == 0x80 }

// decodeUTF8 decodes the sequence starting at b[i].
func decodeUTF8(b []byte, i int) (rune, int, fault) {
	c0 := b[i]
	if c0 < 0x80 {
		return rune(c0), 1, faultNone
	}
	size, lo, hi, narrow := utf8Lead(c0)
	if size == 0 {
		return 0, 0, narrow
	}
	n := len(b) - i
	if n < 2 {
		return 0, 0, faultShort
	}
	c1 := b[i+1]
	if !isContinuation(c1) {
		return 0, 0, faultContinuation
	}
	if c1 < lo || hi < c1 {
		return 0, 0, narrow
	}
	if size == 2 {
		return rune(c0&0x1F)<<6 | rune(c1&0x3F), 2, faultNone
	}
	if n < 3 {
		return 0, 0, faultShort
	}
	c2 := b[i+2]
	if !isContinuation(c2) {
		return 0, 0, faultContinuation
	}
	if size == 3 {
		return rune(c0&0x0F)<<12 | rune(c1&0x3F)<<6 | rune(c2&0x3F), 3, faultNone
	}
	if n < 4 {
		return 0, 0, faultShort
	}
	c3 := b[i+3]
	if !isContinuation(c3) {
		return 0, 0, faultContinuation
	}
	return rune(c0&0x07)<<18 | rune(c1&0x3F)<<12 | rune(c2&0x3F)<<6 | rune(c3&0x3F), 4, faultNone
}

func decodeUTF8Unchecked(b []byte, i int) (rune, int) {
	c0 := b[i]
	switch {
	case c0 < 0x80:
		return rune(c0), 1
	case c0 < 0xE0:
		return rune(c0&0x1F)<<6 | rune(b[i+1]&0x3F), 2
	case c0 < 0xF0:
		return rune(c0&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F), 3
	}
	return rune(c0&0x07)<<18 | rune(b[i+1]&0x3F)<<12 | rune(b[i+2]&0x3F)<<6 | rune(b[i+3]&0x3F), 4
}

func widthUTF8(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < surrSelf:
		return 3
	}
	return 4
}

// encodeUTF8 writes r at b[i:] and returns the number of bytes written.
// The caller guarantees room for widthUTF8(r) bytes.
func encodeUTF8(b []byte, i int, r rune) int {
	switch {
	case r < 0x80:
		b[i] = byte(r)
		return 1
	case r < 0x800:
		_ = b[i+1]
		b[i] = 0xC0 | byte(r>>6)
		b[i+1] = 0x80 | byte(r)&0x3F
		return 2
	case r < surrSelf:
		_ = b[i+2]
		b[i] = 0xE0 | byte(r>>12)
		b[i+1] = 0x80 | byte(r>>6)&0x3F
		b[i+2] = 0x80 | byte(r)&0x3F
		return 3
	}
	_ = b[i+3]
	b[i] = 0xF0 | byte(r>>18)
	b[i+1] = 0x80 | byte(r>>12)&0x3F
	b[i+2] = 0x80 | byte(r>>6)&0x3F
	b[i+3] = 0x80 | byte(r)&0x3F
	return 4
}

func isHighSurrogate(u uint16) bool { return surr1 <= u && u < surr2 }
func isLowSurrogate(u uint16) bool  { return surr2 <= u && u < surr3 }

func combineSurrogates(hi, lo uint16) rune {
	return surrSelf + (rune(hi)-surr1)<<10 + (rune(lo) - surr2)
}

func splitSurrogates(r rune) (hi, lo uint16) {
	r -= surrSelf
	return uint16(r>>10) + surr1, uint16(r&0x3FF) + surr2
}

func decodeUTF16[S Units[uint16]](s S, i int) (rune, int, fault) {
	u := s.At(i)
	if u < surr1 || surr3 <= u {
		return rune(u), 1, faultNone
	}
	if !isHighSurrogate(u) {
		return 0, 0, faultMissingHigh
	}
	if i+1 >= s.Len() {
		return 0, 0, faultShortExpectLow
	}
	u2 := s.At(i + 1)
	if !isLowSurrogate(u2) {
		return 0, 0, faultExpectLow
	}
	return combineSurrogates(u, u2), 2, faultNone
}

func decodeUTF16Unchecked[S Units[uint16]](s S, i int) (rune, int) {
	u := s.At(i)
	if isHighSurrogate(u) {
		return combineSurrogates(u, s.At(i+1)), 2
	}
	return rune(u), 1
}

func widthUTF16(r rune) int {
	if r < surrSelf {
		return 1
	}
	return 2
}

func encodeUTF16[D Units[uint16]](d D, i int, r rune) int {
	if r < surrSelf {
		d.Set(i, uint16(r))
		return 1
	}
	hi, lo := splitSurrogates(r)
	d.Set(i, hi)
	d.Set(i+1, lo)
	return 2
}

// checkScalar validates a code point taken from UTF-32 or a caller.
func checkScalar(v uint32) fault {
	switch {
	case v > maxRune:
		return faultRange
	case surr1 <= v && v < surr3:
		return faultSurrogate
	}
	return faultNone
}

func decodeUTF32[S Units[uint32]](s S, i int) (rune, int, fault) {
	v := s.At(i)
	if f := checkScalar(v); f != faultNone {
		return 0, 0, f
	}
	return rune(v), 1, faultNone
}

// ValidRune reports whether r is a Unicode scalar value.
func ValidRune(r rune) bool {
	return r >= 0 && checkScalar(uint32(r)) == faultNone
}

// RuneLen returns the number of code units needed to encode r in e, or -1
// if r is not a scalar value or e is unknown.
func RuneLen(r rune, e Encoding) int {
	if !ValidRune(r) {
		return -1
	}
	switch e {
	case UTF8:
		return widthUTF8(r)
	case UTF16:
		return widthUTF16(r)
	case UTF32:
		return 1
	}
	return -1
}
