// Package locale emulates the C multibyte conversion functions of <stdlib.h>
// and <uchar.h> for a UTF-8 locale on top of utfconv.
//
// Results follow the C integer conventions rather than Go errors: -1 for an
// invalid sequence (EILSEQ), -2 for an incomplete one and -3 when a cached
// low surrogate is delivered. A nil slice stands for a NULL pointer.
package locale

import (
	"golang.org/x/exp/constraints"

	"github.com/oy3o/utfconv"
)

// MbCurMax is the longest multibyte character in bytes.
const MbCurMax = 4

// C return codes.
const (
	Illegal    = -1 // invalid sequence, errno EILSEQ
	Incomplete = -2 // input ended inside a character
	Stored     = -3 // a cached low surrogate was delivered
)

// Locale owns the fallback conversion states used when a caller passes a
// nil state. Each restartable function has its own. A Locale is not safe for
// concurrent use when relying on those fallbacks; pass explicit states
// instead.
type Locale struct {
	mbrlen     utfconv.State
	mbrtoc16   utfconv.State
	mbrtoc32   utfconv.State
	c16rtomb   utfconv.State
	c32rtomb   utfconv.State
	mbsrtoc16s utfconv.State
	mbsrtoc32s utfconv.State
	c16srtombs utfconv.State
	c32srtombs utfconv.State
}

// Default is the shared Locale, the counterpart of the C library's hidden
// static states.
var Default = &Locale{}

var (
	queryOptions = utfconv.Options{Mode: utfconv.ModeQuery, Terminated: true}
	copyOptions  = utfconv.Options{Mode: utfconv.ModePartial, Terminated: true}
)

func or(ps, fallback *utfconv.State) *utfconv.State {
	if ps != nil {
		return ps
	}
	return fallback
}

// Mbsinit reports whether ps describes the initial conversion state.
func Mbsinit(ps *utfconv.State) bool {
	return ps == nil || ps.Initial()
}

// Mblen returns the length of the character at the start of s, 0 for NUL,
// or -1 when s does not start with a complete valid character. UTF-8 has no
// shift state, so Mblen(nil) is 0.
func (l *Locale) Mblen(s []byte) int {
	if s == nil {
		return 0
	}
	var (
		st utfconv.State
		c  uint32
	)
	n, err := st.UTF8ToUTF32(&c, s)
	switch {
	case err != nil:
		return Illegal
	case c == 0:
		return 0
	}
	return n
}

// Mbrlen is Mbrtoc32 without storing the character.
func (l *Locale) Mbrlen(s []byte, ps *utfconv.State) int {
	return decode32(nil, s, or(ps, &l.mbrlen))
}

// Mbrtoc32 decodes the next character of s into *pc32 (pc32 may be nil) and
// returns the bytes consumed, 0 for NUL, -1 or -2. A nil s resets the state.
func (l *Locale) Mbrtoc32(pc32 *uint32, s []byte, ps *utfconv.State) int {
	return decode32(pc32, s, or(ps, &l.mbrtoc32))
}

func decode32(pc32 *uint32, s []byte, ps *utfconv.State) int {
	if s == nil {
		ps.Reset()
		return 0
	}
	var c uint32
	n, err := ps.UTF8ToUTF32(&c, s)
	switch {
	case err == utfconv.ErrIncomplete:
		return Incomplete
	case err != nil:
		return Illegal
	}
	if pc32 != nil {
		*pc32 = c
	}
	if c == 0 {
		return 0
	}
	return n
}

// Mbrtoc16 is like Mbrtoc32 but produces UTF-16 units. A supplementary
// character stores its high surrogate and caches the low one; the next call
// delivers it without reading s and returns -3.
func (l *Locale) Mbrtoc16(pc16 *uint16, s []byte, ps *utfconv.State) int {
	ps = or(ps, &l.mbrtoc16)
	if s == nil {
		ps.Reset()
		return 0
	}
	var u uint16
	n, err := ps.UTF8ToUTF16(&u, s)
	switch {
	case err == utfconv.ErrIncomplete:
		return Incomplete
	case err != nil:
		return Illegal
	}
	if pc16 != nil {
		*pc16 = u
	}
	switch {
	case n == 0:
		return Stored
	case u == 0:
		return 0
	}
	return n
}

// C16rtomb writes the character completed by c16 to s and returns the bytes
// written. A high surrogate is cached and yields 0. s needs room for
// MbCurMax bytes. A nil s resets the state and returns 1.
func (l *Locale) C16rtomb(s []byte, c16 uint16, ps *utfconv.State) int {
	ps = or(ps, &l.c16rtomb)
	if s == nil {
		ps.Reset()
		return 1
	}
	n, err := ps.UTF16ToUTF8(s, c16)
	if err != nil {
		return Illegal
	}
	return n
}

// C32rtomb writes c32 to s and returns the bytes written, or -1 if c32 is
// not a Unicode scalar value.
func (l *Locale) C32rtomb(s []byte, c32 uint32, ps *utfconv.State) int {
	ps = or(ps, &l.c32rtomb)
	if s == nil {
		ps.Reset()
		return 1
	}
	n, err := ps.UTF32ToUTF8(s, rune(c32))
	if err != nil {
		return Illegal
	}
	return n
}

// terminated reports whether the conversion consumed a NUL.
func terminated[U constraints.Unsigned](src []U, read int) bool {
	return read > 0 && read <= len(src) && src[read-1] == 0
}

// whole maps a bulk conversion result to the C return value: units stored
// excluding the NUL, or -1.
func whole[U constraints.Unsigned](res utfconv.Result, err error, src []U, query bool) int {
	n := res.Written
	if query {
		n = res.Size
	}
	switch {
	case err == nil:
	case !query && err == utfconv.ErrShortDst:
		return n
	default:
		return Illegal
	}
	if terminated(src, res.Read) {
		n--
	}
	return n
}

// Mbstoc16s converts the NUL-terminated string src into at most len(dst)
// units and returns the units stored, not counting the NUL, which is only
// stored if it fits. A nil dst returns the length src needs. The end of the
// slice terminates src as well.
func Mbstoc16s(dst []uint16, src []byte) int {
	if dst == nil {
		res, err := utfconv.UTF8ToUTF16(utfconv.Native16(nil), src, &queryOptions)
		return whole(res, err, src, true)
	}
	res, err := utfconv.UTF8ToUTF16(utfconv.Native16(dst), src, &copyOptions)
	return whole(res, err, src, false)
}

// Mbstoc32s is Mbstoc16s producing UTF-32.
func Mbstoc32s(dst []uint32, src []byte) int {
	if dst == nil {
		res, err := utfconv.UTF8ToUTF32(utfconv.Native32(nil), src, &queryOptions)
		return whole(res, err, src, true)
	}
	res, err := utfconv.UTF8ToUTF32(utfconv.Native32(dst), src, &copyOptions)
	return whole(res, err, src, false)
}

// C16stombs converts NUL-terminated UTF-16 into at most len(dst) bytes of
// UTF-8, never splitting a character.
func C16stombs(dst []byte, src []uint16) int {
	if dst == nil {
		res, err := utfconv.UTF16ToUTF8(nil, utfconv.Native16(src), &queryOptions)
		return whole(res, err, src, true)
	}
	res, err := utfconv.UTF16ToUTF8(dst, utfconv.Native16(src), &copyOptions)
	return whole(res, err, src, false)
}

// C32stombs is C16stombs for UTF-32 input.
func C32stombs(dst []byte, src []uint32) int {
	if dst == nil {
		res, err := utfconv.UTF32ToUTF8(nil, utfconv.Native32(src), &queryOptions)
		return whole(res, err, src, true)
	}
	res, err := utfconv.UTF32ToUTF8(dst, utfconv.Native32(src), &copyOptions)
	return whole(res, err, src, false)
}

// Mbsrtoc16s is the restartable Mbstoc16s. Unless dst is nil, *src is
// advanced past the converted input and set to nil once the NUL has been
// stored. On -1 it points at the offending character. With a nil dst
// neither *src nor *ps change.
func (l *Locale) Mbsrtoc16s(dst []uint16, src *[]byte, ps *utfconv.State) int {
	ps = or(ps, &l.mbsrtoc16s)
	return mbsrto(dst, src, ps, func(st *utfconv.State, s []byte) (uint16, int, error) {
		var u uint16
		n, err := st.UTF8ToUTF16(&u, s)
		return u, n, err
	})
}

// Mbsrtoc32s is the restartable Mbstoc32s.
func (l *Locale) Mbsrtoc32s(dst []uint32, src *[]byte, ps *utfconv.State) int {
	ps = or(ps, &l.mbsrtoc32s)
	return mbsrto(dst, src, ps, func(st *utfconv.State, s []byte) (uint32, int, error) {
		var c uint32
		n, err := st.UTF8ToUTF32(&c, s)
		return c, n, err
	})
}

func mbsrto[U uint16 | uint32](dst []U, src *[]byte, ps *utfconv.State, next func(*utfconv.State, []byte) (U, int, error)) int {
	st := ps
	if dst == nil {
		tmp := *ps
		st = &tmp
	}
	s := *src
	n := 0
	for dst == nil || n < len(dst) {
		u, k, err := next(st, s)
		if err == utfconv.ErrIncomplete && k == 0 {
			// end of slice
			if !st.Initial() {
				return Illegal
			}
			break
		}
		if err != nil && err != utfconv.ErrIncomplete {
			if dst != nil {
				*src = s
			}
			return Illegal
		}
		s = s[k:]
		if err != nil {
			continue
		}
		if u == 0 && k > 0 {
			if dst != nil {
				dst[n] = 0
				*src = nil
			}
			return n
		}
		if dst != nil {
			dst[n] = u
		}
		n++
	}
	if dst != nil {
		*src = s
	}
	return n
}

// C16srtombs is the restartable C16stombs. A character that does not fit in
// the rest of dst is left unconverted, with *src and *ps positioned on it.
func (l *Locale) C16srtombs(dst []byte, src *[]uint16, ps *utfconv.State) int {
	ps = or(ps, &l.c16srtombs)
	return srtombs(dst, src, ps, (*utfconv.State).UTF16ToUTF8)
}

// C32srtombs is the restartable C32stombs.
func (l *Locale) C32srtombs(dst []byte, src *[]uint32, ps *utfconv.State) int {
	ps = or(ps, &l.c32srtombs)
	return srtombs(dst, src, ps, func(st *utfconv.State, b []byte, c uint32) (int, error) {
		return st.UTF32ToUTF8(b, rune(c))
	})
}

func srtombs[U uint16 | uint32](dst []byte, src *[]U, ps *utfconv.State, put func(*utfconv.State, []byte, U) (int, error)) int {
	st := ps
	if dst == nil {
		tmp := *ps
		st = &tmp
	}
	var buf [MbCurMax]byte
	s := *src
	n := 0
	for len(s) > 0 {
		prev := *st
		k, err := put(st, buf[:], s[0])
		if err != nil {
			if dst != nil {
				*src = s
			}
			return Illegal
		}
		if dst != nil {
			if n+k > len(dst) {
				*st = prev
				break
			}
			copy(dst[n:], buf[:k])
		}
		s = s[1:]
		if k == 1 && buf[0] == 0 {
			if dst != nil {
				*src = nil
			}
			return n
		}
		n += k
	}
	if len(s) == 0 && !st.Initial() {
		return Illegal
	}
	if dst != nil {
		*src = s
	}
	return n
}
