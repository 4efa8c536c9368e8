package utfconv

// source decodes one character at a time from a unit buffer.
type source interface {
	len() int
	encoding() Encoding
	decode(i int) (rune, int, fault)
	decodeUnchecked(i int) (rune, int)
}

// sink encodes characters into a unit buffer.
type sink interface {
	cap() int
	width(r rune) int
	// put writes r at unit i and returns the units written. The caller
	// guarantees room for width(r) units.
	put(i int, r rune) int
}

type src8 []byte

func (s src8) len() int                          { return len(s) }
func (s src8) encoding() Encoding                { return UTF8 }
func (s src8) decode(i int) (rune, int, fault)   { return decodeUTF8(s, i) }
func (s src8) decodeUnchecked(i int) (rune, int) { return decodeUTF8Unchecked(s, i) }

type src16[S Units[uint16]] struct{ u S }

func (s src16[S]) len() int                          { return s.u.Len() }
func (s src16[S]) encoding() Encoding                { return UTF16 }
func (s src16[S]) decode(i int) (rune, int, fault)   { return decodeUTF16(s.u, i) }
func (s src16[S]) decodeUnchecked(i int) (rune, int) { return decodeUTF16Unchecked(s.u, i) }

type src32[S Units[uint32]] struct{ u S }

func (s src32[S]) len() int                          { return s.u.Len() }
func (s src32[S]) encoding() Encoding                { return UTF32 }
func (s src32[S]) decode(i int) (rune, int, fault)   { return decodeUTF32(s.u, i) }
func (s src32[S]) decodeUnchecked(i int) (rune, int) { return rune(s.u.At(i)), 1 }

type dst8 []byte

func (d dst8) cap() int              { return len(d) }
func (d dst8) width(r rune) int      { return widthUTF8(r) }
func (d dst8) put(i int, r rune) int { return encodeUTF8(d, i, r) }

type dst16[D Units[uint16]] struct{ u D }

func (d dst16[D]) cap() int              { return d.u.Len() }
func (d dst16[D]) width(r rune) int      { return widthUTF16(r) }
func (d dst16[D]) put(i int, r rune) int { return encodeUTF16(d.u, i, r) }

type dst32[D Units[uint32]] struct{ u D }

func (d dst32[D]) cap() int       { return d.u.Len() }
func (d dst32[D]) width(rune) int { return 1 }
func (d dst32[D]) put(i int, r rune) int {
	d.u.Set(i, uint32(r))
	return 1
}

// run is the single conversion loop behind every direction.
//
// The first pass converts while the destination has room. If it runs out, a
// second pass counts the unconverted remainder without writing, so the total
// is exact without rescanning what was already converted.
func run[S source, D sink](d D, s S, o *Options) (Result, error) {
	if o == nil {
		o = &defaultOptions
	}
	if o.Mode == ModeUnchecked {
		return runUnchecked(d, s, o.Terminated), nil
	}

	n := s.len()
	limit := o.limit()
	i, w := 0, 0

	if o.Mode != ModeQuery {
		room := d.cap()
		for i < n {
			r, size, f := s.decode(i)
			if f != faultNone {
				return Result{Read: i, Written: w}, sequenceError(s.encoding(), i, f)
			}
			k := d.width(r)
			if k > limit-w {
				return Result{Read: i, Written: w}, ErrTooLong
			}
			if w+k > room {
				if o.Mode == ModePartial {
					return Result{Read: i, Written: w, Size: w + k}, ErrShortDst
				}
				break
			}
			w += d.put(w, r)
			i += size
			if r == 0 && o.Terminated {
				return Result{Read: i, Written: w, Size: w}, nil
			}
		}
		if i >= n {
			return Result{Read: i, Written: w, Size: w}, nil
		}
	}

	total, j := w, i
	for j < n {
		r, size, f := s.decode(j)
		if f != faultNone {
			return Result{Read: j, Written: w}, sequenceError(s.encoding(), j, f)
		}
		var ok bool
		if total, ok = addSize(total, d.width(r), limit); !ok {
			return Result{Read: j, Written: w}, ErrTooLong
		}
		j += size
		if r == 0 && o.Terminated {
			break
		}
	}
	if o.Mode == ModeQuery {
		return Result{Read: j, Size: total}, nil
	}
	return Result{Read: i, Written: w, Size: total}, ErrShortDst
}

func runUnchecked[S source, D sink](d D, s S, terminated bool) Result {
	n := s.len()
	i, w := 0, 0
	for i < n {
		r, size := s.decodeUnchecked(i)
		w += d.put(w, r)
		i += size
		if r == 0 && terminated {
			break
		}
	}
	return Result{Read: i, Written: w, Size: w}
}

// UTF8ToUTF16 converts UTF-8 src into dst.
func UTF8ToUTF16[D Units[uint16]](dst D, src []byte, o *Options) (Result, error) {
	return run(dst16[D]{dst}, src8(src), o)
}

// UTF16ToUTF8 converts UTF-16 src into dst.
func UTF16ToUTF8[S Units[uint16]](dst []byte, src S, o *Options) (Result, error) {
	return run(dst8(dst), src16[S]{src}, o)
}

// UTF8ToUTF32 converts UTF-8 src into dst.
func UTF8ToUTF32[D Units[uint32]](dst D, src []byte, o *Options) (Result, error) {
	return run(dst32[D]{dst}, src8(src), o)
}

// UTF32ToUTF8 converts UTF-32 src into dst.
func UTF32ToUTF8[S Units[uint32]](dst []byte, src S, o *Options) (Result, error) {
	return run(dst8(dst), src32[S]{src}, o)
}

// UTF16ToUTF32 converts UTF-16 src into dst.
func UTF16ToUTF32[D Units[uint32], S Units[uint16]](dst D, src S, o *Options) (Result, error) {
	return run(dst32[D]{dst}, src16[S]{src}, o)
}

// UTF32ToUTF16 converts UTF-32 src into dst.
func UTF32ToUTF16[D Units[uint16], S Units[uint32]](dst D, src S, o *Options) (Result, error) {
	return run(dst16[D]{dst}, src32[S]{src}, o)
}
