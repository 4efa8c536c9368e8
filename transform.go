package utfconv

import (
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var partialOptions = Options{Mode: ModePartial}

// Transformer adapts Convert to the golang.org/x/text/transform contract, so
// it can drive transform.NewReader, transform.NewWriter and transform.Chain.
// Invalid input stops the transformation with a *SequenceError whose Offset
// is in source units relative to the src of the failing call.
type Transformer struct {
	transform.NopResetter
	From, To Form
}

var _ transform.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer converting from one form to another.
func NewTransformer(from, to Form) *Transformer {
	return &Transformer{From: from, To: to}
}

// Transform implements transform.Transformer.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	res, err := Convert(dst, src, t.From, t.To, &partialOptions)
	nDst = res.Written * t.To.Encoding.UnitSize()
	nSrc = res.Read * t.From.Encoding.UnitSize()
	switch {
	case err == nil:
		if nSrc == len(src) {
			return nDst, nSrc, nil
		}
		// A partial unit is left over.
		if !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		return nDst, nSrc, &SequenceError{Encoding: t.From.Encoding, Offset: res.Read, Truncated: true}
	case errors.Is(err, ErrShortDst):
		return nDst, nSrc, transform.ErrShortDst
	case errors.Is(err, ErrIncomplete) && !atEOF:
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, err
}

// NewDecoder returns a strict decoder from f to UTF-8. Together with
// NewEncoder it makes Form an encoding.Encoding.
func (f Form) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: NewTransformer(f, FormUTF8)}
}

// NewEncoder returns a strict encoder from UTF-8 to f.
func (f Form) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: NewTransformer(FormUTF8, f)}
}

var _ encoding.Encoding = Form{}
