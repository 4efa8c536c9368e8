package utfconv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReaderTestSuite struct {
	suite.Suite
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderTestSuite))
}

func (s *ReaderTestSuite) readAll(r *Reader) ([]rune, error) {
	var out []rune
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
}

func (s *ReaderTestSuite) TestConstructors() {
	s.T().Run("NilReader", func(t *testing.T) {
		_, err := NewReader(nil, FormUTF8)
		assert.ErrorIs(t, err, ErrNilIO)
	})
	s.T().Run("SmallBufioReader", func(t *testing.T) {
		_, err := NewReaderSize(bufio.NewReaderSize(bytes.NewReader(nil), 16), FormUTF8, 64)
		assert.ErrorIs(t, err, ErrAlreadyBuffered)
	})
	s.T().Run("ReusesLargeBufioReader", func(t *testing.T) {
		br := bufio.NewReaderSize(bytes.NewReader([]byte("ok")), 128)
		r, err := NewReaderSize(br, FormUTF8, 64)
		require.NoError(t, err)
		assert.Same(t, br, r.r)
	})
	s.T().Run("UnknownEncoding", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(nil), Form{Encoding: 9})
		assert.ErrorIs(t, err, ErrUnknownEncoding)
	})
}

func (s *ReaderTestSuite) TestAllForms() {
	str := samples[5]
	for _, f := range []Form{FormUTF8, UTF16LE, UTF16BE, UTF32LE, UTF32BE} {
		src, err := Bytes([]byte(str), FormUTF8, f)
		s.Require().NoError(err)

		r, err := NewReader(iotest.OneByteReader(bytes.NewReader(src)), f)
		s.Require().NoError(err)
		got, err := s.readAll(r)
		s.ErrorIs(err, io.EOF, f.String())
		s.Equal([]rune(str), got, f.String())
		s.EqualValues(len(src), r.Count())
		s.True(r.IsEOF())
	}
}

func (s *ReaderTestSuite) TestRuneSizes() {
	r, _ := NewReader(bytes.NewReader(euroEmoji), FormUTF8)
	c, size, err := r.ReadRune()
	s.Require().NoError(err)
	s.Equal(rune(0x20AC), c)
	s.Equal(3, size)
	c, size, err = r.ReadRune()
	s.Require().NoError(err)
	s.Equal(rune(0x1F600), c)
	s.Equal(4, size)

	src, _ := Bytes(euroEmoji, FormUTF8, UTF16LE)
	r, _ = NewReader(bytes.NewReader(src), UTF16LE)
	_, size, _ = r.ReadRune()
	s.Equal(2, size)
	_, size, _ = r.ReadRune()
	s.Equal(4, size)
}

func (s *ReaderTestSuite) TestSniffsBOM() {
	src := append(append([]byte{}, BOM(UTF16LE)...), 'h', 0, 'i', 0)
	r, err := NewReader(bytes.NewReader(src), Form{})
	s.Require().NoError(err)
	got, err := s.readAll(r)
	s.ErrorIs(err, io.EOF)
	s.Equal([]rune("hi"), got)
	s.True(UTF16LE.Equal(r.Form()))
	s.EqualValues(6, r.Count())

	r, _ = NewReader(bytes.NewReader([]byte("plain")), Form{})
	got, _ = s.readAll(r)
	s.Equal([]rune("plain"), got)
	s.True(FormUTF8.Equal(r.Form()))
}

func (s *ReaderTestSuite) TestWithByteOrder() {
	r, _ := NewReader(bytes.NewReader([]byte{0xAC, 0x20}), Form{Encoding: UTF16})
	c, _, err := r.WithByteOrder(LE).ReadRune()
	s.Require().NoError(err)
	s.Equal(rune(0x20AC), c)
}

func (s *ReaderTestSuite) TestStickyInvalid() {
	r, _ := NewReader(bytes.NewReader([]byte{'a', 0xE2, 'b', 'c'}), FormUTF8)
	c, _, err := r.ReadRune()
	s.Require().NoError(err)
	s.Equal('a', c)

	_, _, err = r.ReadRune()
	s.ErrorIs(err, ErrInvalidContinuation)
	var se *SequenceError
	s.Require().ErrorAs(err, &se)
	s.Equal(1, se.Offset)

	_, _, again := r.ReadRune()
	s.Equal(err, again, "first error is sticky")
	n, rerr := r.Result()
	s.Equal(err, rerr)
	s.EqualValues(2, n)
}

func (s *ReaderTestSuite) TestTruncated() {
	r, _ := NewReader(bytes.NewReader([]byte{'a', 0xF0, 0x9F}), FormUTF8)
	_, err := s.readAll(r)
	s.ErrorIs(err, ErrIncomplete)

	r, _ = NewReader(bytes.NewReader([]byte{'a', 0, 0x3D}), UTF16LE)
	_, err = s.readAll(r)
	s.ErrorIs(err, io.ErrUnexpectedEOF)

	r, _ = NewReader(bytes.NewReader([]byte{0x3D, 0xD8}), UTF16LE)
	_, err = s.readAll(r)
	s.ErrorIs(err, ErrExpectingLowSurrogate)
	s.ErrorIs(err, ErrIncomplete)
}

func (s *ReaderTestSuite) TestInvalidUnits() {
	r, _ := NewReader(bytes.NewReader([]byte{0x00, 0xDC}), UTF16LE)
	_, _, err := r.ReadRune()
	s.ErrorIs(err, ErrMissingHighSurrogate)

	r, _ = NewReader(bytes.NewReader([]byte{'a', 0, 0x3D, 0xD8, 'b', 0}), UTF16LE)
	_, _, err = r.ReadRune()
	s.NoError(err)
	_, _, err = r.ReadRune()
	s.ErrorIs(err, ErrExpectingLowSurrogate)
	s.NotErrorIs(err, ErrIncomplete)
	var pe *SequenceError
	s.Require().ErrorAs(err, &pe)
	s.Equal(1, pe.Offset, "offset counts UTF-16 units, not bytes")

	r, _ = NewReader(bytes.NewReader([]byte{'a', 0, 0, 0, 0, 0, 0x11, 0}), UTF32LE)
	_, _, err = r.ReadRune()
	s.NoError(err)
	_, _, err = r.ReadRune()
	s.ErrorIs(err, ErrOutOfRange)
	var se *SequenceError
	s.Require().True(errors.As(err, &se))
	s.Equal(1, se.Offset)
}

func (s *ReaderTestSuite) TestUnderlyingError() {
	boom := errors.New("boom")
	r, _ := NewReader(iotest.ErrReader(boom), FormUTF8)
	_, _, err := r.ReadRune()
	s.ErrorIs(err, boom)
	s.Equal(boom, r.Err())
}
