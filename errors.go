package utfconv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSequence is matched by every *SequenceError, whatever its reason.
	ErrInvalidSequence = errors.New("utfconv: invalid sequence")

	// ErrInvalidLead indicates a UTF-8 continuation byte in lead position or a lead byte above 0xF4.
	ErrInvalidLead = errors.New("utfconv: invalid lead byte")

	// ErrInvalidContinuation indicates a UTF-8 sequence interrupted by a byte that is not 10xxxxxx.
	ErrInvalidContinuation = errors.New("utfconv: invalid continuation byte")

	// ErrOverlong indicates a UTF-8 sequence longer than the minimal encoding of its code point.
	ErrOverlong = errors.New("utfconv: overlong encoding")

	// ErrSurrogate indicates a code point in [0xD800, 0xDFFF] outside of a UTF-16 pair.
	ErrSurrogate = errors.New("utfconv: surrogate code point")

	// ErrOutOfRange indicates a code point above 0x10FFFF.
	ErrOutOfRange = errors.New("utfconv: code point out of range")

	// ErrExpectingLowSurrogate indicates a UTF-16 high surrogate that is not followed by a low surrogate.
	ErrExpectingLowSurrogate = errors.New("utfconv: expecting low surrogate")

	// ErrMissingHighSurrogate indicates a UTF-16 low surrogate with no preceding high surrogate.
	ErrMissingHighSurrogate = errors.New("utfconv: missing high surrogate")

	// ErrIncomplete indicates a valid prefix of a multi-unit sequence with the rest not yet available.
	// It is not fatal for callers that can supply more input.
	ErrIncomplete = errors.New("utfconv: incomplete sequence")

	// ErrShortDst indicates the destination cannot hold the next complete character.
	ErrShortDst = errors.New("utfconv: destination too small")

	// ErrTooLong indicates the required size would overflow the size accumulator.
	ErrTooLong = errors.New("utfconv: input too long")

	// ErrInvalidState indicates a State carrying the pending data of a different conversion direction.
	ErrInvalidState = errors.New("utfconv: state belongs to another conversion")

	// ErrUnknownEncoding indicates a Form or encoding name that is not one of UTF-8, UTF-16 or UTF-32.
	ErrUnknownEncoding = errors.New("utfconv: unknown encoding")

	// ErrAlreadyBuffered indicates a *bufio.Reader smaller than the requested buffer size.
	ErrAlreadyBuffered = errors.New("utfconv: reader is already buffered with a smaller size")

	// ErrNilIO indicates that NewReader/NewWriter was called with a nil io.Reader/io.Writer.
	ErrNilIO = errors.New("utfconv: NewReader/NewWriter called with a nil io.Reader/io.Writer")
)

// SequenceError reports a malformed source sequence.
type SequenceError struct {
	Encoding Encoding // source encoding
	Offset   int      // source units before the first unit of the sequence
	Reason   error    // one of the ErrInvalidLead ... ErrMissingHighSurrogate sentinels
	// Truncated is set when the sequence was a valid prefix cut off by the end of
	// the source. Such errors also match ErrIncomplete.
	Truncated bool
}

func (e *SequenceError) Error() string {
	reason := ErrInvalidSequence
	if e.Reason != nil {
		reason = e.Reason
	}
	if e.Truncated {
		return fmt.Sprintf("%v: truncated %v sequence at unit %d", reason, e.Encoding, e.Offset)
	}
	return fmt.Sprintf("%v: %v at unit %d", reason, e.Encoding, e.Offset)
}

// Unwrap exposes ErrInvalidSequence, the reason, and ErrIncomplete for truncated input.
func (e *SequenceError) Unwrap() []error {
	errs := make([]error, 0, 3)
	errs = append(errs, ErrInvalidSequence)
	if e.Reason != nil {
		errs = append(errs, e.Reason)
	}
	if e.Truncated {
		errs = append(errs, ErrIncomplete)
	}
	return errs
}

// fault is the allocation-free error code returned by the per-character decoders.
type fault uint8

const (
	faultNone fault = iota
	faultLead
	faultContinuation
	faultOverlong
	faultSurrogate
	faultRange
	faultExpectLow
	faultMissingHigh
	// faultShort marks a valid prefix that ran into the end of the source.
	// The reason is carried separately when it is not plain ErrIncomplete.
	faultShort
	faultShortExpectLow
)

func (f fault) reason() error {
	switch f {
	case faultLead:
		return ErrInvalidLead
	case faultContinuation:
		return ErrInvalidContinuation
	case faultOverlong:
		return ErrOverlong
	case faultSurrogate:
		return ErrSurrogate
	case faultRange:
		return ErrOutOfRange
	case faultExpectLow, faultShortExpectLow:
		return ErrExpectingLowSurrogate
	case faultMissingHigh:
		return ErrMissingHighSurrogate
	}
	return nil
}

func (f fault) truncated() bool { return f == faultShort || f == faultShortExpectLow }

func sequenceError(enc Encoding, offset int, f fault) *SequenceError {
	return &SequenceError{Encoding: enc, Offset: offset, Reason: f.reason(), Truncated: f.truncated()}
}
