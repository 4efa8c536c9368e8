// Package utfconv converts text among UTF-8, UTF-16 and UTF-32 over
// caller-owned buffers.
//
// Every conversion validates strictly: overlong UTF-8, unpaired or encoded
// surrogates and values above U+10FFFF are rejected. Conversions never
// allocate; the caller supplies the destination and receives a Result that
// says exactly how far the source and destination cursors moved and how many
// units a complete conversion needs.
//
// UTF-16 and UTF-32 units are reached through a Units strategy, so one
// algorithm serves aligned host-order slices, byte-swapped slices and
// byte-packed buffers of either byte order.
package utfconv

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Encoding identifies one of the three Unicode encoding forms.
type Encoding uint8

const (
	UTF8 Encoding = iota + 1
	UTF16
	UTF32
)

// UnitSize returns the width of a code unit in bytes, or 0 for an unknown encoding.
func (e Encoding) UnitSize() int {
	switch e {
	case UTF8:
		return 1
	case UTF16:
		return 2
	case UTF32:
		return 4
	}
	return 0
}

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16:
		return "UTF-16"
	case UTF32:
		return "UTF-32"
	}
	return "unknown"
}

// Units is the unit access strategy: indexed reads and writes of code units
// wherever and however they are stored.
type Units[U constraints.Unsigned] interface {
	// Len returns the number of complete units.
	Len() int
	// At returns unit i in host order.
	At(i int) U
	// Set stores v, given in host order, as unit i.
	Set(i int, v U)
}

// Mode selects how a conversion accounts for the destination buffer.
type Mode uint8

const (
	// ModeExact converts as much as fits. When the destination is too small it
	// keeps scanning the unconverted remainder, without writing, to report the
	// exact total size.
	ModeExact Mode = iota
	// ModeQuery ignores the destination and only computes the required size.
	ModeQuery
	// ModePartial converts as much as fits and stops. On a short destination
	// Result.Size is only guaranteed to exceed the capacity.
	ModePartial
	// ModeUnchecked skips validation and bounds accounting. The source must be
	// valid and the destination large enough; otherwise the result is undefined
	// and the conversion may panic.
	ModeUnchecked
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeQuery:
		return "query"
	case ModePartial:
		return "partial"
	case ModeUnchecked:
		return "unchecked"
	}
	return "unknown"
}

// Options configures a conversion. A nil *Options means the zero value.
type Options struct {
	Mode Mode
	// Terminated makes the source NUL-terminated: conversion stops after the
	// first decoded U+0000, which is written and counted. Without it zero
	// units are ordinary data.
	Terminated bool
	// MaxSize caps the size accumulator. Exceeding it fails with ErrTooLong.
	// Zero means math.MaxInt.
	MaxSize int
}

var defaultOptions Options

func (o *Options) limit() int {
	if o.MaxSize <= 0 {
		return math.MaxInt
	}
	return o.MaxSize
}

// Result reports the cursors and the size result of a conversion.
type Result struct {
	// Read is the number of source units consumed. It never lands inside a
	// character; on invalid input it is the offset of the bad sequence.
	Read int
	// Written is the number of destination units written, always ending on a
	// complete character.
	Written int
	// Size equals Written on success. With ErrShortDst it is the total number
	// of units the conversion needs (ModeExact) or some value greater than the
	// destination capacity (ModePartial). In ModeQuery it is the required size.
	// It is 0 on invalid input and on ErrTooLong.
	Size int
}
