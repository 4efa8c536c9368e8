package utfconv

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	NE = binary.NativeEndian
	// Order is the default byte order for byte-packed UTF-16 and UTF-32,
	// used when a Form or Bytes16/Bytes32 leaves its order nil.
	Order binary.ByteOrder = BE
)

const (
	surr1    = 0xD800 // first high surrogate
	surr2    = 0xDC00 // first low surrogate
	surr3    = 0xE000 // first unit past the surrogates
	surrSelf = 0x10000
	maxRune  = 0x10FFFF
)

// addSize adds n to total unless the sum would pass limit.
func addSize[T constraints.Integer](total, n, limit T) (T, bool) {
	if n > limit-total {
		return total, false
	}
	return total + n, true
}

func orderOr(o binary.ByteOrder) binary.ByteOrder {
	if o == nil {
		return Order
	}
	return o
}

func littleEndian(o binary.ByteOrder) bool {
	return orderOr(o).Uint16([]byte{1, 0}) == 1
}
