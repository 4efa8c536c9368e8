package utfconv

import (
	"encoding/binary"
	"math/bits"
)

// Native16 is an aligned UTF-16 buffer in host byte order.
type Native16 []uint16

func (u Native16) Len() int            { return len(u) }
func (u Native16) At(i int) uint16     { return u[i] }
func (u Native16) Set(i int, v uint16) { u[i] = v }

// Swapped16 is an aligned UTF-16 buffer whose units are stored byte-swapped
// relative to the host.
type Swapped16 []uint16

func (u Swapped16) Len() int            { return len(u) }
func (u Swapped16) At(i int) uint16     { return bits.ReverseBytes16(u[i]) }
func (u Swapped16) Set(i int, v uint16) { u[i] = bits.ReverseBytes16(v) }

// Bytes16 is a byte-packed UTF-16 buffer with no alignment requirement.
// A nil Order means the package default Order.
type Bytes16 struct {
	B     []byte
	Order binary.ByteOrder
}

// LE16 and BE16 view b as little- and big-endian UTF-16.
func LE16(b []byte) Bytes16 { return Bytes16{B: b, Order: LE} }
func BE16(b []byte) Bytes16 { return Bytes16{B: b, Order: BE} }

// Len ignores a trailing odd byte.
func (u Bytes16) Len() int            { return len(u.B) / 2 }
func (u Bytes16) At(i int) uint16     { return orderOr(u.Order).Uint16(u.B[2*i:]) }
func (u Bytes16) Set(i int, v uint16) { orderOr(u.Order).PutUint16(u.B[2*i:], v) }

// Native32 is an aligned UTF-32 buffer in host byte order.
type Native32 []uint32

func (u Native32) Len() int            { return len(u) }
func (u Native32) At(i int) uint32     { return u[i] }
func (u Native32) Set(i int, v uint32) { u[i] = v }

// Swapped32 is an aligned UTF-32 buffer whose units are stored byte-swapped
// relative to the host.
type Swapped32 []uint32

func (u Swapped32) Len() int            { return len(u) }
func (u Swapped32) At(i int) uint32     { return bits.ReverseBytes32(u[i]) }
func (u Swapped32) Set(i int, v uint32) { u[i] = bits.ReverseBytes32(v) }

// Bytes32 is a byte-packed UTF-32 buffer with no alignment requirement.
// A nil Order means the package default Order.
type Bytes32 struct {
	B     []byte
	Order binary.ByteOrder
}

// LE32 and BE32 view b as little- and big-endian UTF-32.
func LE32(b []byte) Bytes32 { return Bytes32{B: b, Order: LE} }
func BE32(b []byte) Bytes32 { return Bytes32{B: b, Order: BE} }

// Len ignores trailing bytes that do not form a whole unit.
func (u Bytes32) Len() int            { return len(u.B) / 4 }
func (u Bytes32) At(i int) uint32     { return orderOr(u.Order).Uint32(u.B[4*i:]) }
func (u Bytes32) Set(i int, v uint32) { orderOr(u.Order).PutUint32(u.B[4*i:], v) }

var (
	_ Units[uint16] = Native16(nil)
	_ Units[uint16] = Swapped16(nil)
	_ Units[uint16] = Bytes16{}
	_ Units[uint32] = Native32(nil)
	_ Units[uint32] = Swapped32(nil)
	_ Units[uint32] = Bytes32{}
)
