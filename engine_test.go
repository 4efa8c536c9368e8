package utfconv

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		r    rune
		size int
		f    fault
	}{
		{"ASCII", []byte{'A'}, 'A', 1, faultNone},
		{"NUL", []byte{0}, 0, 1, faultNone},
		{"TwoByte", []byte{0xC3, 0xA9}, 0xE9, 2, faultNone},
		{"Euro", []byte{0xE2, 0x82, 0xAC}, 0x20AC, 3, faultNone},
		{"Emoji", []byte{0xF0, 0x9F, 0x98, 0x80}, 0x1F600, 4, faultNone},
		{"MaxRune", []byte{0xF4, 0x8F, 0xBF, 0xBF}, 0x10FFFF, 4, faultNone},
		{"LastBeforeSurrogates", []byte{0xED, 0x9F, 0xBF}, 0xD7FF, 3, faultNone},
		{"FirstAfterSurrogates", []byte{0xEE, 0x80, 0x80}, 0xE000, 3, faultNone},

		{"OverlongNUL", []byte{0xC0, 0x80}, 0, 0, faultOverlong},
		{"OverlongC1", []byte{0xC1, 0xBF}, 0, 0, faultOverlong},
		{"OverlongThree", []byte{0xE0, 0x80, 0x80}, 0, 0, faultOverlong},
		{"OverlongFour", []byte{0xF0, 0x8F, 0xBF, 0xBF}, 0, 0, faultOverlong},
		{"Surrogate", []byte{0xED, 0xA0, 0x80}, 0, 0, faultSurrogate},
		{"AboveMax", []byte{0xF4, 0x90, 0x80, 0x80}, 0, 0, faultRange},
		{"LeadF5", []byte{0xF5, 0x80, 0x80, 0x80}, 0, 0, faultLead},
		{"LeadFF", []byte{0xFF}, 0, 0, faultLead},
		{"StrayContinuation", []byte{0x80}, 0, 0, faultLead},
		{"BadSecond", []byte{0xE2, 0x41, 0xAC}, 0, 0, faultContinuation},
		{"BadThird", []byte{0xE2, 0x82, 0x41}, 0, 0, faultContinuation},
		{"BadFourth", []byte{0xF0, 0x9F, 0x98, 0xC0}, 0, 0, faultContinuation},
		{"ShortTwo", []byte{0xC3}, 0, 0, faultShort},
		{"ShortThree", []byte{0xE2, 0x82}, 0, 0, faultShort},
		{"ShortFour", []byte{0xF0, 0x9F, 0x98}, 0, 0, faultShort},
		{"ShortButSurrogate", []byte{0xED, 0xA0}, 0, 0, faultSurrogate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size, f := decodeUTF8(tt.in, 0)
			assert.Equal(t, tt.f, f)
			if tt.f == faultNone {
				assert.Equal(t, tt.r, r)
				assert.Equal(t, tt.size, size)
			}
		})
	}
}

// The decoder must agree with the standard library on validity for every
// one to three byte input and a sample of four byte inputs.
func TestDecodeUTF8AgreesWithStdlib(t *testing.T) {
	check := func(b []byte) {
		r, size, f := decodeUTF8(b, 0)
		want, wantSize := utf8.DecodeRune(b)
		full := utf8.FullRune(b)
		switch {
		case f == faultNone:
			require.Equal(t, want, r, "% X", b)
			require.Equal(t, wantSize, size, "% X", b)
		case f == faultShort:
			require.False(t, full, "% X", b)
		default:
			require.Equal(t, utf8.RuneError, want, "% X", b)
			require.Equal(t, 1, wantSize, "% X", b)
		}
	}
	for a := 0; a < 256; a++ {
		check([]byte{byte(a)})
		for b := 0; b < 256; b++ {
			check([]byte{byte(a), byte(b)})
		}
	}
	for a := 0xE0; a < 0xF0; a++ {
		for b := 0; b < 256; b++ {
			for c := 0x70; c < 0xC8; c++ {
				check([]byte{byte(a), byte(b), byte(c)})
			}
		}
	}
	for a := 0xF0; a < 0xF8; a++ {
		for b := 0x70; b < 0xC8; b++ {
			check([]byte{byte(a), byte(b), 0x80, 0xBF})
		}
	}
}

func TestSurrogates(t *testing.T) {
	hi, lo := splitSurrogates(0x1F600)
	assert.Equal(t, uint16(0xD83D), hi)
	assert.Equal(t, uint16(0xDE00), lo)
	assert.Equal(t, rune(0x1F600), combineSurrogates(hi, lo))

	hi, lo = splitSurrogates(0x10000)
	assert.Equal(t, [2]uint16{0xD800, 0xDC00}, [2]uint16{hi, lo})
	hi, lo = splitSurrogates(0x10FFFF)
	assert.Equal(t, [2]uint16{0xDBFF, 0xDFFF}, [2]uint16{hi, lo})

	for r := rune(0x10000); r <= 0x10FFFF; r += 0x3F1 {
		hi, lo := splitSurrogates(r)
		require.True(t, isHighSurrogate(hi))
		require.True(t, isLowSurrogate(lo))
		require.Equal(t, r, combineSurrogates(hi, lo))
	}
}

func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name string
		in   Native16
		r    rune
		size int
		f    fault
	}{
		{"BMP", Native16{0x20AC}, 0x20AC, 1, faultNone},
		{"Pair", Native16{0xD83D, 0xDE00}, 0x1F600, 2, faultNone},
		{"LoneLow", Native16{0xDE00}, 0, 0, faultMissingHigh},
		{"HighThenBMP", Native16{0xD83D, 0x0041}, 0, 0, faultExpectLow},
		{"HighThenHigh", Native16{0xD83D, 0xD83D}, 0, 0, faultExpectLow},
		{"HighAtEnd", Native16{0xD83D}, 0, 0, faultShortExpectLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size, f := decodeUTF16(tt.in, 0)
			assert.Equal(t, tt.f, f)
			assert.Equal(t, tt.r, r)
			assert.Equal(t, tt.size, size)
		})
	}
}

func TestValidRuneAndRuneLen(t *testing.T) {
	assert.True(t, ValidRune(0))
	assert.True(t, ValidRune(0xD7FF))
	assert.False(t, ValidRune(0xD800))
	assert.False(t, ValidRune(0xDFFF))
	assert.True(t, ValidRune(0xE000))
	assert.True(t, ValidRune(0x10FFFF))
	assert.False(t, ValidRune(0x110000))
	assert.False(t, ValidRune(-1))

	assert.Equal(t, 1, RuneLen(0x7F, UTF8))
	assert.Equal(t, 2, RuneLen(0x80, UTF8))
	assert.Equal(t, 2, RuneLen(0x7FF, UTF8))
	assert.Equal(t, 3, RuneLen(0x800, UTF8))
	assert.Equal(t, 3, RuneLen(0xFFFF, UTF8))
	assert.Equal(t, 4, RuneLen(0x10000, UTF8))
	assert.Equal(t, 1, RuneLen(0xFFFF, UTF16))
	assert.Equal(t, 2, RuneLen(0x10000, UTF16))
	assert.Equal(t, 1, RuneLen(0x10FFFF, UTF32))
	assert.Equal(t, -1, RuneLen(0xD800, UTF16))
	assert.Equal(t, -1, RuneLen('A', Encoding(9)))
}
