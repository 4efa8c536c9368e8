package utfconv

import (
	"strings"
	"testing"
	"unicode/utf16"

	xunicode "golang.org/x/text/encoding/unicode"
)

var benchText = []byte(strings.Repeat("The quick brown fox, 快速的棕色狐狸, \U0001F98A! ", 256))

func BenchmarkUTF8ToUTF16(b *testing.B) {
	dst := make(Native16, len(benchText))
	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = UTF8ToUTF16(dst, benchText, nil)
	}
}

func BenchmarkUTF8ToUTF16Unchecked(b *testing.B) {
	dst := make(Native16, len(benchText))
	o := &Options{Mode: ModeUnchecked}
	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = UTF8ToUTF16(dst, benchText, o)
	}
}

func BenchmarkUTF8ToUTF16LEBytes(b *testing.B) {
	dst := make([]byte, 2*len(benchText))
	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Convert(dst, benchText, FormUTF8, UTF16LE, nil)
	}
}

func BenchmarkUTF8ToUTF16Query(b *testing.B) {
	o := &Options{Mode: ModeQuery}
	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = UTF8ToUTF16(Native16(nil), benchText, o)
	}
}

func BenchmarkUTF16ToUTF8(b *testing.B) {
	src := Native16(utf16.Encode([]rune(string(benchText))))
	dst := make([]byte, len(benchText))
	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = UTF16ToUTF8(dst, src, nil)
	}
}

func BenchmarkStateUTF8ToUTF32(b *testing.B) {
	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var (
			s State
			c uint32
		)
		for src := benchText; len(src) > 0; {
			n, _ := s.UTF8ToUTF32(&c, src)
			src = src[n:]
		}
	}
}

// Baseline comparison against x/text's UTF-16 encoder.
func BenchmarkXTextUTF16LE(b *testing.B) {
	enc := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewEncoder()
	dst := make([]byte, 2*len(benchText))
	b.SetBytes(int64(len(benchText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = enc.Transform(dst, benchText, true)
	}
}
