package utfconv

import "bytes"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// BOM returns the byte order mark of f, or nil for an unknown encoding.
// The returned slice must not be modified.
func BOM(f Form) []byte {
	switch f.Encoding {
	case UTF8:
		return bomUTF8
	case UTF16:
		if littleEndian(f.Order) {
			return bomUTF16LE
		}
		return bomUTF16BE
	case UTF32:
		if littleEndian(f.Order) {
			return bomUTF32LE
		}
		return bomUTF32BE
	}
	return nil
}

// DetectBOM reports the form announced by a byte order mark at the start of
// b and the length of the mark. UTF-32LE is tested before UTF-16LE since its
// mark begins with the UTF-16LE one.
func DetectBOM(b []byte) (Form, int, bool) {
	switch {
	case bytes.HasPrefix(b, bomUTF32LE):
		return UTF32LE, len(bomUTF32LE), true
	case bytes.HasPrefix(b, bomUTF32BE):
		return UTF32BE, len(bomUTF32BE), true
	case bytes.HasPrefix(b, bomUTF8):
		return FormUTF8, len(bomUTF8), true
	case bytes.HasPrefix(b, bomUTF16LE):
		return UTF16LE, len(bomUTF16LE), true
	case bytes.HasPrefix(b, bomUTF16BE):
		return UTF16BE, len(bomUTF16BE), true
	}
	return Form{}, 0, false
}
