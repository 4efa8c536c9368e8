package utfconv

import (
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// registry maps normalized encoding names to forms. It is read on every
// Lookup and may be extended concurrently through Register.
var registry = xsync.NewMap[string, Form]()

func init() {
	for name, f := range map[string]Form{
		"utf8":     FormUTF8,
		"utf16":    UTF16BE,
		"utf16be":  UTF16BE,
		"utf16le":  UTF16LE,
		"ucs2":     UTF16BE,
		"ucs2be":   UTF16BE,
		"ucs2le":   UTF16LE,
		"utf32":    UTF32BE,
		"utf32be":  UTF32BE,
		"utf32le":  UTF32LE,
		"ucs4":     UTF32BE,
		"ucs4be":   UTF32BE,
		"ucs4le":   UTF32LE,
		"unicode":  UTF16LE,
		"wchar_t":  {Encoding: UTF32, Order: NE},
		"char16_t": {Encoding: UTF16, Order: NE},
		"char32_t": {Encoding: UTF32, Order: NE},
	} {
		registry.Store(normalizeName(name), f)
	}
}

// normalizeName lowercases name and drops '-', '_' and spaces, so that
// "UTF-16LE", "utf_16le" and "utf16le" are the same key.
func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		if 'A' <= r && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}, name)
}

// Lookup returns the form registered under name.
func Lookup(name string) (Form, bool) {
	return registry.Load(normalizeName(name))
}

// Register adds or replaces name. It fails for forms whose encoding is unknown.
func Register(name string, f Form) error {
	if f.Encoding.UnitSize() == 0 {
		return ErrUnknownEncoding
	}
	registry.Store(normalizeName(name), f)
	return nil
}

// Names returns the normalized registered names in sorted order.
func Names() []string {
	names := make([]string, 0, registry.Size())
	registry.Range(func(name string, _ Form) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}
