package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	codecerr "github.com/wippyai/transadif/errors"
)

// Label identifies one of the supported encodings. The set is closed: ADIF
// files in the wild are UTF-8, ASCII, or one of the Latin-1 family pages,
// and the disambiguation heuristics depend on that assumption.
type Label int

const (
	UTF8 Label = iota
	ASCII
	ISO8859_1
	Windows1252
)

// String returns the canonical name used in headers and error messages.
func (l Label) String() string {
	switch l {
	case UTF8:
		return "UTF-8"
	case ASCII:
		return "US-ASCII"
	case ISO8859_1:
		return "ISO-8859-1"
	case Windows1252:
		return "windows-1252"
	}
	return "unknown"
}

// ParseLabel resolves an encoding name, accepting the alias spellings
// accepted on the command line. Unknown names are fatal where an encoding
// is explicitly required.
func ParseLabel(name string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "ascii", "us-ascii":
		return ASCII, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return ISO8859_1, nil
	case "windows-1252", "win1252", "cp1252":
		return Windows1252, nil
	}
	return UTF8, codecerr.UnsupportedEncoding(codecerr.PhaseDetect, name)
}

// CountsCharacters reports whether field lengths under this encoding count
// characters rather than bytes. UTF-8 output counts characters; single-byte
// pages count bytes (which for them is the same thing).
func (l Label) CountsCharacters() bool {
	return l == UTF8 || l == ASCII
}

func (l Label) table() *charmap.Charmap {
	switch l {
	case ISO8859_1:
		return charmap.ISO8859_1
	case Windows1252:
		return charmap.Windows1252
	}
	return nil
}

// Decode converts raw bytes to a string under this encoding. The second
// result reports whether any byte could not be decoded cleanly; such bytes
// are replaced with U+FFFD. Decoding never fails outright.
func (l Label) Decode(data []byte) (string, bool) {
	switch l {
	case UTF8, ASCII:
		if utf8.Valid(data) {
			return string(data), false
		}
		return strings.ToValidUTF8(string(data), "�"), true
	}

	cm := l.table()
	var b strings.Builder
	b.Grow(len(data))
	hadErrors := false
	for _, c := range data {
		r := cm.DecodeByte(c)
		if r == utf8.RuneError {
			hadErrors = true
		}
		b.WriteRune(r)
	}
	return b.String(), hadErrors
}

// Encode converts a string to this encoding's byte representation. Runes
// that have no representation are replaced with '?' and flagged via the
// second result; callers that need finer control substitute per rune using
// CanEncode before calling.
func (l Label) Encode(s string) ([]byte, bool) {
	switch l {
	case UTF8:
		return []byte(s), false
	case ASCII:
		hadErrors := false
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0x7F {
				out = append(out, '?')
				hadErrors = true
				continue
			}
			out = append(out, byte(r))
		}
		return out, hadErrors
	}

	cm := l.table()
	hadErrors := false
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := cm.EncodeRune(r)
		if !ok {
			b = '?'
			hadErrors = true
		}
		out = append(out, b)
	}
	return out, hadErrors
}

// CanEncode reports whether a single rune is representable in this encoding.
func (l Label) CanEncode(r rune) bool {
	switch l {
	case UTF8:
		return utf8.ValidRune(r)
	case ASCII:
		return r <= 0x7F
	}
	_, ok := l.table().EncodeRune(r)
	return ok
}
