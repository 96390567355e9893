package parser

import (
	"unicode/utf8"

	"github.com/wippyai/transadif/adif/internal/token"
	"github.com/wippyai/transadif/charset"
	codecerr "github.com/wippyai/transadif/errors"
)

// resolution is the outcome of length-unit disambiguation for one field.
type resolution struct {
	end           int    // offset just past the field's data
	text          string // decoded data
	hadErrors     bool   // decode produced replacement characters
	reinterpreted bool   // declared length was resolved as characters
}

// resolveLength decides where a field's data ends. The wire format has no
// bit that says whether the declared length counts bytes or characters, so
// the resolver tries bytes first (the unambiguous common case) and switches
// to characters only when the byte cut provably made things worse: the
// decoded span is short of the declared count or the cut split a multi-byte
// sequence, and the bytes after the cut contain non-whitespace noise that a
// character cut would reduce. A tie keeps the byte interpretation.
//
// In strict mode no reinterpretation happens: the declared length counts
// bytes, and running past the buffer is fatal.
func resolveLength(buf []byte, name string, start, declared int, src charset.Label, strict bool) (resolution, error) {
	byteEnd := start + declared

	if byteEnd > len(buf) {
		if strict {
			return resolution{}, codecerr.TruncatedField(name, start, declared)
		}
		// The byte span overruns the buffer; a character count is the only
		// interpretation left.
		charEnd, ok := advanceChars(buf, start, declared, src)
		if !ok {
			return resolution{}, codecerr.TruncatedField(name, start, declared)
		}
		text, hadErrors := src.Decode(buf[start:charEnd])
		return resolution{end: charEnd, text: text, hadErrors: hadErrors, reinterpreted: true}, nil
	}

	text, hadErrors := src.Decode(buf[start:byteEnd])
	byteRes := resolution{end: byteEnd, text: text, hadErrors: hadErrors}

	if strict || (!hadErrors && utf8.RuneCountInString(text) >= declared) {
		return byteRes, nil
	}

	// Multi-byte characters consumed fewer slots than bytes, or the cut
	// point split one in half. If the byte cut landed mid-token there is
	// garbage before the next tag; see whether counting characters cleans
	// it up.
	byteNoise := noiseAfter(buf, byteEnd)
	if byteNoise == 0 {
		return byteRes, nil
	}
	charEnd, ok := advanceChars(buf, start, declared, src)
	if !ok {
		return byteRes, nil
	}
	if noiseAfter(buf, charEnd) >= byteNoise {
		return byteRes, nil
	}

	text, hadErrors = src.Decode(buf[start:charEnd])
	return resolution{end: charEnd, text: text, hadErrors: hadErrors, reinterpreted: true}, nil
}

// advanceChars walks forward from start until exactly n characters of the
// source encoding have been consumed, returning the byte offset just past
// them. ok is false when the buffer ends first.
func advanceChars(buf []byte, start, n int, src charset.Label) (int, bool) {
	if !src.CountsCharacters() {
		// Single-byte pages: one byte per character.
		if start+n > len(buf) {
			return 0, false
		}
		return start + n, true
	}

	off := start
	for consumed := 0; consumed < n; consumed++ {
		if off >= len(buf) {
			return 0, false
		}
		_, size := utf8.DecodeRune(buf[off:])
		off += size
	}
	return off, true
}

// noiseAfter counts non-whitespace bytes between a candidate data end and
// the next recognizable tag. Well-formed files follow field data with the
// next tag or a line break, so noise indicates a wrong cut point.
func noiseAfter(buf []byte, from int) int {
	limit := len(buf)
	if tag, ok, err := token.Next(buf, from); err == nil && ok {
		limit = tag.Start
	}
	n := 0
	for i := from; i < limit; i++ {
		switch buf[i] {
		case ' ', '\t', '\r', '\n':
		default:
			n++
		}
	}
	return n
}
