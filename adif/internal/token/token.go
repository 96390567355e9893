// Package token recognizes ADIF tags in a byte buffer.
//
// Recognition is a single pure function over a slice and an offset, shared
// by every lookahead in the parser and the length resolver. Tag bytes are
// always ASCII, so scanning needs no encoding knowledge; anything that does
// not match the tag shape is plain text by definition.
package token

import (
	"strconv"

	codecerr "github.com/wippyai/transadif/errors"
)

type Kind int

const (
	None Kind = iota
	Field
	EOH
	EOR
)

func (k Kind) String() string {
	switch k {
	case Field:
		return "field"
	case EOH:
		return "eoh"
	case EOR:
		return "eor"
	}
	return "none"
}

// Tag describes one recognized token. For Kind Field, Name, Length and
// TypeTag carry the tag contents; End is the offset just past '>'.
type Tag struct {
	Name    string
	TypeTag string
	Kind    Kind
	Length  int
	Start   int
	End     int
}

// Raw returns the tag exactly as written in the source.
func (t Tag) Raw(buf []byte) string {
	return string(buf[t.Start:t.End])
}

// ScanTag examines buf at off for a tag: '<', an identifier starting with a
// letter, ':', digits, an optional ':' plus identifier, '>'. The sentinels
// <eoh> and <eor> match case-insensitively. A Kind of None means the bytes
// are not a tag and belong to the surrounding text.
//
// The only error is a field-shaped tag whose digit string does not parse as
// a non-negative integer; that is fatal to the whole parse.
func ScanTag(buf []byte, off int) (Tag, error) {
	tag := Tag{Kind: None, Start: off}
	if off >= len(buf) || buf[off] != '<' {
		return tag, nil
	}

	i := off + 1
	if i >= len(buf) || !isLetter(buf[i]) {
		return tag, nil
	}
	nameStart := i
	for i < len(buf) && isIdent(buf[i]) {
		i++
	}
	if i >= len(buf) {
		return tag, nil
	}
	name := string(buf[nameStart:i])

	// Sentinels close immediately after the name.
	if buf[i] == '>' && len(name) == 3 {
		switch {
		case equalFold3(name, 'e', 'o', 'h'):
			tag.Kind = EOH
			tag.End = i + 1
			return tag, nil
		case equalFold3(name, 'e', 'o', 'r'):
			tag.Kind = EOR
			tag.End = i + 1
			return tag, nil
		}
	}

	if buf[i] != ':' {
		return tag, nil
	}
	i++
	digitStart := i
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i == digitStart || i >= len(buf) {
		return tag, nil
	}
	digits := string(buf[digitStart:i])

	typeTag := ""
	if buf[i] == ':' {
		i++
		if i >= len(buf) || !isLetter(buf[i]) {
			return tag, nil
		}
		typeStart := i
		for i < len(buf) && isIdent(buf[i]) {
			i++
		}
		if i >= len(buf) {
			return tag, nil
		}
		typeTag = string(buf[typeStart:i])
	}

	if buf[i] != '>' {
		return tag, nil
	}

	length, err := strconv.Atoi(digits)
	if err != nil {
		return tag, codecerr.MalformedField(name, off, "length "+digits+" is not a valid non-negative integer")
	}

	tag.Kind = Field
	tag.Name = name
	tag.Length = length
	tag.TypeTag = typeTag
	tag.End = i + 1
	return tag, nil
}

// HasEOH reports whether an end-of-header sentinel appears anywhere in buf.
func HasEOH(buf []byte) bool {
	for i := 0; i+5 <= len(buf); i++ {
		if buf[i] == '<' && buf[i+4] == '>' &&
			buf[i+1]|0x20 == 'e' && buf[i+2]|0x20 == 'o' && buf[i+3]|0x20 == 'h' {
			return true
		}
	}
	return false
}

// Next scans forward from off for the first recognizable tag of any kind.
// ok is false when the rest of the buffer is plain text.
func Next(buf []byte, off int) (Tag, bool, error) {
	for i := off; i < len(buf); i++ {
		if buf[i] != '<' {
			continue
		}
		tag, err := ScanTag(buf, i)
		if err != nil {
			return tag, false, err
		}
		if tag.Kind != None {
			return tag, true, nil
		}
	}
	return Tag{Kind: None}, false, nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdent(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '_'
}

func equalFold3(s string, a, b, c byte) bool {
	return s[0]|0x20 == a && s[1]|0x20 == b && s[2]|0x20 == c
}
