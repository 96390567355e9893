// Package entities expands character escape sequences found in ADIF field
// data: HTML named entities (&amp;), decimal (&#65;) and hex (&#x41;)
// numeric references, and the ADIF-specific byte form (&0x41;).
//
// Expansion runs before mojibake correction so that escaped high bytes take
// part in corruption analysis. Unparseable references pass through
// unchanged.
package entities

import (
	"html"
	"regexp"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

var (
	namedRef   = regexp.MustCompile(`&[a-zA-Z][a-zA-Z0-9]*;`)
	decimalRef = regexp.MustCompile(`&#(\d+);`)
	hexRef     = regexp.MustCompile(`&#x([0-9a-fA-F]+);`)
	byteRef    = regexp.MustCompile(`&0x([0-9a-fA-F]+);`)
)

// Decode expands all supported escape forms in text.
func Decode(text string) string {
	// Named references are handed to html.UnescapeString one at a time, so
	// it never sees a malformed numeric form (it rewrites those to U+FFFD
	// instead of leaving them alone). Unknown names come back unchanged.
	result := namedRef.ReplaceAllStringFunc(text, html.UnescapeString)

	result = decimalRef.ReplaceAllStringFunc(result, func(m string) string {
		digits := decimalRef.FindStringSubmatch(m)[1]
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || !validCodePoint(rune(n)) {
			return m
		}
		return string(rune(n))
	})

	result = hexRef.ReplaceAllStringFunc(result, func(m string) string {
		digits := hexRef.FindStringSubmatch(m)[1]
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || !validCodePoint(rune(n)) {
			return m
		}
		return string(rune(n))
	})

	// The &0xNN; form names a byte, not a code point. Values above 0x7F
	// decode through windows-1252, matching the page used to emit them.
	result = byteRef.ReplaceAllStringFunc(result, func(m string) string {
		digits := byteRef.FindStringSubmatch(m)[1]
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || !validCodePoint(rune(n)) {
			return m
		}
		if n <= 0xFF {
			return string(charmap.Windows1252.DecodeByte(byte(n)))
		}
		return string(rune(n))
	})

	return result
}

func validCodePoint(r rune) bool {
	return r > 0 && r <= 0x10FFFF && !(r >= 0xD800 && r <= 0xDFFF)
}
