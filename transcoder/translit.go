package transcoder

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and removes combining marks, turning "señal"
// into "senal". Recomposition keeps any characters that were not accents.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Latin characters that decomposition cannot reduce to ASCII.
var digraphs = map[rune]string{
	'Æ': "AE", 'æ': "ae",
	'Œ': "OE", 'œ': "oe",
	'ß': "ss",
	'Ø': "O", 'ø': "o",
	'Đ': "D", 'đ': "d",
	'Ð': "D", 'ð': "d",
	'Þ': "Th", 'þ': "th",
	'Ł': "L", 'ł': "l",
	'Ĳ': "IJ", 'ĳ': "ij",
}

// Transliterate approximates text in ASCII: diacritics are stripped and the
// common Latin digraph letters are spelled out. Characters with no ASCII
// approximation are left alone for the substitution policy to handle.
func Transliterate(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if rep, ok := digraphs[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}

	out, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		return b.String()
	}
	return out
}
