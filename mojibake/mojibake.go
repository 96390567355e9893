package mojibake

import (
	"strings"
	"unicode/utf8"
)

// maxPasses bounds the fix loop. Double and triple mis-decoding are seen in
// real logs; anything deeper than five rounds is oscillation, not data.
const maxPasses = 5

// Fix detects and reverses UTF-8 text that was decoded one byte at a time
// under a single-byte code page. It applies repair passes until the text
// stops changing or the pass cap is reached, so cascaded mis-decoding
// (mojibake of mojibake) converges to the original text. Fix is
// opportunistic: if no reinterpretation scores as meaningful, the input is
// returned unchanged. Fix(Fix(x)) == Fix(x).
func Fix(text string) string {
	result := text
	for pass := 0; pass < maxPasses; pass++ {
		next := fixOnce(result)
		if next == result {
			break
		}
		result = next
	}
	return result
}

func fixOnce(text string) string {
	// Whole-string fast path. Single-byte mojibake leaves every rune at or
	// below U+00FF, so the rune sequence maps 1:1 back onto a byte sequence.
	if fixed, ok := reinterpret(text); ok {
		return fixed
	}

	// Word-level fallback for mixed content where only some words are
	// corrupted. Separators are plain spaces, preserved by Split/Join.
	if strings.ContainsRune(text, ' ') {
		words := strings.Split(text, " ")
		changed := false
		for i, w := range words {
			if w == "" {
				continue
			}
			if fixed, ok := reinterpret(w); ok {
				words[i] = fixed
				changed = true
			}
		}
		if changed {
			return strings.Join(words, " ")
		}
	}

	return fixPatterns(text)
}

// reinterpret maps each rune at or below U+00FF to one byte and decodes the
// result as UTF-8. It reports success only when the decode is valid,
// differs from the input, and scores as meaningful text.
func reinterpret(text string) (string, bool) {
	b := make([]byte, 0, len(text))
	for _, r := range text {
		if r > 0xFF {
			return "", false
		}
		b = append(b, byte(r))
	}
	if !utf8.Valid(b) {
		return "", false
	}
	decoded := string(b)
	if decoded == text || !Meaningful(decoded) {
		return "", false
	}
	return decoded, true
}

// fixPatterns scans for local corruption mixed with legitimate text: runs
// starting at a rune whose value is a valid UTF-8 lead byte (0xC0-0xF7)
// followed by continuation-valued runes (0x80-0xBF). Each run that decodes
// as UTF-8 is spliced in place; everything else passes through.
func fixPatterns(text string) string {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text))

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r >= 0xC0 && r <= 0xF7 {
			j := i + 1
			for j < len(runes) && runes[j] >= 0x80 && runes[j] <= 0xBF {
				j++
			}
			if j > i+1 {
				if decoded, ok := decodeRun(runes[i:j]); ok {
					out.WriteString(decoded)
					i = j - 1
					continue
				}
			}
		}

		// CJK and Hangul sequences mis-decoded under a single-byte page can
		// include control-range runes, which the continuation check above
		// misses. Collect a short run of high or control runes up to the
		// next space and accept it only when the decode is both shorter and
		// meaningful.
		if r >= 0x80 && r <= 0xFF {
			j := i + 1
			for j < len(runes) && j-i < 6 {
				c := runes[j]
				if c == ' ' {
					break
				}
				if (c >= 0x80 && c <= 0xFF) || c < 0x20 {
					j++
					continue
				}
				break
			}
			if j > i+1 {
				if decoded, ok := decodeRun(runes[i:j]); ok &&
					utf8.RuneCountInString(decoded) < j-i && Meaningful(decoded) {
					out.WriteString(decoded)
					i = j - 1
					continue
				}
			}
		}

		out.WriteRune(r)
	}

	return out.String()
}

// decodeRun reinterprets a rune run as bytes and decodes it as UTF-8,
// succeeding only when the result is valid and differs from the literal run.
func decodeRun(run []rune) (string, bool) {
	b := make([]byte, len(run))
	for i, r := range run {
		if r > 0xFF {
			return "", false
		}
		b[i] = byte(r)
	}
	if !utf8.Valid(b) {
		return "", false
	}
	decoded := string(b)
	if decoded == string(run) {
		return "", false
	}
	return decoded, true
}

// HasSignature reports whether decoded text carries the mojibake corruption
// signature: a rune valued as a UTF-8 lead byte followed by runes valued as
// continuation bytes, together forming a valid UTF-8 sequence. Used by
// encoding detection to avoid trusting a clean UTF-8 decode of corrupted
// content.
func HasSignature(text string) bool {
	runes := []rune(text)
	for i, r := range runes {
		if r < 0xC0 || r > 0xF7 {
			continue
		}
		n := seqLen(byte(r))
		if n < 2 || i+n > len(runes) {
			continue
		}
		valid := true
		for k := 1; k < n; k++ {
			c := runes[i+k]
			if c < 0x80 || c > 0xBF {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		b := make([]byte, n)
		for k := 0; k < n; k++ {
			b[k] = byte(runes[i+k])
		}
		if utf8.Valid(b) {
			return true
		}
	}
	return false
}

// DetectUTF8InBytes reports whether raw bytes contain runs of two or more
// high bytes that form valid UTF-8. A positive result in data decoded under
// a single-byte page means the page was probably the wrong table.
func DetectUTF8InBytes(data []byte) bool {
	i := 0
	for i < len(data) {
		if data[i] <= 0x7F {
			i++
			continue
		}
		start := i
		for i < len(data) && data[i] > 0x7F {
			i++
		}
		if i-start >= 2 && utf8.Valid(data[start:i]) {
			return true
		}
	}
	return false
}

func seqLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 0
}
