package mojibake

import "unicode"

const punctuation = ".,!?:;-_()[]{}'\"@#$%&*+=/\\|~`^"

// Script ranges accepted as legitimate multi-byte text. A candidate decode
// landing in these ranges is evidence of real content, not over-correction.
var legitimateRanges = []struct{ lo, hi rune }{
	{0x1100, 0x11FF},   // Hangul Jamo
	{0x3040, 0x309F},   // Hiragana
	{0x30A0, 0x30FF},   // Katakana
	{0x3130, 0x318F},   // Hangul Compatibility Jamo
	{0x4E00, 0x9FFF},   // CJK Unified Ideographs
	{0xAC00, 0xD7AF},   // Hangul Syllables
	{0x1F600, 0x1F64F}, // Emoticons
}

// Ranges that indicate over-correction: a reinterpretation that lands here
// almost always mangled valid Latin-1 content rather than repairing UTF-8.
var suspiciousRanges = []struct{ lo, hi rune }{
	{0x0100, 0x017F}, // Latin Extended-A
	{0x0400, 0x04FF}, // Cyrillic
}

// Meaningful reports whether text looks like real content: at least 80% of
// its runes are letters, digits, whitespace, common punctuation, or
// recognized multi-byte script ranges, and fewer than 10% fall in ranges
// that indicate over-correction. Candidate mojibake repairs are adopted
// only when they pass this test.
func Meaningful(text string) bool {
	var total, good, suspicious int
	for _, r := range text {
		total++
		if isRecognized(r) {
			good++
		}
		for _, sr := range suspiciousRanges {
			if r >= sr.lo && r <= sr.hi {
				suspicious++
				break
			}
		}
	}
	if total == 0 {
		return false
	}
	return float64(good)/float64(total) > 0.8 &&
		float64(suspicious)/float64(total) < 0.1
}

func isRecognized(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	for _, p := range punctuation {
		if r == p {
			return true
		}
	}
	for _, lr := range legitimateRanges {
		if r >= lr.lo && r <= lr.hi {
			return true
		}
	}
	return false
}
