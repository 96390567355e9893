// Package mojibake repairs text corrupted by decoding UTF-8 bytes one at a
// time under a single-byte code page.
//
// When a UTF-8 file is read as Latin-1 or windows-1252, each multi-byte
// sequence turns into 2-4 separate characters in the U+0080-U+00FF range,
// because the single-byte table maps those byte values 1:1 onto the same
// code points. The corruption composes: saving that result as UTF-8 and
// mis-reading it again yields double mojibake.
//
// Fix reverses the process by mapping low-valued runes back onto bytes and
// re-decoding, at three granularities:
//
//  1. the whole string, when every rune fits in a byte;
//  2. individual space-separated words, for mixed content;
//  3. rune runs shaped like UTF-8 lead+continuation sequences, for local
//     corruption embedded in otherwise valid text.
//
// A repair is adopted only when the candidate scores as meaningful
// (Meaningful), which keeps Fix from corrupting text that legitimately
// contains high-range characters. Passes repeat to a fixed point, capped at
// five rounds.
package mojibake
