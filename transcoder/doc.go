// Package transcoder serializes a parsed document into a target encoding.
//
// The encoder recomputes every field's declared length in the unit the
// target counts in:
//
//	Target          Length unit
//	───────────────────────────────
//	UTF-8           characters
//	US-ASCII        characters
//	ISO-8859-1      encoded bytes
//	windows-1252    encoded bytes
//
// This mirrors the ambiguity the parser's length resolver handles on input,
// so output from this encoder re-parses consistently under its own label.
//
// Characters unrepresentable in the target are handled per Policy: deleted,
// replaced with a fixed character, escaped as &0xNN; references, or (in
// strict mode) rejected with an error naming the field and character.
// Optional transliteration approximates Latin text in ASCII before the
// policy applies.
//
// Everything the format does not define (preambles, trailing text,
// sentinels as originally spelled) is copied through. In strict mode with
// the target equal to the source encoding, fields are emitted from their
// raw source bytes, making parse → encode the identity on bytes.
package transcoder
