// Package charset models the closed set of encodings the codec understands
// and decides which one produced a given buffer.
//
// # Supported labels
//
//	Label          Decode table     Length unit
//	──────────────────────────────────────────────
//	UTF8           UTF-8            characters
//	ASCII          UTF-8 subset     characters
//	ISO8859_1      ISO-8859-1       bytes
//	Windows1252    windows-1252     bytes
//
// The set is a fixed enumeration, not a registry: the length-unit
// disambiguation heuristics in the parser are only sound against these
// tables, and ADIF files in the wild do not use anything else.
//
// Each label supports exactly two operations, Decode and Encode, both
// returning a had-errors flag instead of failing; the codec never rejects
// input purely for encoding trouble outside strict mode.
//
// Detect picks a label for a whole buffer from an optional hint, the file's
// own ENCODING header field, UTF-8 validation guarded by the mojibake
// signature check, and finally statistical detection.
package charset
