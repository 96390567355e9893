// Package adif parses ADIF tagged-field logs into a lossless document model.
//
// An ADIF file is a sequence of <name:length[:type]>data tokens with free
// text between them, an optional header closed by <eoh>, and records closed
// by <eor>. Real files are frequently mis-encoded, and their declared field
// lengths may count bytes or characters depending on which program wrote
// them; this parser resolves both ambiguities per field.
//
// Basic usage:
//
//	label, err := charset.Detect(data, "")
//	doc, warnings, err := adif.Parse(data, label, adif.Options{})
//
// The resulting Document accounts for every input byte: preambles, field
// tags, field data, sentinels, and all trailing text survive verbatim, so
// serializing the document back under the same encoding in strict mode
// reproduces the file exactly.
//
// Parsing is whole-buffer and single-threaded: encoding detection needs
// file-wide statistics, and length disambiguation may look arbitrarily far
// ahead, so there is no streaming mode.
package adif
