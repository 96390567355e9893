// Package transadif repairs and re-encodes ADIF amateur-radio log files.
//
// ADIF is a self-describing tagged-field text format: an optional header of
// metadata fields, then records of <name:length[:type]>data tokens closed
// by <eor>. Files in the wild arrive in unlabeled encodings, with field
// lengths that may count bytes or characters, and with text mangled by one
// or more rounds of UTF-8 read as Latin-1. This module turns such files
// into a requested target encoding without losing a byte of anything the
// format leaves undefined.
//
// # Architecture Overview
//
// The pipeline is organized into packages with distinct responsibilities:
//
//	transadif/           Root package: Options and the Process() pipeline
//	├── adif/            Tokenizer, parser, and the lossless document model
//	├── charset/         Closed encoding enumeration and detection
//	├── mojibake/        Cascaded UTF-8 mis-decode correction
//	├── entities/        HTML and numeric character reference expansion
//	├── transcoder/      Document serialization with substitution policy
//	├── errors/          Structured error types with phase and kind
//	└── cmd/transadif/   CLI with an interactive record inspector
//
// # Quick Start
//
// Convert a file to UTF-8 with all corrections enabled:
//
//	out, warnings, err := transadif.Process(data, transadif.Options{})
//
// Re-serialize byte-exactly (verification mode):
//
//	out, _, err := transadif.Process(data, transadif.Options{Strict: true})
//
// Processing is single-threaded and whole-buffer: detection needs file-wide
// statistics and length disambiguation needs unbounded lookahead, so input
// is read fully into memory and each call is independent of any other.
package transadif
