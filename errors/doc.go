// Package errors provides structured error types for the codec.
//
// Every fatal error carries the processing phase where it occurred and a
// kind that categorizes it, plus whatever location context was available:
// the field name, the byte offset into the source buffer, and the charset
// involved. Errors compare with errors.Is by (Phase, Kind), so callers can
// match on category without string inspection:
//
//	if errors.Is(err, &codecerr.Error{Phase: codecerr.PhaseEncode, Kind: codecerr.KindStrictViolation}) {
//		// strict mode refused a lossy substitution
//	}
//
// Use the Builder for errors with several context fields, or the
// convenience constructors (MalformedField, TruncatedField,
// UnsupportedEncoding, StrictViolation) for the common cases.
//
// Non-fatal conditions are never expressed as errors; they are collected as
// warnings by the parser and corrector and reported after processing.
package errors
