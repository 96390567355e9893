package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDetect  Phase = "detect"  // encoding detection
	PhaseParse   Phase = "parse"   // document tokenizing and field resolution
	PhaseCorrect Phase = "correct" // mojibake/entity correction
	PhaseEncode  Phase = "encode"  // document serialization
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedField      Kind = "malformed_field"
	KindTruncatedField      Kind = "truncated_field"
	KindInvalidLength       Kind = "invalid_length"
	KindUnsupportedEncoding Kind = "unsupported_encoding"
	KindStrictViolation     Kind = "strict_violation"
	KindInvalidData         Kind = "invalid_data"
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Field   string
	Charset string
	Detail  string
	Offset  int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Field != "" {
		b.WriteString(" in field ")
		b.WriteString(e.Field)
	}

	if e.Offset > 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Charset != "" {
		b.WriteString(" (charset ")
		b.WriteString(e.Charset)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Field sets the name of the field being processed
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Offset sets the byte offset in the source buffer
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Charset sets the encoding label involved
func (b *Builder) Charset(cs string) *Builder {
	b.err.Charset = cs
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedField creates a parse error for a field whose tag cannot be read
func MalformedField(field string, offset int, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedField,
		Field:  field,
		Offset: offset,
		Detail: detail,
	}
}

// TruncatedField creates a parse error for a field whose declared length
// runs past the end of the buffer under every interpretation
func TruncatedField(field string, offset, declared int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindTruncatedField,
		Field:  field,
		Offset: offset,
		Detail: fmt.Sprintf("declared length %d exceeds remaining input", declared),
	}
}

// UnsupportedEncoding creates an error for an encoding name outside the
// supported set
func UnsupportedEncoding(phase Phase, name string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnsupportedEncoding,
		Charset: name,
		Detail:  "not a supported encoding",
	}
}

// StrictViolation creates an error for a character or sequence that strict
// mode refuses to repair or substitute
func StrictViolation(phase Phase, field string, r rune) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStrictViolation,
		Field:  field,
		Value:  r,
		Detail: fmt.Sprintf("character %q (U+%04X) cannot be represented", r, r),
	}
}
