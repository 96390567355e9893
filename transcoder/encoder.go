package transcoder

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/wippyai/transadif/adif"
	"github.com/wippyai/transadif/charset"
	codecerr "github.com/wippyai/transadif/errors"
)

// Policy controls how characters unrepresentable in the target encoding are
// handled. Exactly one of the behaviors applies, checked in order: Strict
// fails the encode, Delete drops the character, a non-zero Replace
// substitutes it, and the zero value escapes it as a numeric &0xNN;
// reference.
type Policy struct {
	Replace       rune
	Delete        bool
	Transliterate bool
	Strict        bool
}

// Encoder serializes one Document into a target encoding. Field lengths are
// recomputed in the target's unit: characters for UTF-8 and ASCII, encoded
// bytes for the single-byte pages. Source is the encoding the document was
// parsed with; when it equals the target in strict mode, fields are emitted
// from their raw source bytes so the output is byte-identical to the input.
type Encoder struct {
	source   charset.Label
	target   charset.Label
	policy   Policy
	warnings []string
}

func New(source, target charset.Label, policy Policy) *Encoder {
	return &Encoder{source: source, target: target, policy: policy}
}

// Encode serializes the document. The document is mutated: field lengths
// are rewritten to the output unit and, unless strict mode is on, header
// metadata (ENCODING, PROGRAMID) is refreshed when the header already
// carries fields.
func Encode(doc *adif.Document, source, target charset.Label, policy Policy) ([]byte, []string, error) {
	e := New(source, target, policy)
	out, err := e.Encode(doc)
	return out, e.Warnings(), err
}

// Warnings returns the substitution notes collected by the last Encode.
func (e *Encoder) Warnings() []string {
	return e.warnings
}

func (e *Encoder) Encode(doc *adif.Document) ([]byte, error) {
	// A header that already carries metadata gets the output encoding
	// stamped into it. Headerless files stay headerless, and strict mode
	// never rewrites metadata: that would break round-trip identity.
	if !e.policy.Strict && len(doc.Header.Fields) > 0 {
		doc.SetProgramID()
		doc.SetEncoding(e.target.String())
	}

	var buf bytes.Buffer

	if err := e.writeText(&buf, doc.Header.Preamble); err != nil {
		return nil, err
	}
	for i := range doc.Header.Fields {
		if err := e.writeField(&buf, &doc.Header.Fields[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteString(doc.Header.Sentinel)
	if err := e.writeText(&buf, doc.Header.Trailing); err != nil {
		return nil, err
	}

	for i := range doc.Records {
		rec := &doc.Records[i]
		for j := range rec.Fields {
			if err := e.writeField(&buf, &rec.Fields[j]); err != nil {
				return nil, err
			}
		}
		buf.WriteString(rec.Sentinel)
		if err := e.writeText(&buf, rec.Trailing); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func (e *Encoder) writeField(buf *bytes.Buffer, f *adif.Field) error {
	// Verbatim path: same encoding, no corrections requested, and the field
	// came from the source (injected metadata has no raw tag).
	if e.policy.Strict && e.source == e.target && f.RawTag != "" {
		buf.WriteString(f.RawTag)
		buf.Write(f.RawBytes)
		return e.writeText(buf, f.Trailing)
	}

	text := f.Text
	if !e.policy.Strict {
		text = norm.NFC.String(text)
	}
	if e.policy.Transliterate && e.target == charset.ASCII {
		text = Transliterate(text)
	}

	text, err := e.substitute(text, f.Name)
	if err != nil {
		return err
	}

	data, _ := e.target.Encode(text)
	length := len(data)
	if e.target.CountsCharacters() {
		length = utf8.RuneCountInString(text)
	}
	f.Length = length

	buf.WriteByte('<')
	buf.WriteString(f.Name)
	buf.WriteByte(':')
	fmt.Fprintf(buf, "%d", length)
	if f.TypeTag != "" {
		buf.WriteByte(':')
		buf.WriteString(f.TypeTag)
	}
	buf.WriteByte('>')
	buf.Write(data)

	return e.writeText(buf, f.Trailing)
}

// substitute applies the incompatibility policy per rune, returning text in
// which every rune is representable in the target encoding.
func (e *Encoder) substitute(text, field string) (string, error) {
	clean := true
	for _, r := range text {
		if !e.target.CanEncode(r) {
			clean = false
			break
		}
	}
	if clean {
		return text, nil
	}

	var b strings.Builder
	for _, r := range text {
		if e.target.CanEncode(r) {
			b.WriteRune(r)
			continue
		}
		if e.policy.Strict {
			return "", codecerr.StrictViolation(codecerr.PhaseEncode, field, r)
		}
		switch {
		case e.policy.Delete:
			e.warnf("field %s: deleted %q, not representable in %s", field, r, e.target)
		case e.policy.Replace != 0:
			b.WriteRune(e.policy.Replace)
			e.warnf("field %s: replaced %q with %q", field, r, e.policy.Replace)
		default:
			if r <= 0xFF {
				fmt.Fprintf(&b, "&0x%02X;", r)
			} else {
				fmt.Fprintf(&b, "&0x%04X;", r)
			}
			e.warnf("field %s: escaped %q as a numeric reference", field, r)
		}
	}
	return b.String(), nil
}

// writeText serializes free text (preambles, trailing text) under the
// target encoding with the same substitution policy as field data.
func (e *Encoder) writeText(buf *bytes.Buffer, text string) error {
	if text == "" {
		return nil
	}
	text, err := e.substitute(text, "(free text)")
	if err != nil {
		return err
	}
	data, _ := e.target.Encode(text)
	buf.Write(data)
	return nil
}

func (e *Encoder) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.warnings = append(e.warnings, msg)
	Logger().Debug(msg)
}
