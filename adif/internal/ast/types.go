// Package ast holds the document model built by the parser and consumed by
// the encoder. The model is lossless: every byte of the source buffer lands
// in exactly one of preamble, field tag, field data, trailing text, or a
// sentinel, so a document can reproduce its source.
package ast

import "strings"

// Document is one parsed ADIF file: an optional header followed by records.
type Document struct {
	Header  Header
	Records []Record
}

// Header is the metadata region before the end-of-header sentinel. Files
// whose first token is a data field have an empty header.
type Header struct {
	// Preamble is the free text before the first header field (or before
	// the sentinel, when there are no fields).
	Preamble string
	Fields   []Field
	// Sentinel is the end-of-header token exactly as written ("<eoh>",
	// "<EOH>", ...), empty when the file has no header.
	Sentinel string
	// Trailing is the text between the sentinel and the first record field.
	Trailing string
}

// Record is one QSO entry: its fields plus everything after its sentinel.
type Record struct {
	Fields []Field
	// Sentinel is the end-of-record token as written, empty for an
	// unterminated final record.
	Sentinel string
	// Trailing is the text between this record's sentinel and the next
	// record's first field.
	Trailing string
}

// Field is one tagged value. Name, Length and TypeTag mirror the source
// tag; RawTag and RawBytes keep the exact source spelling so a same-encoding
// re-serialization can be byte-identical.
type Field struct {
	// Name as written; comparisons are case-insensitive.
	Name string
	// Length is the declared length from the source tag. The encoder
	// rewrites it to the output encoding's unit.
	Length  int
	TypeTag string
	// RawTag is the full source tag, e.g. "<CALL:5>".
	RawTag string
	// RawBytes are the exact source bytes consumed as this field's data.
	RawBytes []byte
	// Text is the decoded, entity-expanded, corrected value.
	Text string
	// Trailing is the text between this field's data and the next token.
	Trailing string
}

// FieldCount returns the total number of fields across header and records.
func (d *Document) FieldCount() int {
	n := len(d.Header.Fields)
	for _, r := range d.Records {
		n += len(r.Fields)
	}
	return n
}

// Encoding returns the value of the header ENCODING field, if present.
func (d *Document) Encoding() (string, bool) {
	for _, f := range d.Header.Fields {
		if strings.EqualFold(f.Name, "ENCODING") {
			return f.Text, true
		}
	}
	return "", false
}

// SetEncoding replaces or inserts the header ENCODING field. The field is
// placed after PROGRAMID when one exists, otherwise first, matching where
// logging programs conventionally write it.
func (d *Document) SetEncoding(name string) {
	d.removeHeaderField("ENCODING")

	pos := 0
	for i, f := range d.Header.Fields {
		if strings.EqualFold(f.Name, "PROGRAMID") {
			pos = i + 1
			break
		}
	}
	d.insertHeaderField(pos, metadataField("ENCODING", name))
}

// ProgramID is the identifier written into headers this codec touches.
const ProgramID = "transadif"

// SetProgramID replaces or inserts the header PROGRAMID field at the front.
func (d *Document) SetProgramID() {
	d.removeHeaderField("PROGRAMID")
	d.insertHeaderField(0, metadataField("PROGRAMID", ProgramID))
}

func (d *Document) removeHeaderField(name string) {
	kept := d.Header.Fields[:0]
	for _, f := range d.Header.Fields {
		if !strings.EqualFold(f.Name, name) {
			kept = append(kept, f)
		}
	}
	d.Header.Fields = kept
}

func (d *Document) insertHeaderField(pos int, f Field) {
	if pos > len(d.Header.Fields) {
		pos = len(d.Header.Fields)
	}
	d.Header.Fields = append(d.Header.Fields, Field{})
	copy(d.Header.Fields[pos+1:], d.Header.Fields[pos:])
	d.Header.Fields[pos] = f
}

func metadataField(name, value string) Field {
	return Field{
		Name:     name,
		Length:   len(value),
		Text:     value,
		RawBytes: []byte(value),
		Trailing: "\n",
	}
}
