// Package parser turns a byte buffer into an ast.Document.
//
// The parser is a state machine over byte offsets: Preamble, HeaderFields,
// RecordFields, End. Each field's data is decoded and corrected immediately
// after its tag is tokenized, so a corrupted field can never shift the
// offsets of the fields after it.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/wippyai/transadif/adif/internal/ast"
	"github.com/wippyai/transadif/adif/internal/token"
	"github.com/wippyai/transadif/charset"
	"github.com/wippyai/transadif/entities"
	codecerr "github.com/wippyai/transadif/errors"
	"github.com/wippyai/transadif/mojibake"
)

// Options control correction behavior. Strict disables entity expansion,
// mojibake correction, and length reinterpretation, and turns decode errors
// fatal; it exists so a round trip can be byte-exact.
type Options struct {
	Strict bool
}

// Parser consumes one immutable buffer and produces one Document.
type Parser struct {
	buf      []byte
	src      charset.Label
	opts     Options
	warnings []string
}

func New(buf []byte, src charset.Label, opts Options) *Parser {
	return &Parser{buf: buf, src: src, opts: opts}
}

// Parse builds the document. Warnings describe corrections and suspicious
// content; they are collected even when empty output follows. The parse
// either fully succeeds or fails with no document.
func (p *Parser) Parse() (*ast.Document, []string, error) {
	if p.opts.Strict {
		if _, hadErrors := p.src.Decode(p.buf); hadErrors {
			return nil, nil, codecerr.New(codecerr.PhaseParse, codecerr.KindStrictViolation).
				Charset(p.src.String()).
				Detail("input contains byte sequences invalid in the source encoding").
				Build()
		}
	}

	doc := &ast.Document{}
	pos, err := p.parseHeader(doc)
	if err != nil {
		return nil, nil, err
	}
	if err := p.parseRecords(doc, pos); err != nil {
		return nil, nil, err
	}
	return doc, p.warnings, nil
}

// parseHeader consumes the header region and returns the offset where
// records begin. A file whose first token is a data field has no header;
// its leading whitespace becomes the (otherwise empty) preamble.
func (p *Parser) parseHeader(doc *ast.Document) (int, error) {
	first, ok, err := token.Next(p.buf, 0)
	if err != nil {
		return 0, err
	}
	if !ok {
		// No tags anywhere: the whole file is preamble text.
		doc.Header.Preamble = p.decode(p.buf)
		return len(p.buf), nil
	}

	if first.Kind == token.Field && whitespaceOnly(p.buf[:first.Start]) {
		doc.Header.Preamble = p.decode(p.buf[:first.Start])
		return first.Start, nil
	}

	// Only an <eoh> sentinel delimits a header. Without one, nothing in the
	// file is a header field: the whole content is preamble text.
	if !token.HasEOH(p.buf) {
		doc.Header.Preamble = p.decode(p.buf)
		return len(p.buf), nil
	}

	// Header region: preamble, then fields, closed by the sentinel. The
	// sentinel can still go missing here when the only <eoh> bytes sit
	// inside a field's data span; everything then stays in the header.
	pos := 0
	lastField := -1
	for {
		tag, ok, err := token.Next(p.buf, pos)
		if err != nil {
			return 0, err
		}
		if !ok {
			p.headerText(doc, lastField, p.buf[pos:])
			return len(p.buf), nil
		}

		p.headerText(doc, lastField, p.buf[pos:tag.Start])

		switch tag.Kind {
		case token.EOH:
			doc.Header.Sentinel = tag.Raw(p.buf)
			return tag.End, nil
		case token.Field:
			f, end, err := p.parseField(tag)
			if err != nil {
				return 0, err
			}
			doc.Header.Fields = append(doc.Header.Fields, f)
			lastField = len(doc.Header.Fields) - 1
			pos = end
		default:
			// A stray <eor> before the header closes is free text.
			p.headerText(doc, lastField, p.buf[tag.Start:tag.End])
			pos = tag.End
		}
	}
}

func (p *Parser) headerText(doc *ast.Document, lastField int, raw []byte) {
	if len(raw) == 0 {
		return
	}
	text := p.decode(raw)
	if lastField < 0 {
		doc.Header.Preamble += text
	} else {
		doc.Header.Fields[lastField].Trailing += text
	}
}

func (p *Parser) parseRecords(doc *ast.Document, pos int) error {
	var cur ast.Record
	open := false

	// Inter-token text attaches to whatever came last: the open record's
	// last field, the previous closed record, or the header.
	attach := func(raw []byte) {
		if len(raw) == 0 {
			return
		}
		text := p.decode(raw)
		switch {
		case open && len(cur.Fields) > 0:
			cur.Fields[len(cur.Fields)-1].Trailing += text
		case len(doc.Records) > 0:
			doc.Records[len(doc.Records)-1].Trailing += text
		default:
			doc.Header.Trailing += text
		}
	}

	for pos < len(p.buf) {
		tag, ok, err := token.Next(p.buf, pos)
		if err != nil {
			return err
		}
		if !ok {
			attach(p.buf[pos:])
			break
		}

		attach(p.buf[pos:tag.Start])

		switch tag.Kind {
		case token.Field:
			f, end, err := p.parseField(tag)
			if err != nil {
				return err
			}
			cur.Fields = append(cur.Fields, f)
			open = true
			pos = end
		case token.EOR:
			cur.Sentinel = tag.Raw(p.buf)
			doc.Records = append(doc.Records, cur)
			cur = ast.Record{}
			open = false
			pos = tag.End
		default:
			// An <eoh> after the header closed is free text.
			attach(p.buf[tag.Start:tag.End])
			pos = tag.End
		}
	}

	// An unterminated final record is kept; its missing sentinel stays
	// missing on output.
	if open {
		doc.Records = append(doc.Records, cur)
	}
	return nil
}

// parseField resolves one field's data span and decodes its value. The
// returned offset is just past the data.
func (p *Parser) parseField(tag token.Tag) (ast.Field, int, error) {
	res, err := resolveLength(p.buf, tag.Name, tag.End, tag.Length, p.src, p.opts.Strict)
	if err != nil {
		return ast.Field{}, 0, err
	}

	f := ast.Field{
		Name:     tag.Name,
		Length:   tag.Length,
		TypeTag:  tag.TypeTag,
		RawTag:   tag.Raw(p.buf),
		RawBytes: p.buf[tag.End:res.end],
		Text:     res.text,
	}

	if res.hadErrors {
		p.warnf("field %s at offset %d: data is not clean %s", tag.Name, tag.Start, p.src)
	}
	if res.reinterpreted {
		p.warnf("field %s at offset %d: declared length %d resolved as characters, %d bytes consumed",
			tag.Name, tag.Start, tag.Length, res.end-tag.End)
	}

	if p.opts.Strict {
		// No corrections, but flag likely mojibake so the operator knows a
		// non-strict run would repair it.
		if !p.src.CountsCharacters() && mojibake.DetectUTF8InBytes(f.RawBytes) {
			p.warnf("field %s at offset %d: data looks like UTF-8 decoded as %s", tag.Name, tag.Start, p.src)
		}
		return f, res.end, nil
	}

	corrected := mojibake.Fix(entities.Decode(f.Text))
	if corrected != f.Text {
		p.warnf("field %s at offset %d: corrected %q to %q", tag.Name, tag.Start, f.Text, corrected)
		f.Text = corrected
		f.Length = utf8.RuneCountInString(corrected)
	}

	return f, res.end, nil
}

func (p *Parser) decode(raw []byte) string {
	text, hadErrors := p.src.Decode(raw)
	if hadErrors {
		p.warnf("free text is not clean %s, bytes replaced", p.src)
	}
	return text
}

func (p *Parser) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, msg)
	Logger().Debug(msg)
}

func whitespaceOnly(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
