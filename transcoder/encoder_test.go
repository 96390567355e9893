package transcoder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/transadif/adif"
	"github.com/wippyai/transadif/charset"
	codecerr "github.com/wippyai/transadif/errors"
)

func recordDoc(fields ...adif.Field) *adif.Document {
	return &adif.Document{
		Records: []adif.Record{{Fields: fields, Sentinel: "<eor>", Trailing: "\n"}},
	}
}

func TestEncode_UTF8LengthsCountCharacters(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "name", Text: "José", Trailing: " "})

	out, warnings, err := Encode(doc, charset.UTF8, charset.UTF8, Policy{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(out), "<name:4>José <eor>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestEncode_SingleByteLengthsCountBytes(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "name", Text: "José"})

	out, _, err := Encode(doc, charset.UTF8, charset.ISO8859_1, Policy{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(out), "<name:4>Jos\xe9<eor>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEncode_EscapePolicy(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "comment", Text: "73 de 日本"})

	out, warnings, err := Encode(doc, charset.UTF8, charset.ISO8859_1, Policy{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "<comment:22>73 de &0x65E5;&0x672C;<eor>\n"
	if string(out) != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want two escapes", warnings)
	}
}

func TestEncode_ReplacePolicy(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "comment", Text: "a→b"})

	out, _, err := Encode(doc, charset.UTF8, charset.ASCII, Policy{Replace: '?'})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(out), "<comment:3>a?b<eor>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEncode_DeletePolicy(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "comment", Text: "a→b"})

	out, _, err := Encode(doc, charset.UTF8, charset.ASCII, Policy{Delete: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(out), "<comment:2>ab<eor>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEncode_TransliteratePolicy(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "name", Text: "Høñe Strøße"})

	out, _, err := Encode(doc, charset.UTF8, charset.ASCII, Policy{Transliterate: true, Replace: '?'})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(out), "<name:12>Hone Strosse<eor>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEncode_StrictUnrepresentableFails(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "comment", Text: "日本"})

	_, _, err := Encode(doc, charset.UTF8, charset.ISO8859_1, Policy{Strict: true})
	if err == nil {
		t.Fatal("expected strict encode failure")
	}
	target := &codecerr.Error{Phase: codecerr.PhaseEncode, Kind: codecerr.KindStrictViolation}
	if !errors.Is(err, target) {
		t.Errorf("err = %v, want strict violation", err)
	}
}

func TestEncode_StrictSameEncodingIsVerbatim(t *testing.T) {
	doc := &adif.Document{
		Header: adif.Header{
			Preamble: "My log\n",
			Fields: []adif.Field{{
				Name: "adif_ver", Length: 5, RawTag: "<ADIF_VER:5>",
				RawBytes: []byte("3.1.4"), Text: "3.1.4", Trailing: "\n",
			}},
			Sentinel: "<EOH>",
			Trailing: "\n",
		},
		Records: []adif.Record{{
			Fields: []adif.Field{{
				Name: "name", Length: 4, RawTag: "<name:4>",
				RawBytes: []byte("Jos\xe9"), Text: "José",
			}},
			Sentinel: "<eor>",
			Trailing: "\n",
		}},
	}

	out, _, err := Encode(doc, charset.ISO8859_1, charset.ISO8859_1, Policy{Strict: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "My log\n<ADIF_VER:5>3.1.4\n<EOH>\n<name:4>Jos\xe9<eor>\n"
	if string(out) != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if _, ok := doc.Encoding(); ok {
		t.Error("strict encode must not inject an ENCODING field")
	}
}

func TestEncode_MetadataInjection(t *testing.T) {
	doc := &adif.Document{
		Header: adif.Header{
			Fields: []adif.Field{{
				Name: "adif_ver", Text: "3.1.4", RawTag: "<adif_ver:5>",
				RawBytes: []byte("3.1.4"), Trailing: "\n",
			}},
			Sentinel: "<eoh>",
			Trailing: "\n",
		},
	}

	out, _, err := Encode(doc, charset.UTF8, charset.UTF8, Policy{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "<ENCODING:5>UTF-8") {
		t.Errorf("missing encoding field: %q", text)
	}
	if !strings.Contains(text, "<PROGRAMID:9>"+adif.ProgramID) {
		t.Errorf("missing program id field: %q", text)
	}
	if strings.Index(text, "PROGRAMID") > strings.Index(text, "ENCODING") {
		t.Errorf("ENCODING should follow PROGRAMID: %q", text)
	}
}

func TestEncode_HeaderlessStaysHeaderless(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "call", Text: "K1ABC"})

	out, _, err := Encode(doc, charset.UTF8, charset.UTF8, Policy{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Contains(out, []byte("ENCODING")) {
		t.Errorf("metadata injected into headerless file: %q", out)
	}
}

func TestEncode_NFCNormalizesDecomposedText(t *testing.T) {
	// "é" as 'e' plus a combining acute accent composes to the single rune.
	doc := recordDoc(adif.Field{Name: "name", Text: "José"})

	out, _, err := Encode(doc, charset.UTF8, charset.UTF8, Policy{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(out), "<name:4>José<eor>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEncode_TypeTagPreserved(t *testing.T) {
	doc := recordDoc(adif.Field{Name: "freq", TypeTag: "N", Text: "14.074"})

	out, _, err := Encode(doc, charset.UTF8, charset.UTF8, Policy{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(out), "<freq:6:N>14.074<eor>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
