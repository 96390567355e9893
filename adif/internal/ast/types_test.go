package ast

import "testing"

func headerWith(names ...string) *Document {
	doc := &Document{}
	for _, n := range names {
		doc.Header.Fields = append(doc.Header.Fields, Field{Name: n, Text: "x"})
	}
	return doc
}

func fieldNames(doc *Document) []string {
	names := make([]string, len(doc.Header.Fields))
	for i, f := range doc.Header.Fields {
		names[i] = f.Name
	}
	return names
}

func TestSetEncoding_InsertFirst(t *testing.T) {
	doc := headerWith("adif_ver")
	doc.SetEncoding("UTF-8")

	got := fieldNames(doc)
	if len(got) != 2 || got[0] != "ENCODING" || got[1] != "adif_ver" {
		t.Errorf("fields = %v", got)
	}
	if enc, ok := doc.Encoding(); !ok || enc != "UTF-8" {
		t.Errorf("Encoding() = %q, %v", enc, ok)
	}
}

func TestSetEncoding_AfterProgramID(t *testing.T) {
	doc := headerWith("adif_ver", "programid", "version")
	doc.SetEncoding("ISO-8859-1")

	got := fieldNames(doc)
	want := []string{"adif_ver", "programid", "ENCODING", "version"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fields = %v, want %v", got, want)
		}
	}
}

func TestSetEncoding_ReplacesExisting(t *testing.T) {
	doc := headerWith("encoding", "adif_ver")
	doc.SetEncoding("windows-1252")

	got := fieldNames(doc)
	if len(got) != 2 {
		t.Fatalf("duplicate encoding field: %v", got)
	}
	if enc, _ := doc.Encoding(); enc != "windows-1252" {
		t.Errorf("Encoding() = %q", enc)
	}
}

func TestSetProgramID(t *testing.T) {
	doc := headerWith("adif_ver", "PROGRAMID")
	doc.SetProgramID()

	got := fieldNames(doc)
	if len(got) != 2 || got[0] != "PROGRAMID" {
		t.Errorf("fields = %v", got)
	}
	if doc.Header.Fields[0].Text != ProgramID {
		t.Errorf("program id = %q", doc.Header.Fields[0].Text)
	}
	if doc.Header.Fields[0].Length != len(ProgramID) {
		t.Errorf("length = %d", doc.Header.Fields[0].Length)
	}
}

func TestFieldCount(t *testing.T) {
	doc := headerWith("adif_ver")
	doc.Records = []Record{
		{Fields: []Field{{Name: "call"}, {Name: "band"}}},
		{Fields: []Field{{Name: "call"}}},
	}
	if got := doc.FieldCount(); got != 4 {
		t.Errorf("FieldCount() = %d, want 4", got)
	}
}

func TestEncoding_Missing(t *testing.T) {
	doc := headerWith("adif_ver")
	if _, ok := doc.Encoding(); ok {
		t.Error("Encoding() reported a field that does not exist")
	}
}
