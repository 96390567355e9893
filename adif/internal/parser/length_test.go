package parser

import (
	"testing"

	"github.com/wippyai/transadif/charset"
)

func TestResolveLength_BytesMatchDeclared(t *testing.T) {
	buf := []byte("<call:5>K1MIX<eor>")
	res, err := resolveLength(buf, "call", 8, 5, charset.UTF8, false)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if res.end != 13 || res.text != "K1MIX" || res.reinterpreted {
		t.Errorf("res = %+v", res)
	}
}

func TestResolveLength_CleanByteCutNotReinterpreted(t *testing.T) {
	// One 3-byte character declared as length 3: the byte cut lands exactly
	// on the next tag, so nothing is broken and nothing gets fixed, even
	// though the span holds 1 character, not 3.
	buf := []byte("<name:3>漢<next:1>x")
	res, err := resolveLength(buf, "name", 8, 3, charset.UTF8, false)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if res.reinterpreted {
		t.Error("clean byte cut must not be reinterpreted")
	}
	if res.text != "漢" || res.end != 11 {
		t.Errorf("res = %+v", res)
	}
}

func TestResolveLength_CharacterReinterpretation(t *testing.T) {
	// "日本" declared as 2: the byte cut splits 日 and leaves garbage before
	// <eor>, the character cut leaves none.
	buf := []byte("<name:2>日本<eor>")
	res, err := resolveLength(buf, "name", 8, 2, charset.UTF8, false)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if !res.reinterpreted {
		t.Fatal("expected character-based reinterpretation")
	}
	if res.text != "日本" || res.end != 14 {
		t.Errorf("res = %+v", res)
	}
}

func TestResolveLength_ReinterpretationMustImprove(t *testing.T) {
	// The byte cut is short of characters, but the character cut only
	// swallows whitespace and leaves the same noise; the byte
	// interpretation must win the tie.
	buf := []byte("<name:3>é \nrest")
	res, err := resolveLength(buf, "name", 8, 3, charset.UTF8, false)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if res.reinterpreted {
		t.Error("reinterpretation chosen without improvement")
	}
	if res.end != 11 || res.text != "é " {
		t.Errorf("res = %+v", res)
	}
}

func TestResolveLength_CharCountAtBufferEnd(t *testing.T) {
	// Six characters declared, seven bytes of data: the byte cut stops one
	// short and leaves "!" as noise, the character cut consumes it all.
	buf := []byte("<name:6>señal!")
	res, err := resolveLength(buf, "name", 8, 6, charset.UTF8, false)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if !res.reinterpreted || res.text != "señal!" {
		t.Errorf("res = %+v", res)
	}
}

func TestResolveLength_SplitSequenceReinterpreted(t *testing.T) {
	// A character-counted length over "Josñ": the byte cut splits ñ in
	// half, so the decoded count matches declared only by way of a
	// replacement character. The split itself forces the character walk.
	buf := []byte("<name:4>Josñ <eor>")
	res, err := resolveLength(buf, "name", 8, 4, charset.UTF8, false)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if !res.reinterpreted || res.text != "Josñ" || res.end != 13 {
		t.Errorf("res = %+v", res)
	}
	if res.hadErrors {
		t.Error("character cut decoded cleanly, hadErrors should be false")
	}
}

func TestResolveLength_Truncated(t *testing.T) {
	buf := []byte("<name:9>abc")
	if _, err := resolveLength(buf, "name", 8, 9, charset.UTF8, false); err == nil {
		t.Error("expected truncation error")
	}
	if _, err := resolveLength(buf, "name", 8, 9, charset.UTF8, true); err == nil {
		t.Error("expected truncation error in strict mode")
	}
}

func TestResolveLength_StrictNeverReinterprets(t *testing.T) {
	buf := []byte("<name:2>日本<eor>")
	res, err := resolveLength(buf, "name", 8, 2, charset.UTF8, true)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if res.reinterpreted || res.end != 10 {
		t.Errorf("strict mode reinterpreted: %+v", res)
	}
}

func TestResolveLength_SingleBytePage(t *testing.T) {
	buf := append([]byte("<name:4>Jos"), 0xE9, '<', 'e', 'o', 'r', '>')
	res, err := resolveLength(buf, "name", 8, 4, charset.ISO8859_1, false)
	if err != nil {
		t.Fatalf("resolveLength failed: %v", err)
	}
	if res.text != "José" || res.end != 12 || res.reinterpreted {
		t.Errorf("res = %+v", res)
	}
}
