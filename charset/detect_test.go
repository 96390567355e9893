package charset

import "testing"

func TestDetect_Hint(t *testing.T) {
	label, err := Detect([]byte("anything"), "latin1")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if label != ISO8859_1 {
		t.Errorf("hint ignored: got %v", label)
	}

	if _, err := Detect([]byte("anything"), "koi8-r"); err == nil {
		t.Error("bad explicit hint must be fatal")
	}
}

func TestDetect_HeaderField(t *testing.T) {
	data := []byte("Generated log\n<adif_ver:5>3.1.4\n<encoding:10>iso-8859-1\n<eoh>\n<call:5>K1MIX<eor>\n")
	label, err := Detect(data, "")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if label != ISO8859_1 {
		t.Errorf("header encoding field ignored: got %v", label)
	}
}

func TestDetect_HeaderFieldCaseInsensitive(t *testing.T) {
	data := []byte("<ENCODING:5>UTF-8\n<EOH>\n<call:5>K1MIX<eor>\n")
	label, err := Detect(data, "")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if label != UTF8 {
		t.Errorf("got %v, want UTF8", label)
	}
}

func TestDetect_HeaderFieldAfterRawBytes(t *testing.T) {
	// High bytes in the preamble are not valid UTF-8; case folding must not
	// shift offsets past them or the field value is read from the wrong span.
	data := []byte("caf\xe9 log\n<encoding:10>iso-8859-1\n<eoh>\n<name:4>Jos\xe9<eor>\n")
	label, err := Detect(data, "")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if label != ISO8859_1 {
		t.Errorf("header encoding field ignored: got %v", label)
	}
}

func TestDetect_CleanUTF8(t *testing.T) {
	data := []byte("<call:5>K1MIX<name:6>España<eor>\n")
	label, err := Detect(data, "")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if label != UTF8 {
		t.Errorf("got %v, want UTF8", label)
	}
}

func TestDetect_MojibakeSignatureBlocksUTF8(t *testing.T) {
	// "Ã±" stored as UTF-8 bytes: valid UTF-8, but the decoded text carries
	// the corruption signature, so the buffer must not be labeled UTF-8.
	data := []byte("<name:2>Ã±<eor>\n")
	label, err := Detect(data, "")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if label == UTF8 {
		t.Error("mojibake signature did not block the UTF-8 label")
	}
}

func TestDetect_SingleByteFallback(t *testing.T) {
	// Isolated Latin-1 high byte: not valid UTF-8, must land on a
	// single-byte page without error.
	data := []byte{'<', 'n', 'a', 'm', 'e', ':', '4', '>', 'c', 'a', 'f', 0xE9, '<', 'e', 'o', 'r', '>'}
	label, err := Detect(data, "")
	if err != nil {
		t.Fatalf("Detect must never fail without a hint: %v", err)
	}
	if label != ISO8859_1 && label != Windows1252 {
		t.Errorf("got %v, want a single-byte page", label)
	}
}

func TestHeaderEncoding_Malformed(t *testing.T) {
	cases := [][]byte{
		[]byte("<encoding:xx>bad<eoh>"),
		[]byte("<encoding:5>UTF-8 no sentinel"),
		[]byte("<encoding:99>UTF-8<eoh>"),
		[]byte("no fields at all"),
	}
	for _, data := range cases {
		if _, ok := headerEncoding(data); ok {
			t.Errorf("headerEncoding accepted malformed input %q", data)
		}
	}
}
