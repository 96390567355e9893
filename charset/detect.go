package charset

import (
	"bytes"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/wippyai/transadif/mojibake"
)

// Detect decides the most likely source encoding of a whole buffer.
// Resolution order, first match wins:
//
//  1. an explicit hint (a bad hint is the only fatal outcome);
//  2. an ENCODING field in the file's own header;
//  3. clean UTF-8 with no mojibake signature;
//  4. statistical detection over the single-byte pages, defaulting to
//     windows-1252 when inconclusive.
//
// Detection is a pure function of the buffer, which is why the whole input
// must be in memory before parsing starts.
func Detect(data []byte, hint string) (Label, error) {
	if hint != "" {
		label, err := ParseLabel(hint)
		if err != nil {
			return UTF8, err
		}
		Logger().Debug("encoding from hint", zap.Stringer("label", label))
		return label, nil
	}

	if label, ok := headerEncoding(data); ok {
		Logger().Debug("encoding from header field", zap.Stringer("label", label))
		return label, nil
	}

	if utf8.Valid(data) && !mojibake.HasSignature(string(data)) {
		return UTF8, nil
	}

	return sniff(data), nil
}

// sniff runs the statistical detector and maps its guess onto the supported
// single-byte pages. UTF-8 is deliberately excluded here: buffers reaching
// this step either failed UTF-8 validation or carry the mojibake signature.
func sniff(data []byte) Label {
	detector := chardet.NewTextDetector()
	results, err := detector.DetectAll(data)
	if err != nil {
		return Windows1252
	}
	for _, r := range results {
		switch r.Charset {
		case "ISO-8859-1":
			Logger().Debug("statistical detection", zap.String("charset", r.Charset), zap.Int("confidence", r.Confidence))
			return ISO8859_1
		case "windows-1252", "ISO-8859-15":
			Logger().Debug("statistical detection", zap.String("charset", r.Charset), zap.Int("confidence", r.Confidence))
			return Windows1252
		}
	}
	return Windows1252
}

// headerEncoding scans the region before the end-of-header sentinel for an
// ENCODING field naming a supported label. The scan is deliberately shallow:
// it reads only the one field it needs, leaving real parsing to the parser.
// Case folding is byte-wise ASCII: the tag syntax and encoding names are
// ASCII, and folding must not shift offsets when the surrounding bytes are
// not valid UTF-8.
func headerEncoding(data []byte) (Label, bool) {
	lower := asciiLower(data)
	end := bytes.Index(lower, []byte("<eoh>"))
	if end < 0 {
		return UTF8, false
	}
	tag := []byte("<encoding:")
	i := bytes.Index(lower[:end], tag)
	if i < 0 {
		return UTF8, false
	}

	j := i + len(tag)
	n := 0
	digits := 0
	for j < end && lower[j] >= '0' && lower[j] <= '9' {
		n = n*10 + int(lower[j]-'0')
		digits++
		j++
	}
	if digits == 0 {
		return UTF8, false
	}
	if j < end && lower[j] == ':' {
		j++
		for j < end && isIdentByte(lower[j]) {
			j++
		}
	}
	if j >= end || lower[j] != '>' {
		return UTF8, false
	}
	j++

	// Encoding names are ASCII, so the declared length counts bytes here.
	if j+n > len(data) {
		return UTF8, false
	}
	label, err := ParseLabel(string(data[j : j+n]))
	if err != nil {
		return UTF8, false
	}
	return label, true
}

func asciiLower(data []byte) []byte {
	lower := make([]byte, len(data))
	for i, b := range data {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		lower[i] = b
	}
	return lower
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
