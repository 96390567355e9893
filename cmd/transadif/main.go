package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/transadif"
	"github.com/wippyai/transadif/adif"
	"github.com/wippyai/transadif/charset"
)

func main() {
	var (
		output   = flag.String("o", "", "Output file (writes to stdout if not specified)")
		inputEnc = flag.String("i", "", "Suggested encoding for the input file")
		encoding = flag.String("e", "utf-8", "Output encoding (utf-8, ascii, iso-8859-1, windows-1252)")
		replace  = flag.String("r", "?", "Replace incompatible characters with this character (empty: escape as &0xNN;)")
		del      = flag.Bool("delete", false, "Delete incompatible characters instead of replacing them")
		ascii    = flag.Bool("a", false, "Transliterate to characters without diacritics")
		strict   = flag.Bool("s", false, "Strict mode - report errors instead of correcting")
		debug    = flag.String("d", "", "Dump the listed records to stderr (comma-separated indices, or 'all')")
		tui      = flag.Bool("tui", false, "Interactive record inspector")
	)
	flag.Parse()

	if err := run(flag.Arg(0), *output, *inputEnc, *encoding, *replace, *del, *ascii, *strict, *debug, *tui); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, inputEnc, encoding, replace string, del, ascii, strict bool, debug string, tui bool) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if tui {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode requires a terminal")
		}
		return runInteractive(input, data, inputEnc, strict)
	}

	opts := transadif.Options{
		InputEncoding:  inputEnc,
		OutputEncoding: encoding,
		Delete:         del,
		Transliterate:  ascii,
		Strict:         strict,
	}
	for _, r := range replace {
		opts.Replace = r
		break
	}

	if debug != "" {
		if err := dumpRecords(data, inputEnc, strict, debug); err != nil {
			return err
		}
	}

	out, warnings, err := transadif.Process(data, opts)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	return writeOutput(output, out)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// dumpRecords prints byte-level diagnostics for selected records, matching
// the pipeline's view of the input.
func dumpRecords(data []byte, inputEnc string, strict bool, spec string) error {
	src, err := charset.Detect(data, inputEnc)
	if err != nil {
		return err
	}
	doc, _, err := adif.Parse(data, src, adif.Options{Strict: strict})
	if err != nil {
		return err
	}

	indices, err := parseRecordSpec(spec, len(doc.Records))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "=== DEBUG (%d records, source %s) ===\n", len(doc.Records), src)
	for _, n := range indices {
		if n < 1 || n > len(doc.Records) {
			fmt.Fprintf(os.Stderr, "Warning: record %d does not exist (valid range: 1-%d)\n", n, len(doc.Records))
			continue
		}
		rec := doc.Records[n-1]
		fmt.Fprintf(os.Stderr, "=== Record %d (%d fields) ===\n", n, len(rec.Fields))
		for i, f := range rec.Fields {
			fmt.Fprintf(os.Stderr, "  Field %d: %s\n", i+1, strings.ToUpper(f.Name))
			fmt.Fprintf(os.Stderr, "    Declared length: %d\n", f.Length)
			fmt.Fprintf(os.Stderr, "    Source bytes: %d (%s)\n", len(f.RawBytes), hexPreview(f.RawBytes))
			fmt.Fprintf(os.Stderr, "    Text: %q (%d characters)\n", f.Text, len([]rune(f.Text)))
			if f.Trailing != "" {
				fmt.Fprintf(os.Stderr, "    Trailing: %q\n", f.Trailing)
			}
		}
		if rec.Trailing != "" {
			fmt.Fprintf(os.Stderr, "  Record trailing: %q\n", rec.Trailing)
		}
	}
	return nil
}

// parseRecordSpec expands "1,3,5" or "all" into 1-based record indices.
func parseRecordSpec(spec string, total int) ([]int, error) {
	if strings.EqualFold(strings.TrimSpace(spec), "all") {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i + 1
		}
		return indices, nil
	}
	var indices []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid record number %q", part)
		}
		indices = append(indices, n)
	}
	return indices, nil
}

func hexPreview(b []byte) string {
	const max = 16
	var sb strings.Builder
	for i, c := range b {
		if i == max {
			fmt.Fprintf(&sb, "... %d more", len(b)-max)
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
