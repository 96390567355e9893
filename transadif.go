package transadif

import (
	"go.uber.org/zap"

	"github.com/wippyai/transadif/adif"
	"github.com/wippyai/transadif/charset"
	"github.com/wippyai/transadif/transcoder"
)

// Options configure one Process invocation.
type Options struct {
	// InputEncoding is an explicit source encoding hint; empty means
	// auto-detect. An unsupported name is fatal.
	InputEncoding string
	// OutputEncoding names the target encoding; empty means UTF-8.
	OutputEncoding string
	// Replace substitutes unrepresentable characters; zero means escape
	// them as &0xNN; references instead.
	Replace rune
	// Delete drops unrepresentable characters instead of replacing.
	Delete bool
	// Transliterate approximates Latin text in ASCII output.
	Transliterate bool
	// Strict disables every correction and fails on anything lossy.
	Strict bool
}

// Process runs the whole pipeline on one buffer: detect the source
// encoding, parse, and re-serialize into the requested target. The returned
// warnings describe corrections and substitutions; they are non-fatal.
func Process(data []byte, opts Options) ([]byte, []string, error) {
	src, err := charset.Detect(data, opts.InputEncoding)
	if err != nil {
		return nil, nil, err
	}

	target := charset.UTF8
	if opts.OutputEncoding != "" {
		target, err = charset.ParseLabel(opts.OutputEncoding)
		if err != nil {
			return nil, nil, err
		}
	}

	doc, warnings, err := adif.Parse(data, src, adif.Options{Strict: opts.Strict})
	if err != nil {
		return nil, warnings, err
	}

	out, encWarnings, err := transcoder.Encode(doc, src, target, transcoder.Policy{
		Replace:       opts.Replace,
		Delete:        opts.Delete,
		Transliterate: opts.Transliterate,
		Strict:        opts.Strict,
	})
	warnings = append(warnings, encWarnings...)
	if err != nil {
		return nil, warnings, err
	}
	return out, warnings, nil
}

// SetLogger installs one logger across all pipeline packages.
func SetLogger(l *zap.Logger) {
	charset.SetLogger(l)
	adif.SetLogger(l)
	transcoder.SetLogger(l)
}
