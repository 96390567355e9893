package adif

import (
	"go.uber.org/zap"

	"github.com/wippyai/transadif/adif/internal/ast"
	"github.com/wippyai/transadif/adif/internal/parser"
	"github.com/wippyai/transadif/charset"
)

// Document model types, aliased from the internal package so the parser and
// the encoder share one definition.
type (
	Document = ast.Document
	Header   = ast.Header
	Record   = ast.Record
	Field    = ast.Field
)

// ProgramID is the identifier SetProgramID writes into headers.
const ProgramID = ast.ProgramID

// Options control parsing behavior.
type Options struct {
	// Strict disables all corrections (entities, mojibake, length
	// reinterpretation) and makes decode errors fatal.
	Strict bool
}

// Parse tokenizes a byte buffer under the given source encoding and builds
// a Document. Warnings describe corrections applied and suspicious content;
// the parse itself either fully succeeds or fails.
func Parse(data []byte, src charset.Label, opts Options) (*Document, []string, error) {
	return parser.New(data, src, parser.Options{Strict: opts.Strict}).Parse()
}

// SetLogger installs a logger for parse diagnostics.
func SetLogger(l *zap.Logger) {
	parser.SetLogger(l)
}
