// Package markdown parses a practical subset of Markdown into an mdast tree.
//
// The grammar covers ATX and setext headings, fenced code, block quotes,
// paragraphs, and inline emphasis and strong text. Parsing is a single pass
// of parser combinators over an immutable cursor, so every node carries the
// exact source position of the text it came from.
package markdown

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser"
)

// ErrTrailingInput is returned when the block loop stops before the end of the input.
var ErrTrailingInput = errors.New("unparsed trailing input")

// Parser parses Markdown documents.
type Parser struct {
	grammar grammar
	logger  *log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguageDetection sets Code.Lang from the block content when a fence
// has no info string.
func WithLanguageDetection(enabled bool) Option {
	return func(p *Parser) {
		p.grammar.detectLanguage = enabled
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses content into a FileSnapshot.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, content)
	root, err := p.parse(parser.NewSpanBytes(content))
	if err != nil {
		p.logger.Debug("parse failed", "path", path, "error", err)
		return nil, err
	}
	snapshot.Root = root

	p.logger.Debug("parsed document",
		"path", path,
		"bytes", len(content),
		"blocks", len(root.Value().Children),
	)
	return snapshot, nil
}

// ParseString parses a document held in a string.
func (p *Parser) ParseString(input string) (mdast.Locatable[mdast.Root], error) {
	return p.parse(parser.NewSpan(input))
}

// parse runs the document loop. Each block stops before its final line
// terminator; the loop consumes it along with any blank lines that follow.
// The root always spans the whole input.
func (p *Parser) parse(s parser.Span) (mdast.Locatable[mdast.Root], error) {
	var children []mdast.Locatable[mdast.Block]

	skipBlank := parser.Preceded(parser.Optional(parser.LineEnding), parser.Many0(parser.BlankLine))
	cur, _, _ := parser.Many0(parser.BlankLine)(s)
	for !cur.IsEmpty() {
		rest, block, err := p.grammar.block(cur)
		if err != nil {
			if parser.IsFatal(err) {
				return mdast.Locatable[mdast.Root]{}, err
			}
			return mdast.Locatable[mdast.Root]{}, fmt.Errorf("%w: %w", ErrTrailingInput, err)
		}
		if rest.Offset() == cur.Offset() {
			return mdast.Locatable[mdast.Root]{}, fmt.Errorf("%w: %w", ErrTrailingInput,
				parser.Fail(cur, "block made no progress"))
		}
		children = append(children, block)
		cur, _, _ = skipBlank(rest)
	}

	end := s.Advance(s.Len())
	return mdast.NewLocatable(mdast.NewRoot(children), mdast.NewPosition(s.Point(), end.Point())), nil
}

//nolint:gochecknoglobals // Stateless default parser.
var defaultParser = New()

// Parse parses a Markdown document with default options.
func Parse(input string) (mdast.Locatable[mdast.Root], error) {
	return defaultParser.ParseString(input)
}

// ParseBytes is like Parse but reads from a byte slice.
func ParseBytes(input []byte) (mdast.Locatable[mdast.Root], error) {
	return defaultParser.parse(parser.NewSpanBytes(input))
}

// ParseInline parses a single line of inline content.
func ParseInline(input string) (mdast.InlineElementContainer, error) {
	return parseInlineSpan(parser.NewSpan(input))
}
