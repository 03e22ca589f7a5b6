package markdown

import (
	"strings"

	"github.com/yaklabco/marcup/pkg/langdetect"
	"github.com/yaklabco/marcup/pkg/mdast"
	"github.com/yaklabco/marcup/pkg/parser"
)

// minFenceLength is the shortest run of backticks or tildes that opens a code fence.
const minFenceLength = 3

// maxUnderlineIndent is the deepest indent a setext underline may have.
const maxUnderlineIndent = 3

// grammar holds the options that block productions depend on.
type grammar struct {
	detectLanguage bool
}

// block tries each block production in priority order. Paragraph comes last
// because it accepts nearly any line.
func (g *grammar) block(s parser.Span) (parser.Span, mdast.Locatable[mdast.Block], error) {
	return parser.Context("Block", parser.Alt(
		asBlock(parser.Context("Header", parser.Locate(atxHeading))),
		asBlock(parser.Context("Code", parser.Locate(g.fencedCode))),
		asBlock(parser.Context("Blockquote", parser.Locate(blockQuote))),
		asBlock(parser.Context("Setext Header", parser.Locate(setextHeading))),
		asBlock(parser.Context("Paragraph", parser.Locate(paragraph))),
	))(s)
}

func asBlock[T mdast.Block](p parser.Parser[mdast.Locatable[T]]) parser.Parser[mdast.Locatable[mdast.Block]] {
	return parser.Map(p, func(l mdast.Locatable[T]) mdast.Locatable[mdast.Block] {
		return mdast.Map(l, func(v T) mdast.Block { return v })
	})
}

func isHash(b byte) bool { return b == '#' }

// atxMarker matches the opening run of '#' and its mandatory space, returning the depth.
func atxMarker(s parser.Span) (parser.Span, int, error) {
	rest, _, err := parser.BeginningOfLine(s)
	if err != nil {
		return s, 0, err
	}
	rest, marks, err := parser.Verify(parser.TakeWhile1(isHash), func(m parser.Span) bool {
		return m.Len() >= mdast.MinHeadingDepth && m.Len() <= mdast.MaxHeadingDepth
	}, "1-6 '#' characters")(rest)
	if err != nil {
		return s, 0, err
	}
	rest, _, err = parser.Char(' ')(rest)
	if err != nil {
		return s, 0, err
	}
	return rest, marks.Len(), nil
}

// atxHeading parses "#{1,6} content". Once the marker and its space have
// matched the production is committed: a missing body is a hard failure
// rather than a cue to try Paragraph.
func atxHeading(s parser.Span) (parser.Span, mdast.Heading, error) {
	rest, depth, err := atxMarker(s)
	if err != nil {
		return s, mdast.Heading{}, err
	}

	rest, content, err := parser.Cut(parser.Context("Header Content", headingTail))(rest)
	if err != nil {
		return s, mdast.Heading{}, err
	}

	heading, err := mdast.NewHeading(depth, false, content)
	if err != nil {
		return s, mdast.Heading{}, parser.Fail(s, "%v", err)
	}
	return rest, heading, nil
}

// headingTail parses the rest of a heading line, dropping surrounding
// whitespace and an optional closing run of '#'.
func headingTail(s parser.Span) (parser.Span, mdast.InlineElementContainer, error) {
	rest, line, err := parser.TakeUntilEndOfLineOrInput(s)
	if err != nil {
		return s, mdast.InlineElementContainer{}, err
	}

	content := stripClosingSequence(parser.TrimWhitespace(line))
	if content.IsEmpty() {
		return s, mdast.InlineElementContainer{}, parser.Fail(s, "expected heading content")
	}

	children, err := parseInlineSpan(content)
	if err != nil {
		return s, mdast.InlineElementContainer{}, err
	}
	return rest, children, nil
}

// stripClosingSequence drops a trailing run of '#' that is preceded by whitespace.
func stripClosingSequence(content parser.Span) parser.Span {
	n := 0
	for n < content.Len() && content.At(content.Len()-1-n) == '#' {
		n++
	}
	switch {
	case n == 0:
		return content
	case n == content.Len():
		return content.DropEnd(n)
	case parser.IsSpace(content.At(content.Len() - 1 - n)):
		return parser.TrimTrailingWhitespace(content.DropEnd(n))
	default:
		return content
	}
}

// setextHeading parses a single content line followed by an underline of
// '=' (depth 1) or '-' (depth 2).
func setextHeading(s parser.Span) (parser.Span, mdast.Heading, error) {
	rest, _, err := parser.BeginningOfLine(s)
	if err != nil {
		return s, mdast.Heading{}, err
	}
	if _, _, err := parser.Not(parser.BlankLine)(rest); err != nil {
		return s, mdast.Heading{}, err
	}

	rest, line, err := parser.TakeUntilEndOfLineOrInput(rest)
	if err != nil {
		return s, mdast.Heading{}, err
	}
	rest, _, err = parser.LineEnding(rest)
	if err != nil {
		return s, mdast.Heading{}, err
	}

	rest, depth, err := setextUnderline(rest)
	if err != nil {
		return s, mdast.Heading{}, err
	}

	children, err := parseInlineSpan(parser.TrimWhitespace(line))
	if err != nil {
		return s, mdast.Heading{}, err
	}

	heading, err := mdast.NewHeading(depth, true, children)
	if err != nil {
		return s, mdast.Heading{}, parser.Fail(s, "%v", err)
	}
	return rest, heading, nil
}

func setextUnderline(s parser.Span) (parser.Span, int, error) {
	rest, indent, _ := parser.Space0(s)
	if indent.Len() > maxUnderlineIndent {
		return s, 0, parser.Fail(s, "setext underline indented too far")
	}

	depth := 0
	marker, ok := rest.Peek()
	switch {
	case ok && marker == '=':
		depth = 1
	case ok && marker == '-':
		depth = 2
	default:
		return s, 0, parser.Fail(rest, "expected setext underline")
	}

	rest, _, _ = parser.TakeWhile1(func(b byte) bool { return b == marker })(rest)
	rest, _, _ = parser.Space0(rest)
	if _, _, err := atLineEnd(rest); err != nil {
		return s, 0, err
	}
	return rest, depth, nil
}

// fence describes an opening code fence.
type fence struct {
	char   byte
	length int
	info   string
}

func codeFence(s parser.Span) (parser.Span, fence, error) {
	rest, _, err := parser.BeginningOfLine(s)
	if err != nil {
		return s, fence{}, err
	}

	c, ok := rest.Peek()
	if !ok || (c != '`' && c != '~') {
		return s, fence{}, parser.Fail(rest, "expected code fence")
	}
	rest, run, _ := parser.TakeWhile1(func(b byte) bool { return b == c })(rest)
	if run.Len() < minFenceLength {
		return s, fence{}, parser.Fail(s, "code fence needs at least %d characters", minFenceLength)
	}

	rest, info, _ := parser.NotLineEnding(rest)
	infoText := parser.TrimWhitespace(info).String()
	if c == '`' && strings.Contains(infoText, "`") {
		return s, fence{}, parser.Fail(info, "backtick fence info must not contain backticks")
	}

	return rest, fence{char: c, length: run.Len(), info: infoText}, nil
}

func closingFence(open fence) parser.Parser[struct{}] {
	return func(s parser.Span) (parser.Span, struct{}, error) {
		rest, _, err := parser.BeginningOfLine(s)
		if err != nil {
			return s, struct{}{}, err
		}
		rest, indent, _ := parser.Space0(rest)
		if indent.Len() > maxUnderlineIndent {
			return s, struct{}{}, parser.Fail(s, "closing fence indented too far")
		}
		rest, run, err := parser.TakeWhile1(func(b byte) bool { return b == open.char })(rest)
		if err != nil || run.Len() < open.length {
			return s, struct{}{}, parser.Fail(s, "expected closing fence")
		}
		rest, _, _ = parser.Space0(rest)
		if _, _, err := atLineEnd(rest); err != nil {
			return s, struct{}{}, err
		}
		return rest, struct{}{}, nil
	}
}

// fencedCode parses a fenced code block. Its body is literal. A fence that is
// never closed runs to the end of the input.
func (g *grammar) fencedCode(s parser.Span) (parser.Span, mdast.Code, error) {
	rest, open, err := codeFence(s)
	if err != nil {
		return s, mdast.Code{}, err
	}

	closing := closingFence(open)
	codeLine := parser.Preceded(parser.LineEnding, parser.Preceded(
		parser.Not(parser.EndOfInput),
		parser.Preceded(parser.Not(closing), parser.Map(parser.NotLineEnding, parser.Span.String)),
	))

	rest, lines, err := parser.Many0(codeLine)(rest)
	if err != nil {
		return s, mdast.Code{}, err
	}
	rest, _, _ = parser.Optional(parser.Preceded(parser.LineEnding, closing))(rest)

	code := mdast.Code{Value: strings.Join(lines, "\n")}
	if open.info != "" {
		lang, meta := open.info, ""
		if i := strings.IndexAny(open.info, " \t"); i >= 0 {
			lang, meta = open.info[:i], strings.TrimSpace(open.info[i:])
		}
		code.Lang = lang
		code.Meta = meta
	}
	if code.Lang == "" && g.detectLanguage && code.Value != "" {
		if lang, ok := langdetect.Detect([]byte(code.Value)); ok {
			code.Lang = lang
		}
	}
	return rest, code, nil
}

// blockQuote parses either a run of indented lines or a run of "> " lines.
func blockQuote(s parser.Span) (parser.Span, mdast.BlockQuote, error) {
	return parser.Map(parser.Alt(
		lineSeparated(indentedQuoteLine),
		markerQuote,
	), mdast.NewBlockQuote)(s)
}

// indentedQuoteLine parses a non-blank line indented by four spaces or a tab.
func indentedQuoteLine(s parser.Span) (parser.Span, mdast.Locatable[string], error) {
	rest, _, err := parser.BeginningOfLine(s)
	if err != nil {
		return s, mdast.Locatable[string]{}, err
	}
	rest, indent, _ := parser.Space0(rest)
	if indent.Index("\t") < 0 && indent.Len() < 4 {
		return s, mdast.Locatable[string]{}, parser.Fail(s, "expected four spaces or a tab")
	}
	rest, line, err := parser.Locate(parser.Map(parser.TakeUntilEndOfLineOrInput, parser.Span.String))(rest)
	if err != nil {
		return s, mdast.Locatable[string]{}, err
	}
	return rest, line, nil
}

// markerQuoteLine parses a line starting with "> ", or a bare ">".
func markerQuoteLine(s parser.Span) (parser.Span, mdast.Locatable[string], error) {
	rest, _, err := parser.BeginningOfLine(s)
	if err != nil {
		return s, mdast.Locatable[string]{}, err
	}
	rest, _, err = parser.Char('>')(rest)
	if err != nil {
		return s, mdast.Locatable[string]{}, err
	}
	if rest.HasPrefix(" ") {
		rest = rest.Advance(1)
	} else if _, _, err := atLineEnd(rest); err != nil {
		return s, mdast.Locatable[string]{}, parser.Fail(rest, `expected "> "`)
	}
	rest, line, _ := parser.Locate(parser.Map(parser.NotLineEnding, parser.Span.String))(rest)
	return rest, line, nil
}

// emptyQuoteLine parses a blank line between "> " lines as an empty quote line.
func emptyQuoteLine(s parser.Span) (parser.Span, mdast.Locatable[string], error) {
	rest, _, err := parser.BeginningOfLine(s)
	if err != nil {
		return s, mdast.Locatable[string]{}, err
	}
	return parser.Terminated(
		parser.Locate(parser.Value(parser.Space0, "")),
		parser.Peek(parser.LineEnding),
	)(rest)
}

// markerQuote parses "> " lines. Blank lines between them belong to the quote;
// blank lines after the last one do not.
func markerQuote(s parser.Span) (parser.Span, []mdast.Locatable[string], error) {
	rest, lines, err := lineSeparated(markerQuoteLine)(s)
	if err != nil {
		return s, nil, err
	}

	blanksThenLine := func(s parser.Span) (parser.Span, []mdast.Locatable[string], error) {
		rest, blanks, _ := parser.Many0(parser.Preceded(parser.LineEnding, emptyQuoteLine))(s)
		rest, line, err := parser.Preceded(parser.LineEnding, markerQuoteLine)(rest)
		if err != nil {
			return s, nil, err
		}
		return rest, append(blanks, line), nil
	}

	rest, groups, err := parser.Many0(blanksThenLine)(rest)
	if err != nil {
		return s, nil, err
	}
	for _, group := range groups {
		lines = append(lines, group...)
	}
	return rest, lines, nil
}

// paragraph parses consecutive lines of inline content. It ends at a blank
// line or a line that starts another heading or a code fence.
func paragraph(s parser.Span) (parser.Span, mdast.Paragraph, error) {
	rest, _, err := parser.BeginningOfLine(s)
	if err != nil {
		return s, mdast.Paragraph{}, err
	}

	rest, lines, err := lineSeparated(parser.Preceded(continueParagraph, paragraphLine))(rest)
	if err != nil {
		return s, mdast.Paragraph{}, err
	}

	p, err := mdast.NewParagraph(mdast.ConcatContainers(lines...))
	if err != nil {
		return s, mdast.Paragraph{}, parser.Fail(s, "%v", err)
	}
	return rest, p, nil
}

func continueParagraph(s parser.Span) (parser.Span, struct{}, error) {
	for _, guard := range []parser.Parser[struct{}]{
		parser.Not(parser.BlankLine),
		parser.Not(atxMarker),
		parser.Not(setextHeading),
		parser.Not(codeFence),
	} {
		if _, _, err := guard(s); err != nil {
			return s, struct{}{}, err
		}
	}
	return s, struct{}{}, nil
}

func paragraphLine(s parser.Span) (parser.Span, mdast.InlineElementContainer, error) {
	return parser.Delimited(
		parser.Space0,
		parser.Map(inlineContainer, mdast.Locatable[mdast.InlineElementContainer].Value),
		atLineEnd,
	)(s)
}

// atLineEnd succeeds without consuming input before a line terminator or at the end of input.
func atLineEnd(s parser.Span) (parser.Span, struct{}, error) {
	return parser.Peek(parser.EndOfLineOrInput)(s)
}

// lineSeparated matches p on one or more consecutive lines. Block productions
// stop before the terminator of their last line, so a block's position covers
// its content only; the document loop consumes the terminator.
func lineSeparated[T any](p parser.Parser[T]) parser.Parser[[]T] {
	return func(s parser.Span) (parser.Span, []T, error) {
		rest, first, err := p(s)
		if err != nil {
			return s, nil, err
		}
		rest, more, err := parser.Many0(parser.Preceded(parser.LineEnding, p))(rest)
		if err != nil {
			return s, nil, err
		}
		return rest, append([]T{first}, more...), nil
	}
}
