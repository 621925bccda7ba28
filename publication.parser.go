package publication

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/itsatony/go-publication/internal"
	"go.uber.org/zap"
)

// Parser turns one in-memory document into a Document.
//
// A parser is built for a single document and consumed by exactly one call to
// Parse or EmitWith. It is not safe for concurrent use.
type Parser struct {
	scanner    *internal.Scanner
	extensions []Extension
	names      []string
	tags       *internal.TagRegistry
	consumed   bool
	logger     *zap.Logger
}

// NewParser creates a parser over source with no extensions.
func NewParser(source string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldSource, len(source)))
	return &Parser{
		scanner: internal.NewScanner(source, logger),
		tags:    internal.NewTagRegistry(logger),
		logger:  logger,
	}
}

// AddExtension registers ext after all previously added extensions.
// It fails if ext is nil or any of its tags is empty, reserved or already claimed.
func (p *Parser) AddExtension(ext Extension) error {
	if ext == nil {
		return NewTagRegistryError("", nil)
	}
	name := extensionName(ext)

	_, builtin := ext.(builtinExtension)
	tags := ext.Tags()
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = string(tag)
	}
	if err := p.tags.RegisterAll(names, name, builtin); err != nil {
		return NewTagRegistryError(name, err)
	}

	p.extensions = append(p.extensions, ext)
	p.names = append(p.names, name)
	p.logger.Debug(LogMsgExtensionAdded,
		zap.String(LogFieldExtension, name),
		zap.Int(LogFieldExtensions, len(p.extensions)),
	)
	return nil
}

// MustAddExtension adds an extension and panics if registration fails.
func (p *Parser) MustAddExtension(ext Extension) {
	if err := p.AddExtension(ext); err != nil {
		panic(err)
	}
}

// Extensions returns the registered extensions in registration order.
func (p *Parser) Extensions() []Extension {
	out := make([]Extension, len(p.extensions))
	copy(out, p.extensions)
	return out
}

// Parse consumes the parser and returns the whole document.
// A document holding only whitespace and comments yields zero blocks.
func (p *Parser) Parse() (Document, error) {
	var doc Document
	err := p.run(func(b Block) {
		doc = append(doc, b)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// EmitWith consumes the parser and renders each block with emitter as it is parsed.
// On error no partial output is returned.
func (p *Parser) EmitWith(emitter Emitter) (string, error) {
	if emitter == nil {
		return "", NewNilEmitterError()
	}
	var out strings.Builder
	p.logger.Debug(LogMsgEmitStart)
	err := p.run(func(b Block) {
		emitter.EmitBlock(&out, b)
	})
	if err != nil {
		return "", err
	}
	p.logger.Debug(LogMsgEmitEnd, zap.Int(LogFieldOutput, out.Len()))
	return out.String(), nil
}

// run is the top-level document loop shared by the terminal operations.
func (p *Parser) run(sink func(Block)) error {
	if p.consumed {
		return NewParserConsumedError()
	}
	p.consumed = true
	p.logger.Debug(LogMsgParseStart, zap.Int(LogFieldExtensions, len(p.extensions)))

	count := 0
	p.MovePastWhitespace()
	for !p.IsAtEnd() {
		block, err := p.ParseBlock()
		if err != nil {
			return err
		}
		sink(block)
		count++
		p.MovePastWhitespace()
	}

	p.logger.Debug(LogMsgParseEnd, zap.Int(LogFieldBlocks, count))
	return nil
}

// ParseBlock parses one block at the cursor: the first extension whose block
// rule matches wins, otherwise a paragraph is parsed.
func (p *Parser) ParseBlock() (Block, error) {
	for i, ext := range p.extensions {
		start := p.Offset()
		block, ok, err := ext.ParseBlock(p)
		if err != nil {
			return nil, err
		}
		if ok {
			p.logger.Debug(LogMsgBlockMatched,
				zap.String(LogFieldExtension, p.names[i]),
				zap.Int(LogFieldOffset, start),
			)
			return block, nil
		}
		p.Reset(start)
	}
	return p.parseParagraph()
}

func (p *Parser) parseParagraph() (Block, error) {
	if p.IsAtEnd() {
		return nil, NewUnexpectedEndOfInputError(p.Position())
	}
	elements, err := p.ParseElements()
	if err != nil {
		return nil, err
	}
	return &Paragraph{Elements: elements}, nil
}

// ParseElements runs the element loop until SeesEndOfBlock holds.
//
// Extensions get a trial at every position. Otherwise one rune is consumed:
// '#' skips a comment, whitespace runs collapse into a single pending space,
// and anything else is appended to the current text run.
func (p *Parser) ParseElements() ([]Element, error) {
	var elements []Element
	var text strings.Builder
	pendingSpace := false

	flushSpace := func() {
		if pendingSpace {
			text.WriteRune(' ')
			pendingSpace = false
		}
	}

next:
	for !p.SeesEndOfBlock() {
		for i, ext := range p.extensions {
			start := p.Offset()
			el, ok, err := ext.ParseElement(p)
			if err != nil {
				return nil, err
			}
			if ok {
				p.logger.Debug(LogMsgElementMatched,
					zap.String(LogFieldExtension, p.names[i]),
					zap.Int(LogFieldOffset, start),
				)
				flushSpace()
				if text.Len() > 0 {
					elements = append(elements, &Text{Content: text.String()})
					text.Reset()
				}
				elements = append(elements, el)
				continue next
			}
			p.Reset(start)
		}

		switch ch := p.Take(); {
		case ch == CharComment:
			p.MovePastComment()
		case unicode.IsSpace(ch):
			pendingSpace = true
		default:
			flushSpace()
			text.WriteRune(ch)
		}
	}

	if text.Len() > 0 {
		elements = append(elements, &Text{Content: text.String()})
	}
	return elements, nil
}

// SeesEndOfBlock reports whether the current block ends at the cursor: a blank
// line, a final newline, the end of input, or any extension voting yes.
// Newlines are "\n" or "\r\n".
func (p *Parser) SeesEndOfBlock() bool {
	if p.seesBuiltinEndOfBlock() {
		return true
	}
	for _, ext := range p.extensions {
		if ext.SeesEndOfBlock(p) {
			return true
		}
	}
	return false
}

func (p *Parser) seesBuiltinEndOfBlock() bool {
	if p.IsAtEnd() {
		return true
	}
	width := p.newlineAt(0)
	if width == 0 {
		return false
	}
	return p.Offset()+width >= p.scanner.Len() || p.newlineAt(width) > 0
}

// newlineAt returns the width of the newline k runes after the cursor, or 0.
func (p *Parser) newlineAt(k int) int {
	switch {
	case p.PeekAt(k) == CharNewline:
		return 1
	case p.PeekAt(k) == CharCR && p.PeekAt(k+1) == CharNewline:
		return 2
	}
	return 0
}

// Peek returns the rune at the cursor, or CharEOF at the end of input.
func (p *Parser) Peek() rune { return p.scanner.Peek() }

// PeekAt returns the rune k positions after the cursor, or CharEOF.
func (p *Parser) PeekAt(k int) rune { return p.scanner.PeekAt(k) }

// PeekMany returns a copy of up to n runes from the cursor without advancing.
func (p *Parser) PeekMany(n int) []rune {
	return append([]rune(nil), p.scanner.PeekMany(n)...)
}

// HasPrefix reports whether the remaining input starts with prefix.
func (p *Parser) HasPrefix(prefix []rune) bool { return p.scanner.HasPrefix(prefix) }

// Take consumes one rune.
func (p *Parser) Take() rune { return p.scanner.Take() }

// TakeMany consumes up to n runes and returns a copy of them.
func (p *Parser) TakeMany(n int) []rune {
	return append([]rune(nil), p.scanner.TakeMany(n)...)
}

// IsAtEnd reports whether the whole input has been consumed.
func (p *Parser) IsAtEnd() bool { return p.scanner.IsAtEnd() }

// Offset returns the cursor, for use with Reset around speculative parses.
func (p *Parser) Offset() int { return p.scanner.Offset() }

// Reset moves the cursor back to an offset previously returned by Offset.
func (p *Parser) Reset(offset int) { p.scanner.Reset(offset) }

// MovePastWhitespace skips whitespace and # comments.
func (p *Parser) MovePastWhitespace() { p.scanner.SkipWhitespace() }

// MovePastComment skips through the next newline or to the end of input.
func (p *Parser) MovePastComment() { p.scanner.SkipComment() }

// Position returns the line and column of the cursor.
func (p *Parser) Position() Position {
	pos := p.scanner.Position(p.Offset())
	return Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func extensionName(ext Extension) string {
	if named, ok := ext.(NamedExtension); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", ext)
}
