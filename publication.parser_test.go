package publication

import (
	"errors"
	"strings"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-publication/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// quote parses "> text" into an ExtensionBlock, re-entering the element loop.
type quote struct{ BaseExtension }

func (quote) Name() string { return "quote" }
func (quote) Tags() []Tag  { return []Tag{"quote"} }

func (quote) ParseBlock(p *Parser) (Block, bool, error) {
	if p.Peek() != '>' {
		return nil, false, nil
	}
	p.Take()
	p.MovePastWhitespace()
	elements, err := p.ParseElements()
	if err != nil {
		return nil, false, err
	}
	return NewExtensionBlock("quote", elements...), true, nil
}

// math parses "$$text$$" into an ExtensionElement.
type math struct{ BaseExtension }

var mathDelim = []rune("$$")

func (math) Tags() []Tag { return []Tag{"math"} }

func (math) ParseElement(p *Parser) (Element, bool, error) {
	if !p.HasPrefix(mathDelim) {
		return nil, false, nil
	}
	p.TakeMany(len(mathDelim))

	var sb strings.Builder
	for !p.SeesEndOfBlock() {
		if p.HasPrefix(mathDelim) {
			p.TakeMany(len(mathDelim))
			return NewExtensionElement("math", NewText(sb.String())), true, nil
		}
		sb.WriteRune(p.Take())
	}
	return nil, false, nil
}

// greedy consumes input and then declines.
type greedy struct{ BaseExtension }

func (greedy) ParseElement(p *Parser) (Element, bool, error) {
	p.TakeMany(3)
	p.MovePastWhitespace()
	return nil, false, nil
}

// witness records what it sees on its first trial.
type witness struct {
	BaseExtension
	seen *string
}

func (w witness) ParseElement(p *Parser) (Element, bool, error) {
	if *w.seen == "" {
		*w.seen = string(p.PeekMany(5))
	}
	return nil, false, nil
}

// dangling requests a block after its "$" marker, failing at end of input.
type dangling struct{ BaseExtension }

func (dangling) ParseBlock(p *Parser) (Block, bool, error) {
	if p.Peek() != '$' {
		return nil, false, nil
	}
	p.Take()
	p.MovePastWhitespace()
	block, err := p.ParseBlock()
	if err != nil {
		return nil, false, err
	}
	return block, true, nil
}

func newTestParser(t *testing.T, source string, exts ...Extension) *Parser {
	t.Helper()
	p := NewParser(source, nil)
	for _, ext := range exts {
		require.NoError(t, p.AddExtension(ext))
	}
	return p
}

func TestParser_EmptyDocuments(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"mixed whitespace", " \t\n\r\n  \n"},
		{"comment only", "# nothing here"},
		{"comments and blank lines", "# one\n\n   # two\n\t# three\n"},
		{"comment without newline after whitespace", "\n\n#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, tt.source, Bold{}, Italics{}, MustNewLists("**"))
			doc, err := p.Parse()
			require.NoError(t, err)
			assert.Empty(t, doc)
		})
	}
}

func TestParser_Paragraphs(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected Document
	}{
		{
			name:     "single word",
			source:   "hello",
			expected: Document{NewParagraph(NewText("hello"))},
		},
		{
			name:     "whitespace runs collapse",
			source:   "  a \t b\n c  \n\n  d  ",
			expected: Document{NewParagraph(NewText("a b c")), NewParagraph(NewText("d"))},
		},
		{
			name:     "single newline continues the paragraph",
			source:   "first line\nsecond line\n",
			expected: Document{NewParagraph(NewText("first line second line"))},
		},
		{
			name:     "blank line separates paragraphs",
			source:   "one\n\ntwo\n\n\n\nthree",
			expected: Document{NewParagraph(NewText("one")), NewParagraph(NewText("two")), NewParagraph(NewText("three"))},
		},
		{
			name:     "CRLF line endings",
			source:   "one\r\ntwo\r\n\r\nthree\r\n",
			expected: Document{NewParagraph(NewText("one two")), NewParagraph(NewText("three"))},
		},
		{
			name:     "trailing comment",
			source:   "Hello # hidden\nworld",
			expected: Document{NewParagraph(NewText("Hello world"))},
		},
		{
			name:     "comment at end of input",
			source:   "a #c",
			expected: Document{NewParagraph(NewText("a"))},
		},
		{
			name:     "comment between paragraphs",
			source:   "# heading comment\nText\n\n# another\nMore",
			expected: Document{NewParagraph(NewText("Text")), NewParagraph(NewText("More"))},
		},
		{
			name:     "unicode text",
			source:   "Grüße  an   alle ✓",
			expected: Document{NewParagraph(NewText("Grüße an alle ✓"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewParser(tt.source, nil).Parse()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc)
		})
	}
}

func TestParser_UnexpectedEndOfInput(t *testing.T) {
	t.Run("block requested at end", func(t *testing.T) {
		p := newTestParser(t, "")
		block, err := p.ParseBlock()
		require.Error(t, err)
		assert.Nil(t, block)
		assert.True(t, IsUnexpectedEndOfInput(err))
		assert.Contains(t, err.Error(), ErrMsgUnexpectedEOF)
	})

	t.Run("reported position", func(t *testing.T) {
		p := newTestParser(t, "ab\ncd")
		p.TakeMany(5)
		_, err := p.ParseBlock()
		require.Error(t, err)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		line, ok := customErr.GetMetadata(MetaKeyLine)
		assert.True(t, ok)
		assert.Equal(t, "2", line)
		column, ok := customErr.GetMetadata(MetaKeyColumn)
		assert.True(t, ok)
		assert.Equal(t, "3", column)
	})

	t.Run("propagates through an extension without partial output", func(t *testing.T) {
		p := newTestParser(t, "first paragraph\n\n$", dangling{})
		out, err := p.EmitWith(NewHTMLEmitter())
		require.Error(t, err)
		assert.True(t, IsUnexpectedEndOfInput(err))
		assert.Empty(t, out)
	})

	t.Run("propagates from Parse", func(t *testing.T) {
		p := newTestParser(t, "text $", dangling{})
		doc, err := p.Parse()
		require.NoError(t, err)
		assert.Len(t, doc, 1)

		p = newTestParser(t, "$   # only a comment", dangling{})
		doc, err = p.Parse()
		require.Error(t, err)
		assert.Nil(t, doc)
	})
}

func TestParser_SingleUse(t *testing.T) {
	p := newTestParser(t, "text")
	_, err := p.Parse()
	require.NoError(t, err)

	_, err = p.Parse()
	require.Error(t, err)
	assert.True(t, IsParserConsumed(err))

	_, err = p.EmitWith(NewTextEmitter())
	require.Error(t, err)
	assert.True(t, IsParserConsumed(err))
	assert.False(t, IsUnexpectedEndOfInput(err))
}

func TestParser_EmitWithNilEmitter(t *testing.T) {
	p := newTestParser(t, "text")
	_, err := p.EmitWith(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgNilEmitter)

	// a rejected call does not consume the parser
	out, err := p.EmitWith(NewTextEmitter())
	require.NoError(t, err)
	assert.Equal(t, "text\n", out)
}

func TestParser_Rollback(t *testing.T) {
	var seen string
	p := newTestParser(t, "Hello world", greedy{}, witness{seen: &seen})

	doc, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "Hello", seen)
	assert.Equal(t, Document{NewParagraph(NewText("Hello world"))}, doc)
}

func TestParser_UnterminatedDelimiter(t *testing.T) {
	// bold consumes "*open" before reaching the blank line and declining
	p := newTestParser(t, "*open\n\nclosed*", Bold{})
	doc, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, Document{
		NewParagraph(NewText("*open")),
		NewParagraph(NewText("closed*")),
	}, doc)
}

func TestParser_ReentrantExtension(t *testing.T) {
	p := newTestParser(t, "> quoted *bold* and $$x$$\n\nplain", Bold{}, quote{}, math{})
	doc, err := p.Parse()
	require.NoError(t, err)

	assert.Equal(t, Document{
		NewExtensionBlock("quote",
			NewText("quoted "),
			NewExtensionElement(TagBold, NewText("bold")),
			NewText(" and "),
			NewExtensionElement("math", NewText("x")),
		),
		NewParagraph(NewText("plain")),
	}, doc)
}

func TestParser_ExtensionOrderFirstMatchWins(t *testing.T) {
	// both rules start at '*'; the one registered first decides
	p := newTestParser(t, "**", MustNewLists("*"), Bold{})
	doc, err := p.Parse()
	require.NoError(t, err)
	require.Len(t, doc, 1)
	list, ok := doc[0].(*ExtensionBlocks)
	require.True(t, ok)
	assert.Equal(t, TagList, list.Tag)
	assert.Len(t, list.Blocks, 2)
}

func TestParser_AddExtension(t *testing.T) {
	t.Run("nil extension", func(t *testing.T) {
		p := NewParser("", nil)
		err := p.AddExtension(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilExtension)
	})

	t.Run("tag collision keeps the first owner", func(t *testing.T) {
		p := newTestParser(t, "", math{})
		err := p.AddExtension(math{})
		require.Error(t, err)

		var regErr *internal.RegistryError
		require.True(t, errors.As(err, &regErr))
		assert.Equal(t, internal.ErrMsgTagAlreadyExists, regErr.Message)
		assert.Equal(t, "math", regErr.Tag)
		assert.Len(t, p.Extensions(), 1)
	})

	t.Run("reserved namespace", func(t *testing.T) {
		p := NewParser("", nil)
		err := p.AddExtension(struct{ BaseExtension }{})
		require.NoError(t, err, "extensions without tags are accepted")

		err = p.AddExtension(fakeBold{})
		require.Error(t, err)
		var regErr *internal.RegistryError
		require.True(t, errors.As(err, &regErr))
		assert.Equal(t, internal.ErrMsgTagReserved, regErr.Message)
		assert.Equal(t, string(TagBold), regErr.Tag)
	})

	t.Run("builtin tags collide with each other", func(t *testing.T) {
		p := newTestParser(t, "", Bold{})
		err := p.AddExtension(Bold{})
		require.Error(t, err)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		ext, ok := customErr.GetMetadata(MetaKeyExtension)
		assert.True(t, ok)
		assert.Equal(t, ExtensionNameBold, ext)
	})

	t.Run("empty tag", func(t *testing.T) {
		p := NewParser("", nil)
		err := p.AddExtension(emptyTag{})
		require.Error(t, err)
		assert.Empty(t, p.Extensions())
	})

	t.Run("must add panics", func(t *testing.T) {
		p := newTestParser(t, "", math{})
		assert.Panics(t, func() { p.MustAddExtension(math{}) })
	})
}

type fakeBold struct{ BaseExtension }

func (fakeBold) Tags() []Tag { return []Tag{TagBold} }

type emptyTag struct{ BaseExtension }

func (emptyTag) Tags() []Tag { return []Tag{"ok", ""} }

func TestParser_Primitives(t *testing.T) {
	p := NewParser("ab  # c\nd", nil)

	assert.Equal(t, 'a', p.Peek())
	assert.Equal(t, 'b', p.PeekAt(1))
	assert.Equal(t, CharEOF, p.PeekAt(100))
	assert.True(t, p.HasPrefix([]rune("ab")))

	peeked := p.PeekMany(2)
	peeked[0] = 'x'
	assert.Equal(t, 'a', p.Peek(), "PeekMany returns a copy")

	assert.Equal(t, []rune("ab"), p.TakeMany(2))
	p.MovePastWhitespace()
	assert.Equal(t, 'd', p.Peek())
	assert.Equal(t, Position{Offset: 8, Line: 2, Column: 1}, p.Position())

	p.Reset(0)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 'a', p.Take())

	p.Reset(9)
	assert.True(t, p.IsAtEnd())
	assert.Equal(t, CharEOF, p.Take())
}

func TestParser_SeesEndOfBlock(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		offset   int
		expected bool
	}{
		{"at end", "ab", 2, true},
		{"mid text", "ab", 1, false},
		{"blank line", "a\n\nb", 1, true},
		{"final newline", "a\n", 1, true},
		{"single newline", "a\nb", 1, false},
		{"blank CRLF line", "a\r\n\r\nb", 1, true},
		{"final CRLF", "a\r\n", 1, true},
		{"single CRLF", "a\r\nb", 1, false},
		{"lone carriage return", "a\r\rb", 1, false},
		{"bullet votes", "a\n** b", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, tt.source, MustNewLists("**"))
			p.Reset(tt.offset)
			assert.Equal(t, tt.expected, p.SeesEndOfBlock())
			assert.Equal(t, tt.offset, p.Offset(), "must not move the cursor")
		})
	}
}

func TestParser_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewParser("x *y*", zap.New(core))
	require.NoError(t, p.AddExtension(Bold{}))

	_, err := p.Parse()
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage(LogMsgParserCreated).Len())
	assert.Equal(t, 1, logs.FilterMessage(LogMsgExtensionAdded).Len())
	assert.Equal(t, 1, logs.FilterMessage(LogMsgElementMatched).Len())

	ends := logs.FilterMessage(LogMsgParseEnd).All()
	require.Len(t, ends, 1)
	assert.Equal(t, int64(1), ends[0].ContextMap()[LogFieldBlocks])
}
