package publication

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		assert.Equal(t, Config{}, engine.Config())

		out, err := engine.RenderFormat("*x* /y/", FormatHTML)
		require.NoError(t, err)
		assert.Equal(t, "<p>\n  *x* /y/\n</p>\n", out)
	})

	t.Run("invalid normalization", func(t *testing.T) {
		engine, err := New(WithNormalization("nfz"))
		require.Error(t, err)
		assert.Nil(t, engine)
		assert.Contains(t, err.Error(), ErrMsgInvalidNormalization)
	})

	t.Run("nil extension factory", func(t *testing.T) {
		_, err := New(WithExtension(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilExtensionFactory)
	})

	t.Run("must new panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNew(WithNormalization("nfz")) })
		assert.NotPanics(t, func() { MustNew(WithBold()) })
	})

	t.Run("options combine with config", func(t *testing.T) {
		engine := MustNew(
			WithBold(),
			WithConfig(Config{EnableItalics: true, ListBullet: "**"}),
			WithListBullet("-"),
		)
		assert.Equal(t, Config{EnableBold: true, EnableItalics: true, ListBullet: "-"}, engine.Config())
	})
}

func TestEngine_RenderFormat(t *testing.T) {
	engine := MustNew(WithBold(), WithItalics(), WithListBullet("**"))

	tests := []struct {
		name     string
		source   string
		format   string
		expected string
	}{
		{"html literal example", "This *isn't* Markdown!", FormatHTML, "<p>\n  This <strong>isn&apos;t</strong> Markdown!\n</p>\n"},
		{"html empty", "", FormatHTML, ""},
		{"text empty", "", FormatText, ""},
		{"text with list", "Groceries:\n** milk\n** /fresh/ bread", FormatText, "Groceries:\n\n- milk\n- fresh bread\n"},
		{"format with dot", "hi", ".txt", "hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.RenderFormat(tt.source, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		out, err := engine.RenderFormat("hi", "docx")
		require.Error(t, err)
		assert.Empty(t, out)
		assert.Contains(t, err.Error(), ErrMsgUnknownFormat)
	})
}

func TestEngine_Parse(t *testing.T) {
	engine := MustNew(WithBold())

	doc, err := engine.Parse("a *b*")
	require.NoError(t, err)
	assert.Equal(t, Document{NewParagraph(NewText("a "), NewExtensionElement(TagBold, NewText("b")))}, doc)

	// every call gets a fresh parser
	doc, err = engine.Parse("c")
	require.NoError(t, err)
	assert.Equal(t, Document{NewParagraph(NewText("c"))}, doc)
}

func TestEngine_NewParserExtensionOrder(t *testing.T) {
	engine := MustNew(
		WithExtension(func() (Extension, error) { return math{}, nil }),
		WithListBullet("**"),
		WithItalics(),
		WithBold(),
	)

	parser, err := engine.NewParser("")
	require.NoError(t, err)

	exts := parser.Extensions()
	require.Len(t, exts, 4)
	assert.IsType(t, Bold{}, exts[0])
	assert.IsType(t, Italics{}, exts[1])
	assert.IsType(t, &Lists{}, exts[2])
	assert.IsType(t, math{}, exts[3])
}

func TestEngine_CustomExtensions(t *testing.T) {
	engine := MustNew(
		WithBold(),
		WithExtension(func() (Extension, error) { return math{}, nil }),
		WithExtension(func() (Extension, error) { return quote{}, nil }),
	)
	engine.TaggedElement("math", func(*ExtensionElement) Markup {
		return Markup{Element: "span", Attrs: []Attr{{Name: "class", Value: "math"}}}
	})
	engine.TaggedBlock("quote", func(Block) Markup {
		return Markup{Element: "blockquote"}
	})

	out, err := engine.RenderFormat("> see $$x^2$$ *now*\n\nok", FormatHTML)
	require.NoError(t, err)
	assert.Equal(t,
		"<blockquote>see <span class=\"math\">x^2</span> <strong>now</strong></blockquote>\n<p>\n  ok\n</p>\n",
		out)

	t.Run("factory error", func(t *testing.T) {
		boom := errors.New("boom")
		engine := MustNew(WithExtension(func() (Extension, error) { return nil, boom }))
		_, err := engine.Parse("x")
		require.ErrorIs(t, err, boom)
	})

	t.Run("colliding factories", func(t *testing.T) {
		factory := func() (Extension, error) { return math{}, nil }
		engine := MustNew(WithExtension(factory), WithExtension(factory))
		_, err := engine.Parse("x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTagRegistration)
	})

	t.Run("reserved tag", func(t *testing.T) {
		engine := MustNew(WithExtension(func() (Extension, error) { return fakeBold{}, nil }))
		_, err := engine.Parse("x")
		require.Error(t, err)
	})
}

func TestEngine_Frontmatter(t *testing.T) {
	t.Run("document settings merge over engine settings", func(t *testing.T) {
		engine := MustNew(WithBold(), WithFrontmatter(true))
		source := "---\nenable-italics: true\nlist-bullet: \"-\"\n---\n*a* /b/\n- c"

		out, err := engine.RenderFormat(source, FormatHTML)
		require.NoError(t, err)
		assert.Equal(t,
			"<p>\n  <strong>a</strong> <em>b</em>\n</p>\n<ul>\n  <li>c</li>\n</ul>\n",
			out)

		// engine configuration is unchanged
		assert.Equal(t, Config{EnableBold: true}, engine.Config())
	})

	t.Run("no frontmatter", func(t *testing.T) {
		engine := MustNew(WithFrontmatter(true))
		out, err := engine.RenderFormat("plain", FormatText)
		require.NoError(t, err)
		assert.Equal(t, "plain\n", out)
	})

	t.Run("disabled treats delimiters as text", func(t *testing.T) {
		engine := MustNew()
		out, err := engine.RenderFormat("---\nenable-bold: true\n---\nx", FormatText)
		require.NoError(t, err)
		assert.Equal(t, "--- enable-bold: true --- x\n", out)
	})

	t.Run("unclosed", func(t *testing.T) {
		engine := MustNew(WithFrontmatter(true))
		_, err := engine.Parse("---\nenable-bold: true\nbody")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFrontmatterInvalid)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		engine := MustNew(WithFrontmatter(true))
		_, err := engine.Parse("---\nenable-bold: [\n---\nbody")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFrontmatterInvalid)
	})

	t.Run("invalid normalization", func(t *testing.T) {
		engine := MustNew(WithFrontmatter(true))
		_, err := engine.Parse("---\nnormalize: nope\n---\nbody")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidNormalization)
	})
}

func TestEngine_Normalization(t *testing.T) {
	engine := MustNew(WithNormalization(NormalizationNFC))
	doc, err := engine.Parse("Cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, Document{NewParagraph(NewText("Caf\u00e9"))}, doc)
}

func TestEngine_Emitter(t *testing.T) {
	engine := MustNew()
	engine.TaggedElement("math", func(*ExtensionElement) Markup { return Markup{Element: "var"} })

	emitter, err := engine.Emitter(FormatHTML)
	require.NoError(t, err)
	html, ok := emitter.(*HTMLEmitter)
	require.True(t, ok)
	assert.Contains(t, html.elements, Tag("math"))

	// later mappings do not leak into emitters already handed out
	engine.TaggedElement("other", func(*ExtensionElement) Markup { return Markup{Element: "b"} })
	assert.NotContains(t, html.elements, Tag("other"))

	emitter, err = engine.Emitter(FormatText)
	require.NoError(t, err)
	assert.IsType(t, &TextEmitter{}, emitter)

	_, err = engine.Emitter("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgMissingFormat)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := MustNew(WithBold(), WithExtension(func() (Extension, error) { return math{}, nil }))

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			out, err := engine.RenderFormat(fmt.Sprintf("n *%d* $$m$$", i), FormatHTML)
			if err != nil {
				errs <- err
				return
			}
			if out == "" {
				errs <- errors.New("empty output")
			}
		}(i)
		go func() {
			defer wg.Done()
			engine.TaggedElement("math", func(*ExtensionElement) Markup { return Markup{Element: "var"} })
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestEngine_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine, err := New(WithBold(), WithFrontmatter(true), WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, err = engine.Parse("---\nenable-italics: true\n---\n/x/")
	require.NoError(t, err)

	created := logs.FilterMessage(LogMsgEngineCreated).All()
	require.Len(t, created, 1)
	assert.Equal(t, true, created[0].ContextMap()[ExtensionNameBold])

	assert.Equal(t, 1, logs.FilterMessage(LogMsgFrontmatterApplied).Len())
	assert.Equal(t, 2, logs.FilterMessage(LogMsgExtensionAdded).Len())
}
