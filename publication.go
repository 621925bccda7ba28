// Package publication compiles plain-text .publ documents into HTML or plain text
// through a pluggable grammar.
//
// The core grammar knows only paragraphs, whitespace and comments. Everything
// else is added by extensions:
//
//	This *isn't* Markdown!   # comments run to the end of the line
//
//	** a list item
//	** another /emphasised/ item
//
// # Basic Usage
//
// Create an engine with the builtin extensions you need and render a document:
//
//	engine := publication.MustNew(
//	    publication.WithBold(),
//	    publication.WithItalics(),
//	    publication.WithListBullet("**"),
//	)
//	html, err := engine.RenderFormat("This *isn't* Markdown!", publication.FormatHTML)
//	// html: "<p>\n  This <strong>isn&apos;t</strong> Markdown!\n</p>\n"
//
// # Grammar
//
// Blocks are separated by blank lines; lines end in "\n" or "\r\n". Inside a block every run of whitespace
// collapses to a single space, and '#' starts a comment that runs to the end of
// the line. Extensions are consulted at every block start and at every inline
// position, in registration order; the first one that matches wins.
//
// # Custom Extensions
//
// Implement Extension (embedding BaseExtension for the capabilities you don't
// need) and map its tags to HTML:
//
//	engine := publication.MustNew(
//	    publication.WithExtension(func() (publication.Extension, error) {
//	        return Math{}, nil
//	    }),
//	)
//	engine.TaggedElement("math", func(*publication.ExtensionElement) publication.Markup {
//	    return publication.Markup{Element: "span", Attrs: []publication.Attr{{Name: "class", Value: "math"}}}
//	})
//
// Extension tags must be unique per parser, and the "builtin:" namespace is
// reserved for Bold, Italics and Lists.
//
// # Emitters
//
// HTMLEmitter and TextEmitter render a Document. Select one by format name with
// EmitterForFormat, or by destination file with EmitterForPath.
//
// # Error Handling
//
// The grammar has a single error: requesting a block when no input is left.
// It aborts the whole parse and no partial output is returned:
//
//	_, err := parser.EmitWith(publication.NewHTMLEmitter())
//	if publication.IsUnexpectedEndOfInput(err) {
//	    // err carries line/column metadata
//	}
//
// # Configuration
//
// Settings can be loaded from YAML or TOML with LoadConfig, or taken from a
// document's frontmatter when WithFrontmatter is enabled:
//
//	---
//	enable-bold: true
//	list-bullet: "-"
//	---
//	Body with *bold* text.
package publication
