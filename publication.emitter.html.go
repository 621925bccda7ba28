package publication

import "strings"

// Attr is one attribute of a markup wrapper element.
type Attr struct {
	Name  string
	Value string
}

// Markup describes the wrapper element rendered for a custom tag.
type Markup struct {
	Element string
	Attrs   []Attr
}

// ElementMarkupFunc maps a decorated element to its wrapper markup.
type ElementMarkupFunc func(el *ExtensionElement) Markup

// BlockMarkupFunc maps an extension block to its wrapper markup.
type BlockMarkupFunc func(block Block) Markup

// HTMLEmitter renders a Document as HTML.
//
// Builtin tags always render with their fixed markup (strong, em, ul, li);
// mappings registered for them are ignored. Other tags are looked up in the
// mapping table. Unmapped blocks become a div carrying the tag in
// data-publ-tag; unmapped elements render their content unwrapped.
type HTMLEmitter struct {
	elements map[Tag]ElementMarkupFunc
	blocks   map[Tag]BlockMarkupFunc
}

// NewHTMLEmitter creates an HTML emitter with an empty mapping table.
func NewHTMLEmitter() *HTMLEmitter {
	return &HTMLEmitter{
		elements: make(map[Tag]ElementMarkupFunc),
		blocks:   make(map[Tag]BlockMarkupFunc),
	}
}

// TaggedElement registers the markup for elements carrying tag.
func (h *HTMLEmitter) TaggedElement(tag Tag, fn ElementMarkupFunc) *HTMLEmitter {
	h.elements[tag] = fn
	return h
}

// TaggedBlock registers the markup for blocks carrying tag.
func (h *HTMLEmitter) TaggedBlock(tag Tag, fn BlockMarkupFunc) *HTMLEmitter {
	h.blocks[tag] = fn
	return h
}

// EmitBlock implements Emitter.
func (h *HTMLEmitter) EmitBlock(out *strings.Builder, block Block) {
	h.emitBlock(out, block, 0)
}

func (h *HTMLEmitter) emitBlock(out *strings.Builder, block Block, depth int) {
	indent := strings.Repeat(HTMLIndent, depth)

	switch b := block.(type) {
	case *Paragraph:
		out.WriteString(indent)
		writeOpenTag(out, HTMLParagraph, nil)
		out.WriteString("\n")
		out.WriteString(indent + HTMLIndent)
		EmitElements(h, out, b.Elements)
		out.WriteString("\n" + indent)
		writeCloseTag(out, HTMLParagraph)
		out.WriteString("\n")

	case *ExtensionBlock:
		markup := h.blockMarkup(b.Tag, b)
		out.WriteString(indent)
		writeOpenTag(out, markup.Element, markup.Attrs)
		EmitElements(h, out, b.Elements)
		writeCloseTag(out, markup.Element)
		out.WriteString("\n")

	case *ExtensionBlocks:
		markup := h.blockMarkup(b.Tag, b)
		out.WriteString(indent)
		writeOpenTag(out, markup.Element, markup.Attrs)
		out.WriteString("\n")
		for _, child := range b.Blocks {
			h.emitBlock(out, child, depth+1)
		}
		out.WriteString(indent)
		writeCloseTag(out, markup.Element)
		out.WriteString("\n")
	}
}

func (h *HTMLEmitter) blockMarkup(tag Tag, block Block) Markup {
	switch tag {
	case TagList:
		return Markup{Element: HTMLList}
	case TagListItem:
		return Markup{Element: HTMLListItem}
	}
	if fn, ok := h.blocks[tag]; ok {
		if markup := fn(block); markup.Element != "" {
			return markup
		}
	}
	return Markup{
		Element: HTMLGenericBlock,
		Attrs:   []Attr{{Name: HTMLTagAttribute, Value: string(tag)}},
	}
}

// EmitText writes text with HTML special characters replaced by named entities.
func (h *HTMLEmitter) EmitText(out *strings.Builder, text string) {
	EscapeHTML(out, text)
}

// EmitExtensionElement wraps the inner element in the markup for its tag.
func (h *HTMLEmitter) EmitExtensionElement(out *strings.Builder, el *ExtensionElement) {
	var name string
	var attrs []Attr

	switch el.Tag {
	case TagBold:
		name = HTMLStrong
	case TagItalics:
		name = HTMLEmphasis
	default:
		if fn, ok := h.elements[el.Tag]; ok {
			markup := fn(el)
			name, attrs = markup.Element, markup.Attrs
		}
	}

	if name == "" {
		EmitUnadorned(h, out, el)
		return
	}
	writeOpenTag(out, name, attrs)
	EmitUnadorned(h, out, el)
	writeCloseTag(out, name)
}

// EscapeHTML writes text with ' " < > & replaced by named entities.
func EscapeHTML(out *strings.Builder, text string) {
	for _, ch := range text {
		switch ch {
		case '\'':
			out.WriteString(HTMLEntityApostrophe)
		case '"':
			out.WriteString(HTMLEntityQuote)
		case '<':
			out.WriteString(HTMLEntityLess)
		case '>':
			out.WriteString(HTMLEntityGreater)
		case '&':
			out.WriteString(HTMLEntityAmpersand)
		default:
			out.WriteRune(ch)
		}
	}
}

func writeOpenTag(out *strings.Builder, name string, attrs []Attr) {
	out.WriteString("<" + name)
	for _, attr := range attrs {
		out.WriteString(" " + attr.Name + "=\"")
		EscapeHTML(out, attr.Value)
		out.WriteString("\"")
	}
	out.WriteString(">")
}

func writeCloseTag(out *strings.Builder, name string) {
	out.WriteString("</" + name + ">")
}
