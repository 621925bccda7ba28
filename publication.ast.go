package publication

import (
	"fmt"
	"strings"
)

// Tag identifies the rule that produced an AST node.
// Builtin tags live in the reserved "builtin:" namespace; extension tags must be
// unique among the extensions registered on one parser.
type Tag string

func (t Tag) String() string { return string(t) }

// IsBuiltin reports whether the tag is in the reserved namespace.
func (t Tag) IsBuiltin() bool {
	return strings.HasPrefix(string(t), ReservedTagPrefix)
}

// Node is implemented by every Block and Element.
type Node interface {
	String() string
}

// Block is a top-level structural unit: *Paragraph, *ExtensionBlock or *ExtensionBlocks.
type Block interface {
	Node
	block()
}

// Element is an inline unit: *Text or *ExtensionElement.
type Element interface {
	Node
	element()
}

// Document is the ordered sequence of blocks produced by one parse.
type Document []Block

func (d Document) String() string {
	var sb strings.Builder
	sb.WriteString("Document{\n")
	for i, b := range d {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, b.String()))
	}
	sb.WriteString("}")
	return sb.String()
}

// Paragraph is the builtin block.
type Paragraph struct {
	Elements []Element
}

func (p *Paragraph) block() {}

func (p *Paragraph) String() string {
	return "Paragraph" + elementsString(p.Elements)
}

// ExtensionBlock is an extension-defined block of inline elements.
type ExtensionBlock struct {
	Tag      Tag
	Elements []Element
}

func (b *ExtensionBlock) block() {}

func (b *ExtensionBlock) String() string {
	return fmt.Sprintf("ExtensionBlock(%s)%s", b.Tag, elementsString(b.Elements))
}

// ExtensionBlocks is an extension-defined block containing nested blocks.
type ExtensionBlocks struct {
	Tag    Tag
	Blocks []Block
}

func (b *ExtensionBlocks) block() {}

func (b *ExtensionBlocks) String() string {
	parts := make([]string, len(b.Blocks))
	for i, child := range b.Blocks {
		parts[i] = child.String()
	}
	return fmt.Sprintf("ExtensionBlocks(%s)[%s]", b.Tag, strings.Join(parts, ", "))
}

// Text is literal inline content.
type Text struct {
	Content string
}

func (t *Text) element() {}

func (t *Text) String() string {
	return fmt.Sprintf("Text(%q)", t.Content)
}

// ExtensionElement decorates an inner element, which may itself be an ExtensionElement.
type ExtensionElement struct {
	Tag   Tag
	Inner Element
}

func (e *ExtensionElement) element() {}

func (e *ExtensionElement) String() string {
	inner := "<nil>"
	if e.Inner != nil {
		inner = e.Inner.String()
	}
	return fmt.Sprintf("ExtensionElement(%s, %s)", e.Tag, inner)
}

// NewParagraph creates a paragraph block
func NewParagraph(elements ...Element) *Paragraph {
	return &Paragraph{Elements: elements}
}

// NewExtensionBlock creates an extension block of inline elements
func NewExtensionBlock(tag Tag, elements ...Element) *ExtensionBlock {
	return &ExtensionBlock{Tag: tag, Elements: elements}
}

// NewExtensionBlocks creates an extension block of nested blocks
func NewExtensionBlocks(tag Tag, blocks ...Block) *ExtensionBlocks {
	return &ExtensionBlocks{Tag: tag, Blocks: blocks}
}

// NewText creates a text element
func NewText(content string) *Text {
	return &Text{Content: content}
}

// NewExtensionElement creates a decorated element
func NewExtensionElement(tag Tag, inner Element) *ExtensionElement {
	return &ExtensionElement{Tag: tag, Inner: inner}
}

func elementsString(elements []Element) string {
	parts := make([]string, len(elements))
	for i, el := range elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
