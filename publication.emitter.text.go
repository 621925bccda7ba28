package publication

import "strings"

// TextEmitter renders a Document as plain text.
//
// Each paragraph becomes one line; every block after the first is preceded
// by a newline. Builtin lists render one "- item" line per item. Other
// extension blocks are omitted and extension elements render unadorned.
type TextEmitter struct{}

// NewTextEmitter creates a plain text emitter.
func NewTextEmitter() *TextEmitter {
	return &TextEmitter{}
}

// EmitBlock implements Emitter.
func (t *TextEmitter) EmitBlock(out *strings.Builder, block Block) {
	switch b := block.(type) {
	case *Paragraph:
		t.separate(out)
		EmitElements(t, out, b.Elements)
		out.WriteString("\n")

	case *ExtensionBlocks:
		if b.Tag != TagList {
			return
		}
		t.separate(out)
		for _, child := range b.Blocks {
			item, ok := child.(*ExtensionBlock)
			if !ok || item.Tag != TagListItem {
				continue
			}
			out.WriteString(TextListItemPrefix)
			EmitElements(t, out, item.Elements)
			out.WriteString("\n")
		}
	}
}

func (t *TextEmitter) separate(out *strings.Builder) {
	if out.Len() > 0 {
		out.WriteString("\n")
	}
}

// EmitText copies text verbatim.
func (t *TextEmitter) EmitText(out *strings.Builder, text string) {
	out.WriteString(text)
}

// EmitExtensionElement renders the wrapped element without decoration.
func (t *TextEmitter) EmitExtensionElement(out *strings.Builder, el *ExtensionElement) {
	EmitUnadorned(t, out, el)
}
