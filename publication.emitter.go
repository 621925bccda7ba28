package publication

import (
	"path/filepath"
	"sort"
	"strings"
)

// Emitter renders blocks into one output format.
type Emitter interface {
	EmitBlock(out *strings.Builder, block Block)
}

// ElementEmitter is the per-backend element visitor used by EmitElement.
type ElementEmitter interface {
	// EmitText writes a text run, applying any backend escaping.
	EmitText(out *strings.Builder, text string)
	// EmitExtensionElement writes a decorated element. Backends without
	// special handling delegate to EmitUnadorned.
	EmitExtensionElement(out *strings.Builder, el *ExtensionElement)
}

// EmitElement dispatches el to the matching ElementEmitter method.
func EmitElement(e ElementEmitter, out *strings.Builder, el Element) {
	switch n := el.(type) {
	case *Text:
		e.EmitText(out, n.Content)
	case *ExtensionElement:
		e.EmitExtensionElement(out, n)
	}
}

// EmitElements emits each element in order.
func EmitElements(e ElementEmitter, out *strings.Builder, elements []Element) {
	for _, el := range elements {
		EmitElement(e, out, el)
	}
}

// EmitUnadorned renders the wrapped element without decoration.
func EmitUnadorned(e ElementEmitter, out *strings.Builder, el *ExtensionElement) {
	if el.Inner != nil {
		EmitElement(e, out, el.Inner)
	}
}

// Emit renders a whole document.
func Emit(e Emitter, doc Document) string {
	var out strings.Builder
	for _, block := range doc {
		e.EmitBlock(&out, block)
	}
	return out.String()
}

var emitterFactories = map[string]func() Emitter{
	FormatHTML: func() Emitter { return NewHTMLEmitter() },
	FormatText: func() Emitter { return NewTextEmitter() },
}

// Formats returns the names of all built-in output formats in sorted order.
func Formats() []string {
	names := make([]string, 0, len(emitterFactories))
	for name := range emitterFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EmitterForFormat returns a fresh emitter for a format name such as "html" or ".txt".
func EmitterForFormat(format string) (Emitter, error) {
	name := normalizeFormat(format)
	factory, ok := emitterFactories[name]
	if !ok {
		return nil, NewUnknownFormatError(name)
	}
	return factory(), nil
}

// EmitterForPath selects the emitter by the destination file extension.
func EmitterForPath(path string) (Emitter, error) {
	return EmitterForFormat(filepath.Ext(path))
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}
