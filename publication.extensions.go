package publication

import "strings"

// Bold parses '*text*' into ExtensionElement(TagBold, Text(text)).
type Bold struct{ BaseExtension }

// Name returns the registry name of the extension.
func (Bold) Name() string { return ExtensionNameBold }

// Tags returns TagBold.
func (Bold) Tags() []Tag { return []Tag{TagBold} }

// ParseElement matches a '*' delimited run within the current block.
func (Bold) ParseElement(p *Parser) (Element, bool, error) {
	return parseDelimited(p, DelimBold, TagBold)
}

func (Bold) isBuiltin() {}

// Italics parses '/text/' into ExtensionElement(TagItalics, Text(text)).
type Italics struct{ BaseExtension }

// Name returns the registry name of the extension.
func (Italics) Name() string { return ExtensionNameItalics }

// Tags returns TagItalics.
func (Italics) Tags() []Tag { return []Tag{TagItalics} }

// ParseElement matches a '/' delimited run within the current block.
func (Italics) ParseElement(p *Parser) (Element, bool, error) {
	return parseDelimited(p, DelimItalics, TagItalics)
}

func (Italics) isBuiltin() {}

// parseDelimited reads a flat text run up to the closing delimiter.
// Reaching the end of the block first is no match.
func parseDelimited(p *Parser, delim rune, tag Tag) (Element, bool, error) {
	if p.Peek() != delim {
		return nil, false, nil
	}
	p.Take()

	var sb strings.Builder
	for {
		if p.SeesEndOfBlock() {
			return nil, false, nil
		}
		ch := p.Take()
		if ch == delim {
			return &ExtensionElement{Tag: tag, Inner: &Text{Content: sb.String()}}, true, nil
		}
		sb.WriteRune(ch)
	}
}

// Lists groups consecutive bullet items into ExtensionBlocks(TagList, items),
// each item being ExtensionBlock(TagListItem, elements).
//
// A bullet at the cursor also ends the current block, so a paragraph directly
// followed by a bullet line stops without a blank line.
type Lists struct {
	BaseExtension
	bullet []rune
}

// NewLists creates a list extension triggered by the exact bullet prefix.
func NewLists(bullet string) (*Lists, error) {
	if bullet == "" {
		return nil, NewInvalidBulletError()
	}
	return &Lists{bullet: []rune(bullet)}, nil
}

// MustNewLists creates a list extension and panics on an empty bullet.
func MustNewLists(bullet string) *Lists {
	l, err := NewLists(bullet)
	if err != nil {
		panic(err)
	}
	return l
}

// Bullet returns the configured bullet.
func (l *Lists) Bullet() string { return string(l.bullet) }

// Name returns the registry name of the extension.
func (l *Lists) Name() string { return ExtensionNameLists }

// Tags returns TagList and TagListItem.
func (l *Lists) Tags() []Tag { return []Tag{TagList, TagListItem} }

// ParseBlock matches a run of consecutive list items.
func (l *Lists) ParseBlock(p *Parser) (Block, bool, error) {
	if !l.SeesEndOfBlock(p) {
		return nil, false, nil
	}

	var items []Block
	for l.SeesEndOfBlock(p) {
		p.TakeMany(len(l.bullet))
		p.MovePastWhitespace()
		elements, err := p.ParseElements()
		if err != nil {
			return nil, false, err
		}
		items = append(items, &ExtensionBlock{Tag: TagListItem, Elements: elements})
	}
	return &ExtensionBlocks{Tag: TagList, Blocks: items}, true, nil
}

// SeesEndOfBlock votes yes when the bullet is at the cursor.
func (l *Lists) SeesEndOfBlock(p *Parser) bool {
	return len(l.bullet) > 0 && p.HasPrefix(l.bullet)
}

func (l *Lists) isBuiltin() {}
