package publication

// Extension is a pluggable grammar rule consulted by the Parser.
//
// Extensions are tried in registration order and the first match wins; the
// caller is responsible for an order that avoids ambiguity. Before each trial
// the parser records its cursor and restores it when the extension reports no
// match, so a declining extension may consume input freely.
//
// Extensions may call back into the parser (ParseElements, SeesEndOfBlock,
// the scanning methods) while handling a trial. The cursor is the only state
// the parser rolls back, so extensions must not carry mutable state across trials.
//
// Embed BaseExtension to implement only the capabilities you need:
//
//	type Math struct{ publication.BaseExtension }
//
//	func (Math) Tags() []publication.Tag { return []publication.Tag{"math"} }
//
//	func (Math) ParseElement(p *publication.Parser) (publication.Element, bool, error) {
//	    if p.Peek() != '$' {
//	        return nil, false, nil
//	    }
//	    ...
//	}
type Extension interface {
	// Tags lists every tag this extension puts into the AST. They are claimed
	// when the extension is added and must not collide with other extensions.
	Tags() []Tag
	// ParseBlock attempts to consume a whole block at the cursor.
	ParseBlock(p *Parser) (Block, bool, error)
	// ParseElement attempts to consume one inline element at the cursor.
	ParseElement(p *Parser) (Element, bool, error)
	// SeesEndOfBlock votes on whether the current block ends at the cursor.
	// It must not move the cursor.
	SeesEndOfBlock(p *Parser) bool
}

// NamedExtension lets an extension report a readable name for logs and registry errors.
type NamedExtension interface {
	Extension
	Name() string
}

// BaseExtension provides no-op defaults for every Extension method.
type BaseExtension struct{}

// Tags returns no tags.
func (BaseExtension) Tags() []Tag { return nil }

// ParseBlock never matches.
func (BaseExtension) ParseBlock(*Parser) (Block, bool, error) { return nil, false, nil }

// ParseElement never matches.
func (BaseExtension) ParseElement(*Parser) (Element, bool, error) { return nil, false, nil }

// SeesEndOfBlock never votes for the end of a block.
func (BaseExtension) SeesEndOfBlock(*Parser) bool { return false }

// builtinExtension marks extensions allowed to claim reserved tags.
type builtinExtension interface {
	isBuiltin()
}

// ExtensionFactory builds an extension for a new parser.
type ExtensionFactory func() (Extension, error)
