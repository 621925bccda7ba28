package publication

import (
	"sync"

	"github.com/itsatony/go-publication/internal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Engine is the main entry point for compiling publication documents.
// It holds the extension configuration and HTML tag mappings, and builds a
// fresh single-use Parser for every document. It is safe for concurrent use.
type Engine struct {
	config   *engineConfig
	elements map[Tag]ElementMarkupFunc
	blocks   map[Tag]BlockMarkupFunc
	mu       sync.RWMutex // Protects elements and blocks
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := config.config.Validate(); err != nil {
		return nil, err
	}
	for _, factory := range config.factories {
		if factory == nil {
			return nil, NewNilExtensionFactoryError()
		}
	}

	logger.Debug(LogMsgEngineCreated,
		zap.Bool(ExtensionNameBold, config.config.EnableBold),
		zap.Bool(ExtensionNameItalics, config.config.EnableItalics),
		zap.String(ExtensionNameLists, config.config.ListBullet),
	)

	return &Engine{
		config:   config,
		elements: make(map[Tag]ElementMarkupFunc),
		blocks:   make(map[Tag]BlockMarkupFunc),
		logger:   logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the engine's base configuration.
func (e *Engine) Config() Config {
	return e.config.config
}

// NewParser prepares source (frontmatter, normalization) and returns a parser
// with the configured extensions registered in order: bold, italics, lists,
// then custom extensions.
func (e *Engine) NewParser(source string) (*Parser, error) {
	cfg := e.config.config
	body := source

	if e.config.frontmatter {
		result, err := internal.ExtractFrontmatter(source, e.logger)
		if err != nil {
			return nil, NewFrontmatterError(err)
		}
		if result.HasFrontmatter {
			var docCfg Config
			if err := yaml.Unmarshal([]byte(result.YAML), &docCfg); err != nil {
				return nil, NewFrontmatterError(err)
			}
			if err := docCfg.Validate(); err != nil {
				return nil, err
			}
			cfg = cfg.Merge(docCfg)
			body = result.Body
			e.logger.Debug(LogMsgFrontmatterApplied)
		}
	}

	parser := NewParser(cfg.normalize(body), e.logger)

	if cfg.EnableBold {
		if err := parser.AddExtension(Bold{}); err != nil {
			return nil, err
		}
	}
	if cfg.EnableItalics {
		if err := parser.AddExtension(Italics{}); err != nil {
			return nil, err
		}
	}
	if cfg.ListBullet != "" {
		lists, err := NewLists(cfg.ListBullet)
		if err != nil {
			return nil, err
		}
		if err := parser.AddExtension(lists); err != nil {
			return nil, err
		}
	}
	for _, factory := range e.config.factories {
		ext, err := factory()
		if err != nil {
			return nil, err
		}
		if err := parser.AddExtension(ext); err != nil {
			return nil, err
		}
	}

	return parser, nil
}

// Parse parses source into a Document.
func (e *Engine) Parse(source string) (Document, error) {
	parser, err := e.NewParser(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse()
}

// Render parses source and renders it with emitter.
func (e *Engine) Render(source string, emitter Emitter) (string, error) {
	parser, err := e.NewParser(source)
	if err != nil {
		return "", err
	}
	return parser.EmitWith(emitter)
}

// RenderFormat renders source in a named output format.
func (e *Engine) RenderFormat(source string, format string) (string, error) {
	emitter, err := e.Emitter(format)
	if err != nil {
		return "", err
	}
	return e.Render(source, emitter)
}

// Emitter returns a fresh emitter for format. HTML emitters carry the engine's tag mappings.
func (e *Engine) Emitter(format string) (Emitter, error) {
	emitter, err := EmitterForFormat(format)
	if err != nil {
		return nil, err
	}
	if html, ok := emitter.(*HTMLEmitter); ok {
		e.mu.RLock()
		defer e.mu.RUnlock()
		for tag, fn := range e.elements {
			html.TaggedElement(tag, fn)
		}
		for tag, fn := range e.blocks {
			html.TaggedBlock(tag, fn)
		}
	}
	return emitter, nil
}

// TaggedElement registers HTML markup for elements carrying tag.
func (e *Engine) TaggedElement(tag Tag, fn ElementMarkupFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.elements[tag] = fn
}

// TaggedBlock registers HTML markup for blocks carrying tag.
func (e *Engine) TaggedBlock(tag Tag, fn BlockMarkupFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blocks[tag] = fn
}
