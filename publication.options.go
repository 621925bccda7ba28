package publication

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	config      Config
	factories   []ExtensionFactory
	frontmatter bool
	logger      *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{}
}

// WithBold registers the '*text*' emphasis extension.
func WithBold() Option {
	return func(c *engineConfig) {
		c.config.EnableBold = true
	}
}

// WithItalics registers the '/text/' emphasis extension.
func WithItalics() Option {
	return func(c *engineConfig) {
		c.config.EnableItalics = true
	}
}

// WithListBullet registers bulleted lists started by bullet.
func WithListBullet(bullet string) Option {
	return func(c *engineConfig) {
		c.config.ListBullet = bullet
	}
}

// WithNormalization applies a Unicode normalization form ("nfc", "nfd",
// "nfkc", "nfkd") to every document before parsing.
// Default: none
func WithNormalization(form string) Option {
	return func(c *engineConfig) {
		c.config.Normalize = form
	}
}

// WithConfig overlays the non-zero fields of cfg.
func WithConfig(cfg Config) Option {
	return func(c *engineConfig) {
		c.config = c.config.Merge(cfg)
	}
}

// WithExtension adds a custom extension. The factory runs once per parser,
// and its extension is registered after the builtin ones in option order.
func WithExtension(factory ExtensionFactory) Option {
	return func(c *engineConfig) {
		c.factories = append(c.factories, factory)
	}
}

// WithFrontmatter enables reading a leading "---" YAML block of Config keys
// from each document.
// Default: disabled
func WithFrontmatter(enabled bool) Option {
	return func(c *engineConfig) {
		c.frontmatter = enabled
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
