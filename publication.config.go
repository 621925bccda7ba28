package publication

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Config selects the grammar extensions and input handling for a document.
// It can be loaded from YAML or TOML files, or from a document's frontmatter.
type Config struct {
	// EnableBold registers '*text*' inline emphasis.
	EnableBold bool `yaml:"enable-bold" toml:"enable-bold" json:"enable-bold,omitempty" jsonschema:"description=Register *text* bold emphasis"`
	// EnableItalics registers '/text/' inline emphasis.
	EnableItalics bool `yaml:"enable-italics" toml:"enable-italics" json:"enable-italics,omitempty" jsonschema:"description=Register /text/ italic emphasis"`
	// ListBullet registers bulleted lists triggered by this exact prefix. Empty disables lists.
	ListBullet string `yaml:"list-bullet" toml:"list-bullet" json:"list-bullet,omitempty" jsonschema:"description=Literal prefix that starts a list item"`
	// Normalize applies a Unicode normalization form to the input before parsing.
	Normalize string `yaml:"normalize" toml:"normalize" json:"normalize,omitempty" jsonschema:"enum=nfc,enum=nfd,enum=nfkc,enum=nfkd,description=Unicode normalization form applied before parsing"`
}

// Validate checks the normalization form.
func (c Config) Validate() error {
	if c.Normalize == NormalizationNone {
		return nil
	}
	if _, ok := normalizationForms[strings.ToLower(c.Normalize)]; !ok {
		return NewInvalidNormalizationError(c.Normalize)
	}
	return nil
}

// Merge returns c overlaid with every non-zero field of other.
func (c Config) Merge(other Config) Config {
	if other.EnableBold {
		c.EnableBold = true
	}
	if other.EnableItalics {
		c.EnableItalics = true
	}
	if other.ListBullet != "" {
		c.ListBullet = other.ListBullet
	}
	if other.Normalize != "" {
		c.Normalize = other.Normalize
	}
	return c
}

var normalizationForms = map[string]norm.Form{
	NormalizationNFC:  norm.NFC,
	NormalizationNFD:  norm.NFD,
	NormalizationNFKC: norm.NFKC,
	NormalizationNFKD: norm.NFKD,
}

// normalize applies the configured normalization form to source.
func (c Config) normalize(source string) string {
	form, ok := normalizationForms[strings.ToLower(c.Normalize)]
	if !ok {
		return source
	}
	return form.String(source)
}

// LoadConfig reads a .yaml, .yml or .toml configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, NewConfigError(ErrMsgConfigRead, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ConfigExtYAML, ConfigExtYML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, NewConfigError(ErrMsgConfigDecode, path, err)
		}
	case ConfigExtTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, NewConfigError(ErrMsgConfigDecode, path, err)
		}
	default:
		return cfg, NewConfigError(ErrMsgConfigUnknownType, path, nil)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigSchema returns the JSON schema describing Config.
func ConfigSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Config{})
	return json.MarshalIndent(schema, "", "  ")
}
