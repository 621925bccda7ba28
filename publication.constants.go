package publication

import "github.com/itsatony/go-publication/internal"

// Builtin tags - all use the reserved builtin: namespace
const (
	TagBold     Tag = "builtin:BOLD"
	TagItalics  Tag = "builtin:ITALICS"
	TagList     Tag = "builtin:LIST"
	TagListItem Tag = "builtin:LIST_ITEM"
)

// ReservedTagPrefix is the namespace only builtin extensions may use.
const ReservedTagPrefix = internal.ReservedTagPrefix

// Builtin grammar delimiters
const (
	DelimBold    = '*'
	DelimItalics = '/'
	CharComment  = internal.CharComment
	CharNewline  = internal.CharNewline
	CharCR       = internal.CharCarriageRet
	CharEOF      = internal.CharEOF
)

// Builtin extension names, used as registry owners
const (
	ExtensionNameBold    = "bold"
	ExtensionNameItalics = "italics"
	ExtensionNameLists   = "lists"
)

// Output format names, matching destination file extensions
const (
	FormatHTML = "html"
	FormatText = "txt"
)

// SourceFileExtension is the required extension of publication source files.
const SourceFileExtension = ".publ"

// HTML markup constants
const (
	HTMLIndent           = "  "
	HTMLParagraph        = "p"
	HTMLStrong           = "strong"
	HTMLEmphasis         = "em"
	HTMLList             = "ul"
	HTMLListItem         = "li"
	HTMLGenericBlock     = "div"
	HTMLTagAttribute     = "data-publ-tag"
	HTMLEntityApostrophe = "&apos;"
	HTMLEntityQuote      = "&quot;"
	HTMLEntityLess       = "&lt;"
	HTMLEntityGreater    = "&gt;"
	HTMLEntityAmpersand  = "&amp;"
)

// Plain text rendering constants
const (
	TextListItemPrefix = "- "
)

// Unicode normalization form names accepted by configuration
const (
	NormalizationNone = ""
	NormalizationNFC  = "nfc"
	NormalizationNFD  = "nfd"
	NormalizationNFKC = "nfkc"
	NormalizationNFKD = "nfkd"
)

// Configuration file extensions
const (
	ConfigExtYAML = ".yaml"
	ConfigExtYML  = ".yml"
	ConfigExtTOML = ".toml"
)

// Error message constants - ALL error messages must be constants
const (
	ErrMsgUnexpectedEOF        = "unexpected end of input"
	ErrMsgParserConsumed       = "parser already consumed"
	ErrMsgNilExtension         = "extension cannot be nil"
	ErrMsgTagRegistration      = "extension tag registration failed"
	ErrMsgUnknownFormat        = "unknown output format"
	ErrMsgMissingFormat        = "output format cannot be inferred without a file extension"
	ErrMsgInvalidBullet        = "list bullet cannot be empty"
	ErrMsgConfigRead           = "failed to read config file"
	ErrMsgConfigDecode         = "failed to decode config"
	ErrMsgConfigUnknownType    = "unsupported config file type"
	ErrMsgInvalidNormalization = "invalid unicode normalization form"
	ErrMsgFrontmatterInvalid   = "invalid frontmatter"
	ErrMsgNilEmitter           = "emitter cannot be nil"
	ErrMsgNilExtensionFactory  = "extension factory cannot be nil"
)

// Error code constants for categorization
const (
	ErrCodeParse    = "PUBLICATION_PARSE"
	ErrCodeRegistry = "PUBLICATION_REGISTRY"
	ErrCodeEmit     = "PUBLICATION_EMIT"
	ErrCodeConfig   = "PUBLICATION_CONFIG"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyLine        = "line"
	MetaKeyColumn      = "column"
	MetaKeyOffset      = "offset"
	MetaKeyKind        = "kind"
	MetaKeyFormat      = "format"
	MetaKeyPath        = "path"
	MetaKeyValue       = "value"
	MetaKeyExtension   = "extension"
	MetaKeySuggestions = "suggestions"
)

// Error kinds stored under MetaKeyKind
const (
	ErrKindUnexpectedEOF  = "unexpected_eof"
	ErrKindParserConsumed = "parser_consumed"
)

// Log message constants
const (
	LogMsgParserCreated      = "parser created"
	LogMsgParseStart         = "starting parse"
	LogMsgParseEnd           = "parse complete"
	LogMsgExtensionAdded     = "extension added"
	LogMsgBlockMatched       = "extension matched block"
	LogMsgElementMatched     = "extension matched element"
	LogMsgEmitStart          = "starting emission"
	LogMsgEmitEnd            = "emission complete"
	LogMsgEngineCreated      = "engine created"
	LogMsgFrontmatterApplied = "frontmatter configuration applied"
	LogMsgConfigLoaded       = "config loaded"
)

// Log field names
const (
	LogFieldSource     = "source_length"
	LogFieldExtensions = "extension_count"
	LogFieldExtension  = "extension"
	LogFieldBlocks     = "block_count"
	LogFieldTag        = "tag"
	LogFieldOffset     = "offset"
	LogFieldOutput     = "output_length"
	LogFieldFormat     = "format"
	LogFieldPath       = "path"
)
