package internal

// Character constants
const (
	CharEOF         = '\x00'
	CharComment     = '#'
	CharNewline     = '\n'
	CharCarriageRet = '\r'
)

// Reserved tag namespace. Only builtin extensions may declare tags in it.
const (
	ReservedTagPrefix = "builtin:"
)

// Frontmatter delimiters
const (
	FrontmatterDelimiter = "---"
	ByteOrderMark        = "\xef\xbb\xbf"
)

// Log message constants
const (
	LogMsgScannerCreated   = "scanner created"
	LogMsgRegistryCreated  = "tag registry created"
	LogMsgTagRegistered    = "tag registered"
	LogMsgTagCollision     = "tag registration collision - first-come-wins"
	LogMsgTagReserved      = "tag uses reserved namespace"
	LogMsgFrontmatterFound = "frontmatter block found"
)

// Log field names
const (
	LogFieldSource   = "source_length"
	LogFieldTag      = "tag"
	LogFieldOwner    = "owner"
	LogFieldExisting = "existing"
	LogFieldLength   = "length"
)

// Registry error message constants
const (
	ErrMsgEmptyTag            = "tag cannot be empty"
	ErrMsgTagAlreadyExists    = "tag already registered"
	ErrMsgTagReserved         = "tag uses the reserved builtin namespace"
	ErrMsgFrontmatterUnclosed = "frontmatter block not closed"
)

// Error format string constants
const (
	ErrFmtTagMessage = "%s: %s"
	ErrFmtOwnerTag   = "%s: %s (registered by %s)"
)
