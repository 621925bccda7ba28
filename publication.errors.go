package publication

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-publication/internal"
)

// maxSuggestions limits "did you mean" candidates in error metadata
const maxSuggestions = 3

// Position represents a location in the source document
type Position struct {
	Offset int // Rune offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// NewUnexpectedEndOfInputError is raised when a block is requested with no input left.
func NewUnexpectedEndOfInputError(pos Position) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgUnexpectedEOF).
		WithMetadata(MetaKeyKind, ErrKindUnexpectedEOF).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewParserConsumedError is returned when a terminal parser operation runs twice.
func NewParserConsumedError() error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgParserConsumed).
		WithMetadata(MetaKeyKind, ErrKindParserConsumed)
}

// NewTagRegistryError wraps a rejected extension registration
func NewTagRegistryError(extension string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeRegistry, ErrMsgTagRegistration)
	} else {
		err = cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilExtension)
	}
	return err.WithMetadata(MetaKeyExtension, extension)
}

// NewNilExtensionFactoryError creates an error for a nil WithExtension factory
func NewNilExtensionFactoryError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilExtensionFactory)
}

// NewUnknownFormatError creates an error for an output format without an emitter
func NewUnknownFormatError(format string) error {
	if format == "" {
		return cuserr.NewValidationError(ErrCodeEmit, ErrMsgMissingFormat)
	}
	err := cuserr.NewNotFoundError(MetaKeyFormat, ErrMsgUnknownFormat).
		WithMetadata(MetaKeyFormat, format)
	if suggestions := internal.Suggest(format, Formats(), maxSuggestions); len(suggestions) > 0 {
		err = err.WithMetadata(MetaKeySuggestions, internal.FormatSuggestions(suggestions))
	}
	return err
}

// NewNilEmitterError creates an error for a missing emitter
func NewNilEmitterError() error {
	return cuserr.NewValidationError(ErrCodeEmit, ErrMsgNilEmitter)
}

// NewInvalidBulletError creates an error for an empty list bullet
func NewInvalidBulletError() error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgInvalidBullet)
}

// NewInvalidNormalizationError creates an error for an unknown normalization form
func NewInvalidNormalizationError(form string) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgInvalidNormalization).
		WithMetadata(MetaKeyValue, form)
}

// NewConfigError creates a configuration loading error
func NewConfigError(msg string, path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return err.WithMetadata(MetaKeyPath, path)
}

// NewFrontmatterError creates an error for a malformed document frontmatter block
func NewFrontmatterError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, ErrMsgFrontmatterInvalid)
}

// IsUnexpectedEndOfInput reports whether err is the parser's end-of-input error.
func IsUnexpectedEndOfInput(err error) bool {
	return hasKind(err, ErrKindUnexpectedEOF)
}

// IsParserConsumed reports whether err was caused by reusing a parser.
func IsParserConsumed(err error) bool {
	return hasKind(err, ErrKindParserConsumed)
}

func hasKind(err error, kind string) bool {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	got, ok := customErr.GetMetadata(MetaKeyKind)
	return ok && got == kind
}
