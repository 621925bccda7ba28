package internal

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// TagRegistry records which extension owns each AST tag.
// Registration is first-come-wins: a collision is rejected and the first owner is kept.
// A registry belongs to one parser and is not safe for concurrent use.
type TagRegistry struct {
	owners map[string]string
	logger *zap.Logger
}

// NewTagRegistry creates an empty tag registry.
func NewTagRegistry(logger *zap.Logger) *TagRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &TagRegistry{
		owners: make(map[string]string),
		logger: logger,
	}
}

// IsReserved reports whether tag lives in the builtin namespace.
func IsReserved(tag string) bool {
	return strings.HasPrefix(tag, ReservedTagPrefix)
}

// Register claims tag for owner. Builtin owners may claim reserved tags.
func (r *TagRegistry) Register(tag, owner string, builtin bool) error {
	if tag == "" {
		return NewRegistryError(ErrMsgEmptyTag, "", owner)
	}
	if IsReserved(tag) && !builtin {
		r.logger.Warn(LogMsgTagReserved,
			zap.String(LogFieldTag, tag),
			zap.String(LogFieldOwner, owner),
		)
		return NewRegistryError(ErrMsgTagReserved, tag, owner)
	}

	if existing, exists := r.owners[tag]; exists {
		r.logger.Warn(LogMsgTagCollision,
			zap.String(LogFieldTag, tag),
			zap.String(LogFieldExisting, existing),
			zap.String(LogFieldOwner, owner),
		)
		return NewRegistryError(ErrMsgTagAlreadyExists, tag, existing)
	}

	r.owners[tag] = owner
	r.logger.Debug(LogMsgTagRegistered,
		zap.String(LogFieldTag, tag),
		zap.String(LogFieldOwner, owner),
	)
	return nil
}

// RegisterAll claims every tag or none of them.
func (r *TagRegistry) RegisterAll(tags []string, owner string, builtin bool) error {
	var claimed []string
	for _, tag := range tags {
		if err := r.Register(tag, owner, builtin); err != nil {
			r.release(claimed)
			return err
		}
		claimed = append(claimed, tag)
	}
	return nil
}

func (r *TagRegistry) release(tags []string) {
	for _, tag := range tags {
		delete(r.owners, tag)
	}
}

// Owner returns the owner registered for tag.
func (r *TagRegistry) Owner(tag string) (string, bool) {
	owner, ok := r.owners[tag]
	return owner, ok
}

// List returns all registered tags in sorted order.
func (r *TagRegistry) List() []string {
	tags := make([]string, 0, len(r.owners))
	for tag := range r.owners {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Count returns the number of registered tags.
func (r *TagRegistry) Count() int {
	return len(r.owners)
}

// RegistryError represents a rejected tag registration.
type RegistryError struct {
	Message string
	Tag     string
	Owner   string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, tag, owner string) *RegistryError {
	return &RegistryError{
		Message: message,
		Tag:     tag,
		Owner:   owner,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.Tag == "" {
		return e.Message
	}
	if e.Owner != "" {
		return fmt.Sprintf(ErrFmtOwnerTag, e.Message, e.Tag, e.Owner)
	}
	return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.Tag)
}
