package internal

import (
	"strings"

	"go.uber.org/zap"
)

// FrontmatterResult holds a document split into its optional YAML header and its body.
type FrontmatterResult struct {
	// YAML is the text between the two delimiter lines. Empty if none was found.
	YAML string
	// Body is the document after the closing delimiter line, or the whole source.
	Body string
	// HasFrontmatter indicates whether a frontmatter block was found.
	HasFrontmatter bool
}

// ExtractFrontmatter splits a leading "---" delimited YAML block from source.
// The opening delimiter must be the first line (after an optional BOM).
//
// Format:
//
//	---
//	enable-bold: true
//	---
//	Document body here...
func ExtractFrontmatter(source string, logger *zap.Logger) (*FrontmatterResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	result := &FrontmatterResult{Body: source}

	content := strings.TrimPrefix(source, ByteOrderMark)
	afterOpening, ok := cutDelimiterLine(content)
	if !ok {
		return result, nil
	}

	// An empty header closes immediately on the next line.
	var yamlText, rest string
	if body, closed := cutDelimiterLine(afterOpening); closed {
		rest = body
	} else {
		closeIdx := strings.Index(afterOpening, "\n"+FrontmatterDelimiter)
		for closeIdx != -1 && !isDelimiterLineAt(afterOpening, closeIdx+1) {
			next := strings.Index(afterOpening[closeIdx+1:], "\n"+FrontmatterDelimiter)
			if next == -1 {
				closeIdx = -1
				break
			}
			closeIdx += next + 1
		}
		if closeIdx == -1 {
			return nil, &FrontmatterError{Message: ErrMsgFrontmatterUnclosed}
		}
		yamlText = afterOpening[:closeIdx]
		rest, _ = cutDelimiterLine(afterOpening[closeIdx+1:])
	}

	result.YAML = yamlText
	result.Body = rest
	result.HasFrontmatter = true
	logger.Debug(LogMsgFrontmatterFound, zap.Int(LogFieldLength, len(yamlText)))
	return result, nil
}

// cutDelimiterLine strips a delimiter line from the start of s.
func cutDelimiterLine(s string) (string, bool) {
	if !isDelimiterLineAt(s, 0) {
		return s, false
	}
	rest := s[len(FrontmatterDelimiter):]
	rest = strings.TrimLeft(rest, " \t")
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		return rest[2:], true
	case strings.HasPrefix(rest, "\n"):
		return rest[1:], true
	default:
		return rest, true
	}
}

// isDelimiterLineAt reports whether the line starting at i consists of the delimiter only.
func isDelimiterLineAt(s string, i int) bool {
	if !strings.HasPrefix(s[i:], FrontmatterDelimiter) {
		return false
	}
	rest := s[i+len(FrontmatterDelimiter):]
	end := strings.IndexByte(rest, CharNewline)
	if end == -1 {
		end = len(rest)
	}
	return strings.TrimRight(rest[:end], " \t\r") == ""
}

// FrontmatterError represents a malformed frontmatter block.
type FrontmatterError struct {
	Message string
}

// Error implements the error interface.
func (e *FrontmatterError) Error() string {
	return e.Message
}
