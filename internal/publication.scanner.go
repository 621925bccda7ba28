package internal

import (
	"unicode"

	"go.uber.org/zap"
)

// Position is a 1-indexed line/column location plus the rune offset it was computed from.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Scanner is a rune-addressable cursor over a fully materialized document.
// Reads at or past the end return CharEOF; the cursor never exceeds the buffer length.
// The scanner never backtracks on its own: callers save Offset() and Reset() it.
type Scanner struct {
	source []rune
	pos    int
}

// NewScanner creates a scanner positioned at the start of source.
func NewScanner(source string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	runes := []rune(source)
	logger.Debug(LogMsgScannerCreated, zap.Int(LogFieldSource, len(runes)))
	return &Scanner{source: runes}
}

// Len returns the number of runes in the buffer.
func (s *Scanner) Len() int {
	return len(s.source)
}

// Offset returns the current cursor.
func (s *Scanner) Offset() int {
	return s.pos
}

// Reset moves the cursor to offset, clamped into [0, Len()].
func (s *Scanner) Reset(offset int) {
	switch {
	case offset < 0:
		s.pos = 0
	case offset > len(s.source):
		s.pos = len(s.source)
	default:
		s.pos = offset
	}
}

// IsAtEnd returns true once every rune has been taken.
func (s *Scanner) IsAtEnd() bool {
	return s.pos >= len(s.source)
}

// Peek returns the rune under the cursor, or CharEOF at the end.
func (s *Scanner) Peek() rune {
	return s.PeekAt(0)
}

// PeekAt returns the rune k positions after the cursor, or CharEOF when out of range.
func (s *Scanner) PeekAt(k int) rune {
	i := s.pos + k
	if i < 0 || i >= len(s.source) {
		return CharEOF
	}
	return s.source[i]
}

// PeekMany returns up to n runes from the cursor without advancing.
func (s *Scanner) PeekMany(n int) []rune {
	end := s.pos + n
	if n <= 0 {
		return nil
	}
	if end > len(s.source) {
		end = len(s.source)
	}
	return s.source[s.pos:end]
}

// HasPrefix returns true if the remaining input starts with prefix.
func (s *Scanner) HasPrefix(prefix []rune) bool {
	if len(prefix) > len(s.source)-s.pos {
		return false
	}
	for i, r := range prefix {
		if s.source[s.pos+i] != r {
			return false
		}
	}
	return true
}

// Take returns the rune under the cursor and advances past it.
// At the end it returns CharEOF and leaves the cursor in place.
func (s *Scanner) Take() rune {
	if s.IsAtEnd() {
		return CharEOF
	}
	r := s.source[s.pos]
	s.pos++
	return r
}

// TakeMany takes up to n runes.
func (s *Scanner) TakeMany(n int) []rune {
	taken := s.PeekMany(n)
	s.pos += len(taken)
	return taken
}

// SkipWhitespace moves past whitespace and # line comments.
func (s *Scanner) SkipWhitespace() {
	for !s.IsAtEnd() {
		ch := s.Peek()
		switch {
		case ch == CharComment:
			s.SkipComment()
		case unicode.IsSpace(ch):
			s.pos++
		default:
			return
		}
	}
}

// SkipComment moves through the next newline, or to the end of input.
func (s *Scanner) SkipComment() {
	for !s.IsAtEnd() {
		if s.Take() == CharNewline {
			return
		}
	}
}

// Position computes the line and column of a rune offset.
func (s *Scanner) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.source) {
		offset = len(s.source)
	}
	pos := Position{Offset: offset, Line: 1, Column: 1}
	for _, r := range s.source[:offset] {
		if r == CharNewline {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}
