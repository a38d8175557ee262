// File: scanner.go
// Title: Lox Lexical Analyzer
// Description: Converts source text into a flat token sequence in a single
//              forward pass. Malformed input produces error tokens in the
//              stream instead of aborting the scan, and every scan ends with
//              exactly one EOF token.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial scanner implementation

package scanner

import (
	"unicode/utf8"

	mdwlog "github.com/msto63/lox/foundation/core/log"
)

// Scanner holds the scanning state for one source text
type Scanner struct {
	source string
	start  int // Offset of the first byte of the token being scanned
	pos    int // Offset of the next unread byte
	line   int // Current line number (1-based)
	logger *mdwlog.Logger
}

// Options configures a Scanner
type Options struct {
	Logger *mdwlog.Logger
}

// New creates a scanner for source
func New(source string, opts ...Options) *Scanner {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	logger := o.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Scanner{
		source: source,
		line:   1,
		logger: logger.WithField("component", "lox-scanner"),
	}
}

// Scan is a convenience wrapper returning all tokens of source
func Scan(source string) []Token {
	return New(source).ScanTokens()
}

// ScanTokens scans the whole source. The result always ends with exactly
// one EOF token; lexical errors appear in place as error tokens.
func (s *Scanner) ScanTokens() []Token {
	var tokens []Token
	errors := 0

	for {
		tok := s.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
		if tok.Type.IsError() {
			errors++
		}
	}

	s.logger.Debug("scanned source", mdwlog.Fields{
		"tokens": len(tokens),
		"errors": errors,
		"lines":  s.line,
	})
	return tokens
}

// NextToken scans and returns the next token. Once the input is exhausted
// it keeps returning EOF.
func (s *Scanner) NextToken() Token {
	s.skipWhitespace()
	s.start = s.pos

	if s.atEnd() {
		return Token{Type: TokenEOF, Lexeme: "", Line: s.line}
	}

	ch := s.readChar()
	if isAlpha(ch) {
		return s.readIdentifier()
	}
	if isDigit(ch) {
		return s.readNumber()
	}

	switch ch {
	case '(':
		return s.makeToken(TokenLeftParen)
	case ')':
		return s.makeToken(TokenRightParen)
	case '{':
		return s.makeToken(TokenLeftBrace)
	case '}':
		return s.makeToken(TokenRightBrace)
	case ',':
		return s.makeToken(TokenComma)
	case '.':
		return s.makeToken(TokenDot)
	case '-':
		return s.makeToken(TokenMinus)
	case '+':
		return s.makeToken(TokenPlus)
	case ';':
		return s.makeToken(TokenSemicolon)
	case '/':
		return s.makeToken(TokenSlash)
	case '*':
		return s.makeToken(TokenStar)
	case '!':
		return s.makeToken(s.either('=', TokenBangEqual, TokenBang))
	case '=':
		return s.makeToken(s.either('=', TokenEqualEqual, TokenEqual))
	case '<':
		return s.makeToken(s.either('=', TokenLessEqual, TokenLess))
	case '>':
		return s.makeToken(s.either('=', TokenGreaterEqual, TokenGreater))
	case '"':
		return s.readString()
	}

	// Consume the rest of a multi-byte character so the lexeme is valid text
	if ch >= utf8.RuneSelf {
		_, size := utf8.DecodeRuneInString(s.source[s.start:])
		s.pos = s.start + size
	}
	return s.makeToken(TokenUnexpectedCharacter)
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

// readChar consumes and returns the next byte
func (s *Scanner) readChar() byte {
	ch := s.source[s.pos]
	s.pos++
	return ch
}

// peekChar returns the next byte without consuming it, 0 at end of input
func (s *Scanner) peekChar() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.pos]
}

// peekNext returns the byte after the next one, 0 past end of input
func (s *Scanner) peekNext() byte {
	if s.pos+1 >= len(s.source) {
		return 0
	}
	return s.source[s.pos+1]
}

// either consumes expected and returns matched, or returns single
func (s *Scanner) either(expected byte, matched, single TokenType) TokenType {
	if s.peekChar() != expected {
		return single
	}
	s.pos++
	return matched
}

func (s *Scanner) makeToken(tt TokenType) Token {
	return Token{Type: tt, Lexeme: s.source[s.start:s.pos], Line: s.line}
}

// skipWhitespace skips blanks, newlines and line comments
func (s *Scanner) skipWhitespace() {
	for !s.atEnd() {
		switch s.peekChar() {
		case ' ', '\t', '\r':
			s.pos++
		case '\n':
			s.line++
			s.pos++
		case '/':
			if s.peekNext() != '/' {
				return
			}
			for !s.atEnd() && s.peekChar() != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// readString consumes a string literal after its opening quote. The token
// line is the line the literal ends on.
func (s *Scanner) readString() Token {
	for !s.atEnd() {
		switch s.readChar() {
		case '"':
			return s.makeToken(TokenString)
		case '\n':
			s.line++
		}
	}
	return s.makeToken(TokenUnterminatedString)
}

// readNumber consumes digits with an optional fraction. A dot is only part
// of the number when a digit follows it.
func (s *Scanner) readNumber() Token {
	for isDigit(s.peekChar()) {
		s.pos++
	}
	if s.peekChar() == '.' && isDigit(s.peekNext()) {
		s.pos++
		for isDigit(s.peekChar()) {
			s.pos++
		}
	}
	return s.makeToken(TokenNumber)
}

func (s *Scanner) readIdentifier() Token {
	for isAlpha(s.peekChar()) || isDigit(s.peekChar()) {
		s.pos++
	}
	return s.makeToken(LookupIdent(s.source[s.start:s.pos]))
}

// isAlpha checks for ASCII letters and underscore
func isAlpha(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if the character is a decimal digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
