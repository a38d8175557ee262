// File: token.go
// Title: Lox Token Model
// Description: Defines the closed set of token kinds produced by the
//              scanner and the immutable Token record handed to the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial token model

package scanner

import (
	"fmt"
)

// TokenType represents the kind of a lexical token
type TokenType int

const (
	// Single-character tokens
	TokenLeftParen  TokenType = iota // (
	TokenRightParen                  // )
	TokenLeftBrace                   // {
	TokenRightBrace                  // }
	TokenComma                       // ,
	TokenDot                         // .
	TokenMinus                       // -
	TokenPlus                        // +
	TokenSemicolon                   // ;
	TokenSlash                       // /
	TokenStar                        // *

	// One or two character tokens
	TokenBang         // !
	TokenBangEqual    // !=
	TokenEqual        // =
	TokenEqualEqual   // ==
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=

	// Literals
	TokenIdentifier
	TokenString
	TokenNumber

	// Keywords
	TokenAnd
	TokenClass
	TokenElse
	TokenFalse
	TokenFor
	TokenFun
	TokenIf
	TokenNil
	TokenOr
	TokenPrint
	TokenReturn
	TokenSuper
	TokenThis
	TokenTrue
	TokenVar
	TokenWhile

	// Special tokens
	TokenEOF
	TokenUnexpectedCharacter
	TokenUnterminatedString
)

var tokenNames = [...]string{
	TokenLeftParen:           "LEFT_PAREN",
	TokenRightParen:          "RIGHT_PAREN",
	TokenLeftBrace:           "LEFT_BRACE",
	TokenRightBrace:          "RIGHT_BRACE",
	TokenComma:               "COMMA",
	TokenDot:                 "DOT",
	TokenMinus:               "MINUS",
	TokenPlus:                "PLUS",
	TokenSemicolon:           "SEMICOLON",
	TokenSlash:               "SLASH",
	TokenStar:                "STAR",
	TokenBang:                "BANG",
	TokenBangEqual:           "BANG_EQUAL",
	TokenEqual:               "EQUAL",
	TokenEqualEqual:          "EQUAL_EQUAL",
	TokenGreater:             "GREATER",
	TokenGreaterEqual:        "GREATER_EQUAL",
	TokenLess:                "LESS",
	TokenLessEqual:           "LESS_EQUAL",
	TokenIdentifier:          "IDENTIFIER",
	TokenString:              "STRING",
	TokenNumber:              "NUMBER",
	TokenAnd:                 "AND",
	TokenClass:               "CLASS",
	TokenElse:                "ELSE",
	TokenFalse:               "FALSE",
	TokenFor:                 "FOR",
	TokenFun:                 "FUN",
	TokenIf:                  "IF",
	TokenNil:                 "NIL",
	TokenOr:                  "OR",
	TokenPrint:               "PRINT",
	TokenReturn:              "RETURN",
	TokenSuper:               "SUPER",
	TokenThis:                "THIS",
	TokenTrue:                "TRUE",
	TokenVar:                 "VAR",
	TokenWhile:               "WHILE",
	TokenEOF:                 "EOF",
	TokenUnexpectedCharacter: "UNEXPECTED_CHARACTER",
	TokenUnterminatedString:  "UNTERMINATED_STRING",
}

// String returns the upper case name of the token type
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsError reports whether the token type marks a lexical error
func (tt TokenType) IsError() bool {
	return tt == TokenUnexpectedCharacter || tt == TokenUnterminatedString
}

// StartsStatement reports whether a token of this type begins a new
// declaration or statement. The parser resynchronizes on these.
func (tt TokenType) StartsStatement() bool {
	switch tt {
	case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
		return true
	}
	return false
}

// keywords maps reserved words to their token types. Matching is case-sensitive.
var keywords = map[string]TokenType{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

// LookupIdent returns the keyword type for ident or TokenIdentifier
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdentifier
}

// IsKeyword reports whether s is a reserved word
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Token represents a lexical token. Lexeme is the exact source text,
// including the quotes of a string literal.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

// String returns a compact representation used by tooling and tests
func (t Token) String() string {
	return fmt.Sprintf("%d %s '%s'", t.Line, t.Type, t.Lexeme)
}

// StringValue returns the literal text of a string token without quotes.
// An unterminated string has only an opening quote.
func (t Token) StringValue() string {
	s := t.Lexeme
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if t.Type == TokenString && len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	return s
}
