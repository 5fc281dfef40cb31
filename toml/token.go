package toml

import (
	"fmt"
)

// TokenType classifies a lexical token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF
	TokenComment

	// Literals
	TokenIdent   // bare key
	TokenString  // "quoted"
	TokenInteger // 123
	TokenFloat   // 1.5
	TokenBool    // true/false

	// Delimiters
	TokenEqual    // =
	TokenDot      // .
	TokenLBracket // [
	TokenRBracket // ]
	TokenNewline  // \n
)

// Token is one lexeme with its source line
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("Error(%s)", t.Literal)
	case TokenNewline:
		return "Newline"
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%q...", t.Literal[:20])
	}
	return fmt.Sprintf("%q", t.Literal)
}

// ParseError reports malformed input with the offending line
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d: %s", e.Line, e.Msg)
}
