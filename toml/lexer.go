package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer splits input into tokens
// Supports the subset used by settings files: scalars, bare/quoted keys, table headers
type Lexer struct {
	input []byte
	pos   int
	line  int
}

// NewLexer scans input starting at line 1
func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken returns the next token in the stream
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return l.token(TokenEOF, "")
	}

	ch := l.peek()
	switch ch {
	case '\n':
		tok := l.token(TokenNewline, "\n")
		l.advance()
		return tok
	case '#':
		return l.readComment()
	case '=':
		l.advance()
		return l.token(TokenEqual, "=")
	case '.':
		l.advance()
		return l.token(TokenDot, ".")
	case '[':
		l.advance()
		return l.token(TokenLBracket, "[")
	case ']':
		l.advance()
		return l.token(TokenRBracket, "]")
	case '"':
		return l.readString()
	}

	if isDigit(ch) || isAlpha(ch) || ch == '_' || ch == '-' || ch == '+' {
		return l.readBare()
	}

	l.advance()
	return l.token(TokenError, fmt.Sprintf("unexpected character %q", ch))
}

func (l *Lexer) token(typ TokenType, literal string) Token {
	return Token{Type: typ, Literal: literal, Line: l.line}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) readComment() Token {
	l.advance() // #
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, string(l.input[start:l.pos]))
}

func (l *Lexer) readString() Token {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		if l.peek() == '\n' {
			return l.token(TokenError, "newline in basic string")
		}
		ch := l.advance()
		switch ch {
		case '"':
			return l.token(TokenString, sb.String())
		case '\\':
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				return l.token(TokenError, fmt.Sprintf("invalid escape \\%c", esc))
			}
		default:
			sb.WriteRune(ch)
		}
	}
	return l.token(TokenError, "unterminated string")
}

// readBare reads a bare key, number or boolean; '.' is part of the lexeme only for numbers
func (l *Lexer) readBare() Token {
	start := l.pos
	first := l.peek()
	numeric := isDigit(first) || first == '+' || first == '-'

	for l.pos < len(l.input) {
		ch := l.peek()
		if isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == '+' {
			l.advance()
		} else if ch == '.' && numeric {
			l.advance()
		} else {
			break
		}
	}
	lit := string(l.input[start:l.pos])

	if lit == "true" || lit == "false" {
		return l.token(TokenBool, lit)
	}
	if !numeric {
		return l.token(TokenIdent, lit)
	}

	digits := strings.TrimLeft(lit, "+-")
	if digits == "" {
		return l.token(TokenIdent, lit)
	}
	for _, r := range digits {
		if isAlpha(r) && r != 'e' && r != 'E' {
			return l.token(TokenIdent, lit)
		}
	}
	if strings.ContainsAny(digits, ".eE") {
		return l.token(TokenFloat, lit)
	}
	return l.token(TokenInteger, lit)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
