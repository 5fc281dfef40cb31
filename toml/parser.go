package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser builds a nested map[string]any from tokens
// Values are string, int64, float64 or bool; tables are map[string]any
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	root      map[string]any
	current   map[string]any
	defined   map[string]bool // table headers already seen
}

// NewParser primes a lexer over input
func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer:   NewLexer(input),
		root:    make(map[string]any),
		defined: make(map[string]bool),
	}
	p.nextToken()
	p.nextToken()
	p.current = p.root
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
	for p.peekToken.Type == TokenComment {
		p.peekToken = p.lexer.NextToken()
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.curToken.Line, Msg: fmt.Sprintf(format, args...)}
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.curToken.Type != TokenEOF {
		switch p.curToken.Type {
		case TokenNewline, TokenComment:
			p.nextToken()
			continue
		case TokenLBracket:
			if err := p.parseTableHeader(); err != nil {
				return nil, err
			}
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			if err := p.parseKeyValue(); err != nil {
				return nil, err
			}
		case TokenError:
			return nil, p.errorf("%s", p.curToken.Literal)
		default:
			return nil, p.errorf("unexpected %s", p.curToken)
		}

		if err := p.expectLineEnd(); err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

func (p *Parser) expectLineEnd() error {
	switch p.curToken.Type {
	case TokenNewline:
		p.nextToken()
		return nil
	case TokenEOF:
		return nil
	}
	return p.errorf("expected end of line, got %s", p.curToken)
}

// parseTableHeader handles [a] and [a.b]
func (p *Parser) parseTableHeader() error {
	p.nextToken() // [
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.curToken.Type != TokenRBracket {
		return p.errorf("expected ']' after table name")
	}
	p.nextToken() // ]

	path := strings.Join(keys, ".")
	if p.defined[path] {
		return p.errorf("table [%s] defined twice", path)
	}
	p.defined[path] = true

	table, err := p.descend(p.root, keys)
	if err != nil {
		return err
	}
	p.current = table
	return nil
}

// descend walks or creates nested tables along keys
func (p *Parser) descend(from map[string]any, keys []string) (map[string]any, error) {
	table := from
	for _, key := range keys {
		next, exists := table[key]
		if !exists {
			child := make(map[string]any)
			table[key] = child
			table = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, p.errorf("key %q is a value, not a table", key)
		}
		table = child
	}
	return table, nil
}

func (p *Parser) parseKeyValue() error {
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.curToken.Type != TokenEqual {
		return p.errorf("expected '=' after key, got %s", p.curToken)
	}
	p.nextToken() // =

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	table, err := p.descend(p.current, keys[:len(keys)-1])
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	if _, exists := table[last]; exists {
		return p.errorf("duplicate key %q", last)
	}
	table[last] = val
	return nil
}

// parseKey reads a dotted key; bare integers and booleans are valid key parts
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		switch p.curToken.Type {
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			keys = append(keys, p.curToken.Literal)
		default:
			return nil, p.errorf("expected key, got %s", p.curToken)
		}
		p.nextToken()

		if p.curToken.Type != TokenDot {
			return keys, nil
		}
		p.nextToken()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.curToken
	lit := strings.ReplaceAll(tok.Literal, "_", "")

	switch tok.Type {
	case TokenString:
		p.nextToken()
		return tok.Literal, nil
	case TokenInteger:
		v, err := strconv.ParseInt(lit, 0, 64)
		if err != nil {
			return nil, p.errorf("invalid integer %q", tok.Literal)
		}
		p.nextToken()
		return v, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, p.errorf("invalid float %q", tok.Literal)
		}
		p.nextToken()
		return v, nil
	case TokenBool:
		p.nextToken()
		return tok.Literal == "true", nil
	case TokenError:
		return nil, p.errorf("%s", tok.Literal)
	}
	return nil, p.errorf("unexpected value %s", tok)
}
