// Package dsl parses the dimension expressions used in catalog configuration files,
// e.g. `6.4cm`, `1pt`, `363/991` or `page.width - 2 * 1.5cm`.
package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	exprLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+|\.\d+)(?:pt|mm|cm|in)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Symbol", Pattern: `[-+*/().]`},
	})

	exprParser = participle.MustBuild[Expr](
		participle.Lexer(exprLexer),
		participle.Elide("Whitespace"),
	)
)

// Expr is a sum of terms.
type Expr struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Left  *Term          `parser:"@@"`
	Right []*OpTerm      `parser:"@@*"`
}

// OpTerm is one `+ term` or `- term` continuation.
type OpTerm struct {
	Op   string `parser:"@('+' | '-')"`
	Term *Term  `parser:"@@"`
}

// Term is a product of factors.
type Term struct {
	Left  *Factor     `parser:"@@"`
	Right []*OpFactor `parser:"@@*"`
}

// OpFactor is one `* factor` or `/ factor` continuation.
type OpFactor struct {
	Op     string  `parser:"@('*' | '/')"`
	Factor *Factor `parser:"@@"`
}

// Factor is a literal, a reference or a parenthesised expression, optionally negated.
type Factor struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Neg    bool           `parser:"@'-'?"`
	Number *string        `parser:"(  @Number"`
	Ref    []string       `parser:" | @Ident ( '.' @Ident )*"`
	Sub    *Expr          `parser:" | '(' @@ ')' )"`
}

// Parse parses a single dimension expression.
func Parse(src string) (*Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("dsl: empty expression")
	}
	expr, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("dsl: parse %q: %w", src, err)
	}
	return expr, nil
}

// splitNumber separates the numeric part of a Number token from its unit suffix.
func splitNumber(tok string) (float64, string, error) {
	i := len(tok)
	for i > 0 && (tok[i-1] < '0' || tok[i-1] > '9') && tok[i-1] != '.' {
		i--
	}
	v, err := strconv.ParseFloat(tok[:i], 64)
	if err != nil {
		return 0, "", err
	}
	return v, tok[i:], nil
}
