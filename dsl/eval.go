package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/catalogo/layout"
)

// ErrDivisionByZero is returned when an expression divides by zero.
var ErrDivisionByZero = errors.New("dsl: division by zero")

// Env maps dotted references such as page.width to lengths in mm.
type Env map[string]float64

// Value is an evaluated expression: a length in mm, or a plain number.
type Value struct {
	V      float64
	Length bool
}

// Eval evaluates the expression. References resolve to lengths from env.
func (e *Expr) Eval(env Env) (Value, error) {
	acc, err := e.Left.eval(env)
	if err != nil {
		return Value{}, err
	}
	for _, op := range e.Right {
		rhs, err := op.Term.eval(env)
		if err != nil {
			return Value{}, err
		}
		if acc.Length != rhs.Length {
			return Value{}, fmt.Errorf("dsl: cannot %s a length and a plain number", verb(op.Op))
		}
		if op.Op == "+" {
			acc.V += rhs.V
		} else {
			acc.V -= rhs.V
		}
	}
	return acc, nil
}

func verb(op string) string {
	if op == "+" {
		return "add"
	}
	return "subtract"
}

func (t *Term) eval(env Env) (Value, error) {
	acc, err := t.Left.eval(env)
	if err != nil {
		return Value{}, err
	}
	for _, op := range t.Right {
		rhs, err := op.Factor.eval(env)
		if err != nil {
			return Value{}, err
		}
		switch op.Op {
		case "*":
			if acc.Length && rhs.Length {
				return Value{}, fmt.Errorf("dsl: cannot multiply two lengths")
			}
			acc = Value{V: acc.V * rhs.V, Length: acc.Length || rhs.Length}
		case "/":
			if rhs.V == 0 {
				return Value{}, ErrDivisionByZero
			}
			if rhs.Length && !acc.Length {
				return Value{}, fmt.Errorf("dsl: cannot divide a plain number by a length")
			}
			// length/length is a ratio
			acc = Value{V: acc.V / rhs.V, Length: acc.Length && !rhs.Length}
		}
	}
	return acc, nil
}

func (f *Factor) eval(env Env) (Value, error) {
	var v Value
	switch {
	case f.Number != nil:
		n, unit, err := splitNumber(*f.Number)
		if err != nil {
			return Value{}, fmt.Errorf("dsl: bad number %q: %w", *f.Number, err)
		}
		if u := layout.UnitFromString(unit); u != layout.UnitNone {
			v = Value{V: layout.Length{Value: n, Unit: u}.ToMM(), Length: true}
		} else {
			v = Value{V: n}
		}
	case len(f.Ref) > 0:
		name := strings.Join(f.Ref, ".")
		mm, ok := env[name]
		if !ok {
			return Value{}, fmt.Errorf("dsl: unknown reference %q at %s", name, f.Pos)
		}
		v = Value{V: mm, Length: true}
	case f.Sub != nil:
		sub, err := f.Sub.Eval(env)
		if err != nil {
			return Value{}, err
		}
		v = sub
	}
	if f.Neg {
		v.V = -v.V
	}
	return v, nil
}

// Length evaluates src to a length in mm. A plain number is taken as mm.
func Length(src string, env Env) (float64, error) {
	v, err := evalString(src, env)
	if err != nil {
		return 0, err
	}
	return v.V, nil
}

// Ratio evaluates src to a plain number, e.g. `363/991` or `header.height / page.width`.
func Ratio(src string, env Env) (float64, error) {
	v, err := evalString(src, env)
	if err != nil {
		return 0, err
	}
	if v.Length {
		return 0, fmt.Errorf("dsl: %q is a length, want a plain number", src)
	}
	return v.V, nil
}

func evalString(src string, env Env) (Value, error) {
	expr, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return expr.Eval(env)
}

// PageEnv exposes the page and card sizes of g as references.
func PageEnv(g layout.Geometry) Env {
	return Env{
		"page.width":  g.PageWidth,
		"page.height": g.PageHeight,
		"card.width":  g.CardWidth,
		"card.height": g.CardHeight,
	}
}
