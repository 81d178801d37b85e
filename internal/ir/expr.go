package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a sealed interface representing a translated expression.
//
// Variants:
//   - Column: reference to a named column
//   - Literal: constant value
//   - Wildcard: full-row projection (*)
//   - BinaryExpr: two operands joined by an Operator
//   - IsNull / IsNotNull: null tests over an inner expression
//   - Alias: renames the result of an inner expression
//
// Every leaf is a Column, Literal, or Wildcard; interior nodes own
// their children exclusively. Trees are never shared or mutated after
// construction.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
	String() string
}

// Column references a named column. The name is the identifier's text
// verbatim, with no case normalization.
type Column struct {
	Name string
}

func (Column) exprNode() {}

func (c Column) String() string { return c.Name }

// Literal is a constant value.
type Literal struct {
	Value Value
}

func (Literal) exprNode() {}

func (l Literal) String() string { return l.Value.String() }

// Wildcard selects every column.
type Wildcard struct{}

func (Wildcard) exprNode() {}

func (Wildcard) String() string { return "*" }

// BinaryExpr joins two operands with an operator. Both sides are
// fully translated subtrees.
type BinaryExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
}

func (BinaryExpr) exprNode() {}

func (b BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// IsNull tests whether the inner expression evaluates to null.
type IsNull struct {
	Inner Expr
}

func (IsNull) exprNode() {}

func (n IsNull) String() string { return n.Inner.String() + " IS NULL" }

// IsNotNull tests whether the inner expression evaluates to non-null.
type IsNotNull struct {
	Inner Expr
}

func (IsNotNull) exprNode() {}

func (n IsNotNull) String() string { return n.Inner.String() + " IS NOT NULL" }

// Alias renames the result of the inner expression in the output.
type Alias struct {
	Inner Expr
	Name  string
}

func (Alias) exprNode() {}

func (a Alias) String() string { return a.Inner.String() + " AS " + a.Name }

// Value is a sealed interface for literal values. Only Float, Bool,
// and Null implement it; any other SQL literal kind is rejected during
// translation rather than represented here.
type Value interface {
	valueNode() // Marker method - seals interface to this package
	String() string
}

// Float is a numeric literal. All SQL numerics (integer or decimal)
// normalize to float64.
type Float float64

func (Float) valueNode() {}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Bool is a boolean literal.
type Bool bool

func (Bool) valueNode() {}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Null is the SQL NULL literal.
type Null struct{}

func (Null) valueNode() {}

func (Null) String() string { return "NULL" }

// Walk calls fn for expr and every descendant, depth-first. It returns
// the first error fn reports.
func Walk(expr Expr, fn func(Expr) error) error {
	if expr == nil {
		return nil
	}
	if err := fn(expr); err != nil {
		return err
	}
	switch e := expr.(type) {
	case BinaryExpr:
		if err := Walk(e.Left, fn); err != nil {
			return err
		}
		return Walk(e.Right, fn)
	case IsNull:
		return Walk(e.Inner, fn)
	case IsNotNull:
		return Walk(e.Inner, fn)
	case Alias:
		return Walk(e.Inner, fn)
	default:
		return nil
	}
}

// Columns returns the distinct column names referenced by expr, in
// first-appearance order.
func Columns(expr Expr) []string {
	var names []string
	seen := map[string]struct{}{}
	_ = Walk(expr, func(e Expr) error {
		if c, ok := e.(Column); ok {
			if _, dup := seen[c.Name]; !dup {
				seen[c.Name] = struct{}{}
				names = append(names, c.Name)
			}
		}
		return nil
	})
	return names
}

// joinExprs renders a selection list for diagnostics.
func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
