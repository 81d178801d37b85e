package engine

import (
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/tabq/tabq/internal/ir"
)

// kind tags the runtime type of an evaluated value.
type kind int

const (
	kindNull kind = iota
	kindFloat
	kindBool
	kindString
)

func (k kind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindFloat:
		return "number"
	case kindBool:
		return "boolean"
	case kindString:
		return "string"
	}
	return "unknown"
}

// value is one evaluated cell or intermediate result.
type value struct {
	kind kind
	f    float64
	b    bool
	s    string
}

var nullValue = value{kind: kindNull}

func floatValue(f float64) value { return value{kind: kindFloat, f: f} }

func boolValue(b bool) value { return value{kind: kindBool, b: b} }

func stringValue(s string) value { return value{kind: kindString, s: s} }

// evaluator evaluates expression trees against the rows of one frame.
// Column series are resolved once up front.
type evaluator struct {
	columns map[string]series.Series
}

func newEvaluator(df dataframe.DataFrame) *evaluator {
	columns := make(map[string]series.Series, len(df.Names()))
	for _, name := range df.Names() {
		columns[name] = df.Col(name)
	}
	return &evaluator{columns: columns}
}

// eval computes expr for one row. Null propagates: any null operand
// makes the result null.
func (ev *evaluator) eval(expr ir.Expr, row int) (value, error) {
	switch e := expr.(type) {
	case ir.Column:
		return ev.columnValue(e.Name, row)

	case ir.Literal:
		return literalValue(e.Value), nil

	case ir.BinaryExpr:
		left, err := ev.eval(e.Left, row)
		if err != nil {
			return nullValue, err
		}
		right, err := ev.eval(e.Right, row)
		if err != nil {
			return nullValue, err
		}
		return applyOperator(e.Op, left, right)

	case ir.IsNull:
		inner, err := ev.eval(e.Inner, row)
		if err != nil {
			return nullValue, err
		}
		return boolValue(inner.kind == kindNull), nil

	case ir.IsNotNull:
		inner, err := ev.eval(e.Inner, row)
		if err != nil {
			return nullValue, err
		}
		return boolValue(inner.kind != kindNull), nil

	case ir.Alias:
		return ev.eval(e.Inner, row)

	default:
		// Wildcard and anything future; projection handles those
		// shapes before evaluation is ever reached.
		return nullValue, execErrorf("filter", "expression %s cannot be evaluated per row", expr)
	}
}

func (ev *evaluator) columnValue(name string, row int) (value, error) {
	col, ok := ev.columns[name]
	if !ok {
		return nullValue, execErrorf("filter", "unknown column %q", name)
	}

	elem := col.Elem(row)
	if elem.IsNA() {
		return nullValue, nil
	}

	switch col.Type() {
	case series.Int, series.Float:
		return floatValue(elem.Float()), nil
	case series.Bool:
		b, err := elem.Bool()
		if err != nil {
			return nullValue, nil
		}
		return boolValue(b), nil
	default:
		return stringValue(elem.String()), nil
	}
}

func literalValue(v ir.Value) value {
	switch lit := v.(type) {
	case ir.Float:
		return floatValue(float64(lit))
	case ir.Bool:
		return boolValue(bool(lit))
	default:
		return nullValue
	}
}

// applyOperator evaluates one binary operation with SQL null
// semantics: a null on either side yields null.
func applyOperator(op ir.Operator, left, right value) (value, error) {
	if left.kind == kindNull || right.kind == kindNull {
		return nullValue, nil
	}

	switch {
	case op.Arithmetic():
		if left.kind != kindFloat || right.kind != kindFloat {
			return nullValue, execErrorf("filter",
				"operator %s needs numeric operands, got %s and %s", op, left.kind, right.kind)
		}
		return arithmetic(op, left.f, right.f)

	case op.Comparison():
		return compare(op, left, right)

	case op.Logical():
		if left.kind != kindBool || right.kind != kindBool {
			return nullValue, execErrorf("filter",
				"operator %s needs boolean operands, got %s and %s", op, left.kind, right.kind)
		}
		if op == ir.OpAnd {
			return boolValue(left.b && right.b), nil
		}
		return boolValue(left.b || right.b), nil

	default:
		return nullValue, execErrorf("filter", "operator %s cannot be evaluated", op)
	}
}

func arithmetic(op ir.Operator, left, right float64) (value, error) {
	switch op {
	case ir.OpPlus:
		return floatValue(left + right), nil
	case ir.OpMinus:
		return floatValue(left - right), nil
	case ir.OpMultiply:
		return floatValue(left * right), nil
	case ir.OpDivide:
		if right == 0 {
			return nullValue, execErrorf("filter", "division by zero")
		}
		return floatValue(left / right), nil
	case ir.OpModulo:
		if right == 0 {
			return nullValue, execErrorf("filter", "modulo by zero")
		}
		return floatValue(math.Mod(left, right)), nil
	}
	return nullValue, execErrorf("filter", "operator %s is not arithmetic", op)
}

func compare(op ir.Operator, left, right value) (value, error) {
	if left.kind != right.kind {
		return nullValue, execErrorf("filter",
			"cannot compare %s with %s", left.kind, right.kind)
	}

	var cmp int
	switch left.kind {
	case kindFloat:
		switch {
		case left.f < right.f:
			cmp = -1
		case left.f > right.f:
			cmp = 1
		}
	case kindString:
		cmp = strings.Compare(left.s, right.s)
	case kindBool:
		if op != ir.OpEq && op != ir.OpNotEq {
			return nullValue, execErrorf("filter", "booleans only support = and <>")
		}
		if left.b == right.b {
			cmp = 0
		} else {
			cmp = 1
		}
	}

	switch op {
	case ir.OpEq:
		return boolValue(cmp == 0), nil
	case ir.OpNotEq:
		return boolValue(cmp != 0), nil
	case ir.OpGt:
		return boolValue(cmp > 0), nil
	case ir.OpLt:
		return boolValue(cmp < 0), nil
	case ir.OpGtEq:
		return boolValue(cmp >= 0), nil
	case ir.OpLtEq:
		return boolValue(cmp <= 0), nil
	}
	return nullValue, execErrorf("filter", "operator %s is not a comparison", op)
}
