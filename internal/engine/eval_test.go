package engine

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabq/tabq/internal/ir"
)

// evalFrame holds four rows; score has a missing value on row 1.
func evalFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"alpha", "beta", "gamma", "delta"}, series.String, "name"),
		series.New([]int{3, 10, 7, 2}, series.Int, "total"),
		series.New([]float64{1.5, math.NaN(), 5, 2}, series.Float, "score"),
		series.New([]bool{true, false, true, false}, series.Bool, "active"),
	)
}

func evalAt(t *testing.T, expr ir.Expr, row int) value {
	t.Helper()
	ev := newEvaluator(evalFrame())
	v, err := ev.eval(expr, row)
	require.NoError(t, err)
	return v
}

func TestEval_ColumnKinds(t *testing.T) {
	assert.Equal(t, stringValue("alpha"), evalAt(t, ir.Column{Name: "name"}, 0))
	assert.Equal(t, floatValue(3), evalAt(t, ir.Column{Name: "total"}, 0))
	assert.Equal(t, floatValue(1.5), evalAt(t, ir.Column{Name: "score"}, 0))
	assert.Equal(t, boolValue(true), evalAt(t, ir.Column{Name: "active"}, 0))
}

func TestEval_MissingCellIsNull(t *testing.T) {
	assert.Equal(t, nullValue, evalAt(t, ir.Column{Name: "score"}, 1))
}

func TestEval_UnknownColumn(t *testing.T) {
	ev := newEvaluator(evalFrame())
	_, err := ev.eval(ir.Column{Name: "missing"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestEval_Comparisons(t *testing.T) {
	tests := []struct {
		name string
		expr ir.Expr
		row  int
		want bool
	}{
		{
			"gt true",
			ir.BinaryExpr{Left: ir.Column{Name: "total"}, Op: ir.OpGt, Right: ir.Literal{Value: ir.Float(5)}},
			1, true,
		},
		{
			"gt false",
			ir.BinaryExpr{Left: ir.Column{Name: "total"}, Op: ir.OpGt, Right: ir.Literal{Value: ir.Float(5)}},
			0, false,
		},
		{
			"eq string columns",
			ir.BinaryExpr{Left: ir.Column{Name: "name"}, Op: ir.OpEq, Right: ir.Column{Name: "name"}},
			0, true,
		},
		{
			"bool eq literal",
			ir.BinaryExpr{Left: ir.Column{Name: "active"}, Op: ir.OpEq, Right: ir.Literal{Value: ir.Bool(true)}},
			0, true,
		},
		{
			"lteq boundary",
			ir.BinaryExpr{Left: ir.Column{Name: "total"}, Op: ir.OpLtEq, Right: ir.Literal{Value: ir.Float(3)}},
			0, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, boolValue(tt.want), evalAt(t, tt.expr, tt.row))
		})
	}
}

func TestEval_Arithmetic(t *testing.T) {
	// total + score on row 0: 3 + 1.5.
	sum := ir.BinaryExpr{Left: ir.Column{Name: "total"}, Op: ir.OpPlus, Right: ir.Column{Name: "score"}}
	assert.Equal(t, floatValue(4.5), evalAt(t, sum, 0))

	mod := ir.BinaryExpr{Left: ir.Column{Name: "total"}, Op: ir.OpModulo, Right: ir.Literal{Value: ir.Float(4)}}
	assert.Equal(t, floatValue(3), evalAt(t, mod, 0))
}

func TestEval_DivisionByZero(t *testing.T) {
	ev := newEvaluator(evalFrame())
	expr := ir.BinaryExpr{Left: ir.Column{Name: "total"}, Op: ir.OpDivide, Right: ir.Literal{Value: ir.Float(0)}}
	_, err := ev.eval(expr, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestEval_NullPropagates(t *testing.T) {
	// score is missing on row 1, so any operation over it is null.
	cmp := ir.BinaryExpr{Left: ir.Column{Name: "score"}, Op: ir.OpGt, Right: ir.Literal{Value: ir.Float(0)}}
	assert.Equal(t, nullValue, evalAt(t, cmp, 1))

	sum := ir.BinaryExpr{Left: ir.Column{Name: "score"}, Op: ir.OpPlus, Right: ir.Literal{Value: ir.Float(1)}}
	assert.Equal(t, nullValue, evalAt(t, sum, 1))
}

func TestEval_NullTests(t *testing.T) {
	isNull := ir.IsNull{Inner: ir.Column{Name: "score"}}
	assert.Equal(t, boolValue(true), evalAt(t, isNull, 1))
	assert.Equal(t, boolValue(false), evalAt(t, isNull, 0))

	isNotNull := ir.IsNotNull{Inner: ir.Column{Name: "score"}}
	assert.Equal(t, boolValue(false), evalAt(t, isNotNull, 1))
	assert.Equal(t, boolValue(true), evalAt(t, isNotNull, 0))
}

func TestEval_Logical(t *testing.T) {
	both := ir.BinaryExpr{
		Left:  ir.BinaryExpr{Left: ir.Column{Name: "total"}, Op: ir.OpGt, Right: ir.Literal{Value: ir.Float(1)}},
		Op:    ir.OpAnd,
		Right: ir.Column{Name: "active"},
	}
	assert.Equal(t, boolValue(true), evalAt(t, both, 0))
	assert.Equal(t, boolValue(false), evalAt(t, both, 1))
}

func TestEval_TypeMismatch(t *testing.T) {
	ev := newEvaluator(evalFrame())
	expr := ir.BinaryExpr{Left: ir.Column{Name: "name"}, Op: ir.OpGt, Right: ir.Column{Name: "total"}}
	_, err := ev.eval(expr, 0)
	require.Error(t, err)

	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "filter", ee.Op)
}

func TestEval_AliasEvaluatesInner(t *testing.T) {
	aliased := ir.Alias{Inner: ir.Column{Name: "total"}, Name: "t"}
	assert.Equal(t, floatValue(3), evalAt(t, aliased, 0))
}
