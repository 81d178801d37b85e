package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpr_SealedInterface(t *testing.T) {
	// Every variant satisfies Expr and can be recovered by type switch.
	exprs := []Expr{
		Column{Name: "a"},
		Literal{Value: Float(1)},
		Wildcard{},
		BinaryExpr{Left: Column{Name: "a"}, Op: OpGt, Right: Literal{Value: Float(5)}},
		IsNull{Inner: Column{Name: "a"}},
		IsNotNull{Inner: Column{Name: "a"}},
		Alias{Inner: Column{Name: "a"}, Name: "b"},
	}

	for _, e := range exprs {
		assert.NotNil(t, e)
		assert.NotEmpty(t, e.String())
	}
}

func TestExpr_String(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"column", Column{Name: "total_cases"}, "total_cases"},
		{"wildcard", Wildcard{}, "*"},
		{"float literal", Literal{Value: Float(500)}, "500"},
		{"bool literal", Literal{Value: Bool(true)}, "true"},
		{"null literal", Literal{Value: Null{}}, "NULL"},
		{
			"binary",
			BinaryExpr{Left: Column{Name: "a"}, Op: OpGt, Right: Literal{Value: Float(500)}},
			"(a > 500)",
		},
		{
			"nested binary",
			BinaryExpr{
				Left:  BinaryExpr{Left: Column{Name: "a"}, Op: OpPlus, Right: Column{Name: "b"}},
				Op:    OpLtEq,
				Right: Literal{Value: Float(10)},
			},
			"((a + b) <= 10)",
		},
		{"is null", IsNull{Inner: Column{Name: "a"}}, "a IS NULL"},
		{"is not null", IsNotNull{Inner: Column{Name: "a"}}, "a IS NOT NULL"},
		{"alias", Alias{Inner: Column{Name: "a"}, Name: "renamed"}, "a AS renamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestOperator_String(t *testing.T) {
	tests := []struct {
		op   Operator
		want string
	}{
		{OpPlus, "+"},
		{OpMinus, "-"},
		{OpMultiply, "*"},
		{OpDivide, "/"},
		{OpModulo, "%"},
		{OpGt, ">"},
		{OpLt, "<"},
		{OpGtEq, ">="},
		{OpLtEq, "<="},
		{OpEq, "="},
		{OpNotEq, "<>"},
		{OpAnd, "AND"},
		{OpOr, "OR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestOperator_Categories(t *testing.T) {
	assert.True(t, OpPlus.Arithmetic())
	assert.True(t, OpModulo.Arithmetic())
	assert.False(t, OpGt.Arithmetic())

	assert.True(t, OpEq.Comparison())
	assert.True(t, OpNotEq.Comparison())
	assert.False(t, OpAnd.Comparison())

	assert.True(t, OpAnd.Logical())
	assert.True(t, OpOr.Logical())
	assert.False(t, OpEq.Logical())
}

func TestWalk_VisitsAllNodes(t *testing.T) {
	expr := BinaryExpr{
		Left: BinaryExpr{
			Left:  Column{Name: "a"},
			Op:    OpGt,
			Right: Literal{Value: Float(1)},
		},
		Op:    OpAnd,
		Right: IsNotNull{Inner: Column{Name: "b"}},
	}

	var count int
	err := Walk(expr, func(Expr) error {
		count++
		return nil
	})
	require.NoError(t, err)
	// Root, two binary children, column a, literal, isnotnull, column b.
	assert.Equal(t, 6, count)
}

func TestColumns_DistinctInOrder(t *testing.T) {
	expr := BinaryExpr{
		Left: BinaryExpr{
			Left:  Column{Name: "b"},
			Op:    OpPlus,
			Right: Column{Name: "a"},
		},
		Op:    OpGt,
		Right: Column{Name: "b"},
	}

	assert.Equal(t, []string{"b", "a"}, Columns(expr))
}

func TestColumns_NilExpr(t *testing.T) {
	assert.Empty(t, Columns(nil))
}
