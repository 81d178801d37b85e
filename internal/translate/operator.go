package translate

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/tabq/tabq/internal/ir"
)

// operatorTokens maps the spelling of an A_Expr operator to the IR
// operator. pg_query reports PostgreSQL's both spellings of
// not-equals, so the table has one extra entry for "!=".
var operatorTokens = map[string]ir.Operator{
	"+":  ir.OpPlus,
	"-":  ir.OpMinus,
	"*":  ir.OpMultiply,
	"/":  ir.OpDivide,
	"%":  ir.OpModulo,
	">":  ir.OpGt,
	"<":  ir.OpLt,
	">=": ir.OpGtEq,
	"<=": ir.OpLtEq,
	"=":  ir.OpEq,
	"<>": ir.OpNotEq,
	"!=": ir.OpNotEq,
}

// mapOperator maps one SQL binary operator token to an IR operator.
// Any token outside the supported set is a hard failure carrying the
// token's text.
func mapOperator(token string) (ir.Operator, error) {
	op, ok := operatorTokens[token]
	if !ok {
		return 0, newError(CodeUnsupportedOperator, "unsupported binary operator", token)
	}
	return op, nil
}

// mapBoolOperator maps a BoolExpr combinator to an IR operator. NOT
// has no IR counterpart and is rejected as an expression, not here.
func mapBoolOperator(op pg_query.BoolExprType) (ir.Operator, bool) {
	switch op {
	case pg_query.BoolExprType_AND_EXPR:
		return ir.OpAnd, true
	case pg_query.BoolExprType_OR_EXPR:
		return ir.OpOr, true
	default:
		return 0, false
	}
}

// boolOpText names a BoolExpr combinator for diagnostics.
func boolOpText(op pg_query.BoolExprType) string {
	switch op {
	case pg_query.BoolExprType_AND_EXPR:
		return "AND"
	case pg_query.BoolExprType_OR_EXPR:
		return "OR"
	case pg_query.BoolExprType_NOT_EXPR:
		return "NOT"
	default:
		return op.String()
	}
}
