package translate

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/tabq/tabq/internal/ir"
)

// translateExpr recursively converts one AST expression node into an
// IR expression tree. The result mirrors the AST subtree one-to-one;
// recursion depth is bounded only by what the parser itself accepted.
func translateExpr(node *pg_query.Node) (ir.Expr, error) {
	if node == nil {
		return nil, newError(CodeUnsupportedExpression, "empty expression", "")
	}

	switch {
	case node.GetAExpr() != nil:
		return translateAExpr(node.GetAExpr())

	case node.GetBoolExpr() != nil:
		return translateBoolExpr(node.GetBoolExpr())

	case node.GetColumnRef() != nil:
		return translateColumnRef(node.GetColumnRef())

	case node.GetAConst() != nil:
		value, err := mapLiteral(node.GetAConst())
		if err != nil {
			return nil, err
		}
		return ir.Literal{Value: value}, nil

	case node.GetNullTest() != nil:
		return translateNullTest(node.GetNullTest())

	default:
		return nil, newError(CodeUnsupportedExpression, "unsupported expression", describeNode(node))
	}
}

// translateAExpr handles binary (and the parser's residual unary)
// operator expressions. Left side first, then the operator, then the
// right side; the first failure propagates without touching the rest.
func translateAExpr(expr *pg_query.A_Expr) (ir.Expr, error) {
	if expr.GetKind() != pg_query.A_Expr_Kind_AEXPR_OP {
		return nil, newError(CodeUnsupportedExpression, "unsupported operator expression", aExprKindText(expr.GetKind()))
	}

	token := aExprToken(expr)

	// The grammar folds negative numeric literals into the constant,
	// but a sign applied to anything else still arrives as an A_Expr
	// with no left operand.
	if expr.GetLexpr() == nil {
		return translateUnary(token, expr.GetRexpr())
	}

	left, err := translateExpr(expr.GetLexpr())
	if err != nil {
		return nil, err
	}
	op, err := mapOperator(token)
	if err != nil {
		return nil, err
	}
	right, err := translateExpr(expr.GetRexpr())
	if err != nil {
		return nil, err
	}

	return ir.BinaryExpr{Left: left, Op: op, Right: right}, nil
}

// translateUnary folds a sign on a numeric literal into the literal
// itself. Any other unary form is unsupported.
func translateUnary(token string, operand *pg_query.Node) (ir.Expr, error) {
	if operand == nil || operand.GetAConst() == nil || (token != "-" && token != "+") {
		return nil, newError(CodeUnsupportedExpression, "unsupported unary expression", token+" "+describeNode(operand))
	}
	value, err := mapLiteral(operand.GetAConst())
	if err != nil {
		return nil, err
	}
	f, ok := value.(ir.Float)
	if !ok {
		return nil, newError(CodeUnsupportedExpression, "sign applied to non-numeric literal", describeNode(operand))
	}
	if token == "-" {
		f = -f
	}
	return ir.Literal{Value: f}, nil
}

// translateBoolExpr folds AND/OR chains left-associatively. The
// parser flattens a AND b AND c into a single node with three
// arguments, which becomes ((a AND b) AND c) in the IR.
func translateBoolExpr(expr *pg_query.BoolExpr) (ir.Expr, error) {
	op, ok := mapBoolOperator(expr.GetBoolop())
	if !ok {
		return nil, newError(CodeUnsupportedExpression, "unsupported boolean expression", boolOpText(expr.GetBoolop()))
	}

	args := expr.GetArgs()
	if len(args) < 2 {
		return nil, newError(CodeUnsupportedExpression, "boolean expression with fewer than two operands", op.String())
	}

	acc, err := translateExpr(args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range args[1:] {
		right, err := translateExpr(arg)
		if err != nil {
			return nil, err
		}
		acc = ir.BinaryExpr{Left: acc, Op: op, Right: right}
	}
	return acc, nil
}

// translateColumnRef maps an identifier to a Column, or a star to a
// Wildcard. A qualified name (t.a) keeps its final segment; the
// qualifier is dropped because the query reads a single source.
func translateColumnRef(ref *pg_query.ColumnRef) (ir.Expr, error) {
	fields := ref.GetFields()
	if len(fields) == 0 {
		return nil, newError(CodeUnsupportedExpression, "empty column reference", "")
	}

	last := fields[len(fields)-1]
	if last.GetAStar() != nil {
		return ir.Wildcard{}, nil
	}
	if s := last.GetString_(); s != nil {
		return ir.Column{Name: s.GetSval()}, nil
	}
	return nil, newError(CodeUnsupportedExpression, "unsupported column reference", describeNode(last))
}

func translateNullTest(test *pg_query.NullTest) (ir.Expr, error) {
	inner, err := translateExpr(test.GetArg())
	if err != nil {
		return nil, err
	}
	switch test.GetNulltesttype() {
	case pg_query.NullTestType_IS_NULL:
		return ir.IsNull{Inner: inner}, nil
	case pg_query.NullTestType_IS_NOT_NULL:
		return ir.IsNotNull{Inner: inner}, nil
	default:
		return nil, newError(CodeUnsupportedExpression, "unsupported null test", test.GetNulltesttype().String())
	}
}

// aExprToken extracts the operator spelling from an A_Expr name list.
func aExprToken(expr *pg_query.A_Expr) string {
	names := expr.GetName()
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1].GetString_().GetSval()
}

// describeNode renders a node compactly for error messages. It covers
// the shapes users actually write; anything exotic falls back to the
// AST type name.
func describeNode(node *pg_query.Node) string {
	if node == nil {
		return "<nil>"
	}
	switch {
	case node.GetColumnRef() != nil:
		var parts []string
		for _, f := range node.GetColumnRef().GetFields() {
			if f.GetAStar() != nil {
				parts = append(parts, "*")
			} else if s := f.GetString_(); s != nil {
				parts = append(parts, s.GetSval())
			}
		}
		return strings.Join(parts, ".")
	case node.GetAConst() != nil:
		return describeConst(node.GetAConst())
	case node.GetFuncCall() != nil:
		var parts []string
		for _, f := range node.GetFuncCall().GetFuncname() {
			if s := f.GetString_(); s != nil {
				parts = append(parts, s.GetSval())
			}
		}
		return strings.Join(parts, ".") + "(...)"
	case node.GetSubLink() != nil:
		return "(subquery)"
	case node.GetTypeCast() != nil:
		return "CAST expression"
	case node.GetCaseExpr() != nil:
		return "CASE expression"
	case node.GetParamRef() != nil:
		return fmt.Sprintf("$%d", node.GetParamRef().GetNumber())
	case node.GetAExpr() != nil:
		return "operator " + aExprToken(node.GetAExpr())
	default:
		return fmt.Sprintf("%T", node.GetNode())
	}
}

// aExprKindText names non-plain operator kinds (LIKE, IN, BETWEEN, ...)
// for diagnostics.
func aExprKindText(kind pg_query.A_Expr_Kind) string {
	switch kind {
	case pg_query.A_Expr_Kind_AEXPR_LIKE:
		return "LIKE"
	case pg_query.A_Expr_Kind_AEXPR_ILIKE:
		return "ILIKE"
	case pg_query.A_Expr_Kind_AEXPR_IN:
		return "IN"
	case pg_query.A_Expr_Kind_AEXPR_BETWEEN:
		return "BETWEEN"
	case pg_query.A_Expr_Kind_AEXPR_DISTINCT:
		return "IS DISTINCT FROM"
	default:
		return kind.String()
	}
}
