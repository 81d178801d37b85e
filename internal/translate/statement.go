package translate

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/tabq/tabq/internal/ir"
)

// Statement decomposes one parsed statement into an ir.Query.
//
// The statement must be a plain single SELECT: no set operations, no
// WITH, no VALUES, no grouping, no DISTINCT. Clause translation order
// is source, condition, selection, order-by, offset/limit; the first
// failing clause aborts the whole translation. Offset and limit never
// fail (see clause.go).
func Statement(raw *pg_query.RawStmt) (*ir.Query, error) {
	if raw == nil || raw.GetStmt() == nil {
		return nil, newError(CodeUnsupportedStatement, "empty statement", "")
	}

	sel := raw.GetStmt().GetSelectStmt()
	if sel == nil {
		return nil, newError(CodeUnsupportedStatement,
			"only SELECT statements are supported", describeStatement(raw.GetStmt()))
	}
	if err := checkSelectShape(sel); err != nil {
		return nil, err
	}

	source, err := translateSource(sel.GetFromClause())
	if err != nil {
		return nil, err
	}

	var condition ir.Expr
	if where := sel.GetWhereClause(); where != nil {
		condition, err = translateExpr(where)
		if err != nil {
			return nil, err
		}
	}

	selection, err := translateProjection(sel.GetTargetList())
	if err != nil {
		return nil, err
	}

	orderBy, err := translateOrderBy(sel.GetSortClause())
	if err != nil {
		return nil, err
	}

	return &ir.Query{
		Selection: selection,
		Condition: condition,
		Source:    source,
		OrderBy:   orderBy,
		Offset:    translateOffset(sel.GetLimitOffset()),
		Limit:     translateLimit(sel.GetLimitCount()),
	}, nil
}

// checkSelectShape rejects SELECT features outside the subset before
// any clause translation runs.
func checkSelectShape(sel *pg_query.SelectStmt) error {
	switch {
	case sel.GetOp() != pg_query.SetOperation_SETOP_NONE:
		return newError(CodeUnsupportedStatement, "set operations are not supported", sel.GetOp().String())
	case sel.GetWithClause() != nil:
		return newError(CodeUnsupportedStatement, "WITH clauses are not supported", "")
	case len(sel.GetValuesLists()) > 0:
		return newError(CodeUnsupportedStatement, "VALUES lists are not supported", "")
	case len(sel.GetGroupClause()) > 0:
		return newError(CodeUnsupportedStatement, "GROUP BY is not supported", "")
	case sel.GetHavingClause() != nil:
		return newError(CodeUnsupportedStatement, "HAVING is not supported", "")
	case len(sel.GetDistinctClause()) > 0:
		return newError(CodeUnsupportedStatement, "DISTINCT is not supported", "")
	case len(sel.GetWindowClause()) > 0:
		return newError(CodeUnsupportedStatement, "window clauses are not supported", "")
	}
	return nil
}

// describeStatement names a non-SELECT statement kind for diagnostics.
func describeStatement(node *pg_query.Node) string {
	switch {
	case node.GetInsertStmt() != nil:
		return "INSERT"
	case node.GetUpdateStmt() != nil:
		return "UPDATE"
	case node.GetDeleteStmt() != nil:
		return "DELETE"
	case node.GetCreateStmt() != nil:
		return "CREATE TABLE"
	case node.GetDropStmt() != nil:
		return "DROP"
	case node.GetAlterTableStmt() != nil:
		return "ALTER TABLE"
	case node.GetTransactionStmt() != nil:
		return "transaction control"
	case node.GetExplainStmt() != nil:
		return "EXPLAIN"
	default:
		return fmt.Sprintf("%T", node.GetNode())
	}
}
