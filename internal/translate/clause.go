package translate

import (
	"strconv"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/tabq/tabq/internal/ir"
)

// translateProjection converts the target list into the ordered
// selection. Each item must be a bare column, an aliased column, or a
// (possibly qualified) wildcard.
func translateProjection(targets []*pg_query.Node) ([]ir.Expr, error) {
	if len(targets) == 0 {
		return nil, newError(CodeUnsupportedProjection, "empty projection list", "")
	}

	selection := make([]ir.Expr, 0, len(targets))
	for _, target := range targets {
		item, err := translateProjectionItem(target.GetResTarget())
		if err != nil {
			return nil, err
		}
		selection = append(selection, item)
	}
	return selection, nil
}

func translateProjectionItem(target *pg_query.ResTarget) (ir.Expr, error) {
	if target == nil || target.GetVal() == nil {
		return nil, newError(CodeUnsupportedProjection, "malformed projection item", "")
	}

	expr, err := translateExpr(target.GetVal())
	if err != nil {
		return nil, newError(CodeUnsupportedProjection, "unsupported projection item", describeNode(target.GetVal()))
	}

	switch e := expr.(type) {
	case ir.Column:
		if alias := target.GetName(); alias != "" {
			return ir.Alias{Inner: e, Name: alias}, nil
		}
		return e, nil
	case ir.Wildcard:
		if target.GetName() != "" {
			return nil, newError(CodeUnsupportedProjection, "wildcard cannot be aliased", target.GetName())
		}
		return e, nil
	default:
		return nil, newError(CodeUnsupportedProjection, "projection must be a column or wildcard", describeNode(target.GetVal()))
	}
}

// translateSource resolves the FROM clause to a single table name.
// Exactly one plain table reference is required; joins and derived
// tables are rejected. For a qualified name only the first identifier
// segment is used.
func translateSource(from []*pg_query.Node) (string, error) {
	if len(from) != 1 {
		return "", newError(CodeMultipleSources,
			"query must read exactly one source", strconv.Itoa(len(from))+" sources")
	}

	entry := from[0]
	if entry.GetJoinExpr() != nil {
		return "", newError(CodeJoinUnsupported, "joins are not supported", "")
	}
	rv := entry.GetRangeVar()
	if rv == nil {
		return "", newError(CodeUnsupportedStatement, "FROM clause must name a plain table", describeNode(entry))
	}

	switch {
	case rv.GetCatalogname() != "":
		return rv.GetCatalogname(), nil
	case rv.GetSchemaname() != "":
		return rv.GetSchemaname(), nil
	default:
		return rv.GetRelname(), nil
	}
}

// translateOrderBy converts the sort clause. Only bare column sort
// keys are supported; the default direction is ascending.
func translateOrderBy(sortClause []*pg_query.Node) ([]ir.SortKey, error) {
	if len(sortClause) == 0 {
		return nil, nil
	}

	keys := make([]ir.SortKey, 0, len(sortClause))
	for _, node := range sortClause {
		sortBy := node.GetSortBy()
		if sortBy == nil {
			return nil, newError(CodeUnsupportedOrderBy, "malformed ORDER BY item", describeNode(node))
		}

		expr, err := translateExpr(sortBy.GetNode())
		if err != nil {
			return nil, newError(CodeUnsupportedOrderBy, "unsupported sort key", describeNode(sortBy.GetNode()))
		}
		col, ok := expr.(ir.Column)
		if !ok {
			return nil, newError(CodeUnsupportedOrderBy, "sort key must be a bare column", describeNode(sortBy.GetNode()))
		}

		keys = append(keys, ir.SortKey{
			Column:     col.Name,
			Descending: sortBy.GetSortbyDir() == pg_query.SortByDir_SORTBY_DESC,
		})
	}
	return keys, nil
}

// translateOffset extracts the OFFSET row count. The policy here is
// deliberately lenient: any shape that is not a cleanly parseable
// non-negative numeric constant yields nil (meaning 0) instead of an
// error, because a malformed offset should not abort an otherwise
// valid query. See mapLiteral for the strict counterpart and DESIGN.md
// for why the asymmetry is kept.
func translateOffset(node *pg_query.Node) *int64 {
	return lenientCount(node)
}

// translateLimit extracts the LIMIT row count under the same lenient
// policy; nil means unbounded.
func translateLimit(node *pg_query.Node) *int64 {
	return lenientCount(node)
}

func lenientCount(node *pg_query.Node) *int64 {
	if node == nil {
		return nil
	}
	c := node.GetAConst()
	if c == nil {
		return nil
	}

	var n int64
	switch {
	case c.GetIval() != nil:
		n = int64(c.GetIval().GetIval())
	case c.GetFval() != nil:
		f, err := strconv.ParseFloat(c.GetFval().GetFval(), 64)
		if err != nil {
			return nil
		}
		n = int64(f)
	default:
		return nil
	}

	if n < 0 {
		return nil
	}
	return &n
}
