package ir

import (
	"fmt"
	"strings"
)

// SortKey is one ORDER BY entry: a column name and a direction.
type SortKey struct {
	Column     string
	Descending bool
}

// Query is the validated internal form of one SELECT statement.
//
// It is constructed once by internal/translate, never mutated, and
// consumed exactly once by the engine to build an execution plan.
// Source is an owned copy of the table name token, so a Query outlives
// the AST it was translated from.
type Query struct {
	// Selection is the ordered projection list. Never empty after a
	// successful translation; a wildcard counts as one entry.
	Selection []Expr

	// Condition is the WHERE expression, nil when the statement has
	// no WHERE clause.
	Condition Expr

	// Source is the table name from the FROM clause. It is either a
	// scheme-prefixed location (http://..., file://...) or an alias
	// resolved by the caller.
	Source string

	// OrderBy lists sort keys in statement order. Empty preserves
	// input order.
	OrderBy []SortKey

	// Offset is the number of leading rows to skip. Nil means 0.
	Offset *int64

	// Limit caps the number of rows returned. Nil means unbounded.
	Limit *int64
}

// String renders the query in a SQL-ish single line for logs and
// error messages.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(joinExprs(q.Selection))
	b.WriteString(" FROM ")
	b.WriteString(q.Source)
	if q.Condition != nil {
		b.WriteString(" WHERE ")
		b.WriteString(q.Condition.String())
	}
	if len(q.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		keys := make([]string, len(q.OrderBy))
		for i, k := range q.OrderBy {
			dir := "ASC"
			if k.Descending {
				dir = "DESC"
			}
			keys[i] = k.Column + " " + dir
		}
		b.WriteString(strings.Join(keys, ", "))
	}
	if q.Limit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *q.Limit)
	}
	if q.Offset != nil {
		fmt.Fprintf(&b, " OFFSET %d", *q.Offset)
	}
	return b.String()
}
