package translate

import (
	"strconv"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/tabq/tabq/internal/ir"
)

// SQL parses one SQL string and translates it. The input must hold
// exactly one statement.
func SQL(sql string) (*ir.Query, error) {
	result, err := pg_query.Parse(sql)
	if err != nil {
		return nil, wrapError(CodeParse, "invalid SQL", err)
	}

	stmts := result.GetStmts()
	if len(stmts) != 1 {
		return nil, newError(CodeMultiStatement,
			"query must hold exactly one statement", strconv.Itoa(len(stmts))+" statements")
	}

	return Statement(stmts[0])
}
