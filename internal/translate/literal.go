package translate

import (
	"strconv"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/tabq/tabq/internal/ir"
)

// mapLiteral maps a SQL constant to an IR value.
//
// All numerics normalize to float64. A numeric token that fails to
// parse is a hard failure here, unlike the lenient OFFSET/LIMIT
// handling in clause.go: a malformed literal inside WHERE or a
// projection would silently change query semantics if defaulted.
func mapLiteral(c *pg_query.A_Const) (ir.Value, error) {
	switch {
	case c.GetIsnull():
		return ir.Null{}, nil
	case c.GetBoolval() != nil:
		return ir.Bool(c.GetBoolval().GetBoolval()), nil
	case c.GetIval() != nil:
		return ir.Float(c.GetIval().GetIval()), nil
	case c.GetFval() != nil:
		text := c.GetFval().GetFval()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, newError(CodeUnsupportedLiteral, "malformed numeric literal", text)
		}
		return ir.Float(f), nil
	case c.GetSval() != nil:
		return nil, newError(CodeUnsupportedLiteral, "string literals are not supported", c.GetSval().GetSval())
	default:
		return nil, newError(CodeUnsupportedLiteral, "unsupported literal kind", describeConst(c))
	}
}

// describeConst renders a constant for diagnostics.
func describeConst(c *pg_query.A_Const) string {
	switch {
	case c.GetIval() != nil:
		return strconv.FormatInt(int64(c.GetIval().GetIval()), 10)
	case c.GetFval() != nil:
		return c.GetFval().GetFval()
	case c.GetSval() != nil:
		return "'" + c.GetSval().GetSval() + "'"
	case c.GetBoolval() != nil:
		if c.GetBoolval().GetBoolval() {
			return "true"
		}
		return "false"
	case c.GetIsnull():
		return "NULL"
	default:
		return c.String()
	}
}
