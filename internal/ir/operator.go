package ir

// Operator is the closed set of binary operators the engine evaluates.
// Translation maps SQL operator tokens onto this set and rejects
// everything else; there is no default.
type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
	OpGt
	OpLt
	OpGtEq
	OpLtEq
	OpEq
	OpNotEq
	OpAnd
	OpOr
)

var operatorNames = map[Operator]string{
	OpPlus:     "+",
	OpMinus:    "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpModulo:   "%",
	OpGt:       ">",
	OpLt:       "<",
	OpGtEq:     ">=",
	OpLtEq:     "<=",
	OpEq:       "=",
	OpNotEq:    "<>",
	OpAnd:      "AND",
	OpOr:       "OR",
}

// String returns the SQL spelling of the operator.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "?"
}

// Arithmetic reports whether the operator produces a numeric result.
func (op Operator) Arithmetic() bool {
	switch op {
	case OpPlus, OpMinus, OpMultiply, OpDivide, OpModulo:
		return true
	}
	return false
}

// Comparison reports whether the operator produces a boolean from two
// comparable operands.
func (op Operator) Comparison() bool {
	switch op {
	case OpGt, OpLt, OpGtEq, OpLtEq, OpEq, OpNotEq:
		return true
	}
	return false
}

// Logical reports whether the operator combines two booleans.
func (op Operator) Logical() bool {
	return op == OpAnd || op == OpOr
}
