// Package translate converts a parsed SQL statement into the internal
// query representation.
//
// Parsing itself is delegated to pg_query (PostgreSQL's own parser);
// this package walks the resulting AST and produces an ir.Query, or a
// typed Error naming the first unsupported construct it meets. The
// accepted subset is a single-table SELECT with a flat projection
// list, WHERE, ORDER BY, LIMIT, and OFFSET. Joins, set operations,
// CTEs, grouping, and anything DDL/DML are rejected outright.
//
// Translation is pure: no shared state, no side effects, safe for
// concurrent use. The returned ir.Query owns all of its strings, so
// it does not reference the parser's AST after SQL returns.
package translate
