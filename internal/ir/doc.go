// Package ir defines the internal representation of a translated query.
//
// The IR is the boundary between the SQL front end and the execution
// engine: internal/translate produces it from a parsed statement, and
// internal/engine consumes it to build an execution plan. Nothing in
// this package knows about SQL syntax or about dataframes.
//
// The expression model is a sealed tagged union. Only the types in this
// package implement Expr and Value, which keeps type switches in the
// engine exhaustive.
package ir
