// Package engine executes a translated query against a loaded
// dataframe.
//
// A Plan is lazy: Filter, Sort, Slice, and Project record steps, and
// nothing touches the frame until Collect runs them in order and
// materializes a Dataset. Ordering by several keys uses one stable
// multi-key comparator rather than successive single-key sorts, so
// later keys break ties left by earlier ones regardless of the
// underlying library's sort behavior.
//
// The engine evaluates ir expression trees row by row: numerics as
// float64, booleans, and strings, with SQL-style null propagation
// (any operand that is null makes the result null, and a null filter
// condition drops the row).
package engine
