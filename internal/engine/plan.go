package engine

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/tabq/tabq/internal/ir"
)

// Plan is a lazy pipeline over one loaded frame. Steps are recorded
// in call order and run by Collect; a Plan is built and collected
// once, for one query.
type Plan struct {
	df    dataframe.DataFrame
	steps []step
}

type step struct {
	op    string
	apply func(dataframe.DataFrame) (dataframe.DataFrame, error)
}

// NewPlan starts a pipeline over df.
func NewPlan(df dataframe.DataFrame) *Plan {
	return &Plan{df: df}
}

// Filter keeps rows for which cond evaluates to true. Rows where the
// condition is null are dropped; a non-boolean condition is an
// execution error. A nil cond records nothing.
func (p *Plan) Filter(cond ir.Expr) *Plan {
	if cond == nil {
		return p
	}
	p.steps = append(p.steps, step{op: "filter", apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return filterRows(df, cond)
	}})
	return p
}

// Sort orders rows by the given keys with a single stable multi-key
// comparator: later keys only break ties left by earlier ones. Nulls
// sort last in either direction.
func (p *Plan) Sort(keys []ir.SortKey) *Plan {
	if len(keys) == 0 {
		return p
	}
	p.steps = append(p.steps, step{op: "sort", apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return sortRows(df, keys)
	}})
	return p
}

// Slice keeps limit rows starting at offset. A nil offset means 0, a
// nil limit means unbounded; when both are nil nothing is recorded.
func (p *Plan) Slice(offset, limit *int64) *Plan {
	if offset == nil && limit == nil {
		return p
	}
	p.steps = append(p.steps, step{op: "slice", apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return sliceRows(df, offset, limit), nil
	}})
	return p
}

// Project reduces the frame to the selection, in selection order.
// Wildcards pass all columns through, aliases rename.
func (p *Plan) Project(selection []ir.Expr) *Plan {
	p.steps = append(p.steps, step{op: "project", apply: func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return projectColumns(df, selection)
	}})
	return p
}

// Collect runs the recorded steps in order and materializes the
// result.
func (p *Plan) Collect() (*Dataset, error) {
	df := p.df
	var err error
	for _, s := range p.steps {
		df, err = s.apply(df)
		if err != nil {
			return nil, err
		}
		if df.Err != nil {
			return nil, &Error{Op: s.op, Message: "dataframe operation failed", Err: df.Err}
		}
	}
	return &Dataset{df: df}, nil
}

func filterRows(df dataframe.DataFrame, cond ir.Expr) (dataframe.DataFrame, error) {
	ev := newEvaluator(df)
	nrow := df.Nrow()
	keep := make([]int, 0, nrow)

	for row := 0; row < nrow; row++ {
		v, err := ev.eval(cond, row)
		if err != nil {
			return df, err
		}
		switch v.kind {
		case kindBool:
			if v.b {
				keep = append(keep, row)
			}
		case kindNull:
			// Unknown comparisons exclude the row.
		default:
			return df, execErrorf("filter",
				"condition %s evaluates to %s, want boolean", cond, v.kind)
		}
	}

	if len(keep) == nrow {
		return df, nil
	}
	return df.Subset(keep), nil
}

func sortRows(df dataframe.DataFrame, keys []ir.SortKey) (dataframe.DataFrame, error) {
	columns := make(map[string]series.Series, len(keys))
	names := df.Names()
	for _, key := range keys {
		found := false
		for _, name := range names {
			if name == key.Column {
				found = true
				break
			}
		}
		if !found {
			return df, execErrorf("sort", "unknown column %q", key.Column)
		}
		columns[key.Column] = df.Col(key.Column)
	}

	indexes := make([]int, df.Nrow())
	for i := range indexes {
		indexes[i] = i
	}

	sort.SliceStable(indexes, func(i, j int) bool {
		a, b := indexes[i], indexes[j]
		for _, key := range keys {
			col := columns[key.Column]
			ea, eb := col.Elem(a), col.Elem(b)
			switch {
			case ea.IsNA() && eb.IsNA():
				continue
			case ea.IsNA():
				return false
			case eb.IsNA():
				return true
			}
			cmp := compareElements(col.Type(), ea, eb)
			if cmp == 0 {
				continue
			}
			if key.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	return df.Subset(indexes), nil
}

func compareElements(t series.Type, a, b series.Element) int {
	switch t {
	case series.Int, series.Float:
		fa, fb := a.Float(), b.Float()
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case series.Bool:
		ba, errA := a.Bool()
		bb, errB := b.Bool()
		if errA != nil || errB != nil || ba == bb {
			return 0
		}
		if !ba {
			return -1
		}
		return 1
	default:
		sa, sb := a.String(), b.String()
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	}
}

func sliceRows(df dataframe.DataFrame, offset, limit *int64) dataframe.DataFrame {
	nrow := int64(df.Nrow())

	start := int64(0)
	if offset != nil {
		start = min(max(*offset, 0), nrow)
	}
	end := nrow
	if limit != nil {
		end = start + min(max(*limit, 0), nrow-start)
	}

	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, int(i))
	}
	return df.Subset(indexes)
}

func projectColumns(df dataframe.DataFrame, selection []ir.Expr) (dataframe.DataFrame, error) {
	if len(selection) == 0 {
		return df, execErrorf("project", "empty selection")
	}

	type outputColumn struct {
		src string
		out string
	}
	var columns []outputColumn

	for _, sel := range selection {
		switch e := sel.(type) {
		case ir.Wildcard:
			for _, name := range df.Names() {
				columns = append(columns, outputColumn{src: name, out: name})
			}
		case ir.Column:
			columns = append(columns, outputColumn{src: e.Name, out: e.Name})
		case ir.Alias:
			inner, ok := e.Inner.(ir.Column)
			if !ok {
				return df, execErrorf("project", "alias %s must wrap a column", e)
			}
			columns = append(columns, outputColumn{src: inner.Name, out: e.Name})
		default:
			return df, execErrorf("project", "selection entry %s must be a column, alias, or wildcard", sel)
		}
	}

	names := df.Names()
	exists := make(map[string]bool, len(names))
	for _, name := range names {
		exists[name] = true
	}

	srcs := make([]string, len(columns))
	for i, c := range columns {
		if !exists[c.src] {
			return df, execErrorf("project", "unknown column %q", c.src)
		}
		srcs[i] = c.src
	}

	out := df.Select(srcs)
	if out.Err != nil {
		return df, &Error{Op: "project", Message: "select columns", Err: out.Err}
	}
	for _, c := range columns {
		if c.out != c.src {
			out = out.Rename(c.out, c.src)
			if out.Err != nil {
				return df, &Error{Op: "project", Message: "rename column " + c.src, Err: out.Err}
			}
		}
	}
	return out, nil
}
