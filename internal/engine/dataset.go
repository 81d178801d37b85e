package engine

import (
	"bytes"

	"github.com/go-gota/gota/dataframe"
)

// Dataset is a materialized query result: ordered named columns, one
// row per kept input row.
type Dataset struct {
	df dataframe.DataFrame
}

// Nrow returns the number of result rows.
func (d *Dataset) Nrow() int {
	return d.df.Nrow()
}

// Names returns the output column names in projection order.
func (d *Dataset) Names() []string {
	return d.df.Names()
}

// Records returns the result as string records, header first.
func (d *Dataset) Records() [][]string {
	return d.df.Records()
}

// Types returns the detected type name of each column, aligned with
// Names.
func (d *Dataset) Types() []string {
	types := d.df.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// ToCSV serializes the result to CSV with a header row.
func (d *Dataset) ToCSV() (string, error) {
	var buf bytes.Buffer
	if err := d.df.WriteCSV(&buf); err != nil {
		return "", &Error{Op: "serialize", Message: "write csv", Err: err}
	}
	return buf.String(), nil
}

// String renders the result as an aligned table for terminal display.
func (d *Dataset) String() string {
	return d.df.String()
}

// Frame exposes the underlying dataframe.
func (d *Dataset) Frame() dataframe.DataFrame {
	return d.df
}
