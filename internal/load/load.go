// Package load turns raw source text into a dataframe.
//
// The format is detected from the content itself, not from the source
// name: a payload whose first significant byte opens a JSON document
// loads as JSON, everything else loads as CSV. A UTF-8 byte order
// mark, common in CSV exports, is stripped before detection.
package load

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format identifies a detected content format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Error is a terminal load failure.
type Error struct {
	Format  Format
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Format, e.Message, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detect inspects raw content and returns its format. JSON is
// recognized by a leading '[' or '{'; anything else is treated as
// CSV.
func Detect(content string) Format {
	trimmed := strings.TrimLeft(content, " \t\r\n\uFEFF")
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}
	return FormatCSV
}

// Load detects the format of content and parses it into a dataframe
// with ordered named columns.
func Load(content string) (dataframe.DataFrame, error) {
	format := Detect(content)

	if strings.TrimSpace(content) == "" {
		return dataframe.DataFrame{}, &Error{Format: format, Message: "empty content"}
	}

	// Spreadsheet exports often lead with a BOM that would otherwise
	// end up inside the first column name.
	reader := transform.NewReader(
		strings.NewReader(content),
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
	)

	var df dataframe.DataFrame
	switch format {
	case FormatJSON:
		df = dataframe.ReadJSON(reader)
	default:
		df = dataframe.ReadCSV(reader)
	}
	if df.Err != nil {
		return dataframe.DataFrame{}, &Error{Format: format, Message: "parse content", Err: df.Err}
	}
	return df, nil
}
