package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tabq/tabq/internal/engine"
)

// Process exit codes. Query failures (anything between the SQL text
// and the materialized result) exit 1; problems with the invocation
// itself exit 2.
const (
	ExitSuccess      = 0
	ExitQueryError   = 1 // translate, fetch, load, or execute failed
	ExitCommandError = 2 // bad flags, unreadable config, unwritable output
)

// ExitError pairs a command failure with the exit code the process
// should report for it.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError builds an ExitError from a code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code and context to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode reports the exit code for err. An error with no
// ExitError in its chain counts as a query failure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitQueryError
}

// writeDataset renders a result in the configured format. An empty
// outputPath writes to w; otherwise the rendering goes to the named
// file and w gets a short confirmation.
func writeDataset(w io.Writer, ds *engine.Dataset, format, outputPath string) error {
	var rendered string
	switch format {
	case "table":
		rendered = ds.String() + "\n"
	default:
		csv, err := ds.ToCSV()
		if err != nil {
			return WrapExitError(ExitQueryError, "serialize result", err)
		}
		rendered = csv
	}

	if outputPath == "" {
		_, err := io.WriteString(w, rendered)
		return err
	}

	if err := os.WriteFile(outputPath, []byte(rendered), 0644); err != nil {
		return WrapExitError(ExitCommandError, "write output file", err)
	}
	fmt.Fprintf(w, "Wrote %d row(s) to %s\n", ds.Nrow(), outputPath)
	return nil
}
