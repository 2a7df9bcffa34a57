package tasks

import (
	"fmt"
	"strings"
)

type UnknownTaskError struct {
	Task  string
	Known []string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task `%s`, must be one of {%s}", e.Task,
		strings.Join(e.Known, ", "))
}

// DataFormatError reports a corpus file that is missing or has a row that
// does not fit the task's layout. Line is 1-based and 0 when the problem
// is with the file as a whole.
type DataFormatError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, msg)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}
