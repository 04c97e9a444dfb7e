package protocode

import (
	"fmt"
	"strings"
)

type ScanError struct {
	File string
	Err  error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Err)
}

func (e ScanError) Unwrap() error {
	return e.Err
}

// ScanErrors collects the files Include could not scan
type ScanErrors struct {
	Errors []ScanError
}

func (e ScanErrors) Error() string {
	var msg strings.Builder
	msg.WriteString("protocode scan error:\n\n")
	for _, err := range e.Errors {
		msg.WriteString(err.Error() + "\n")
	}
	return msg.String()
}

func (e ScanErrors) Unwrap() []error {
	result := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		result[i] = err
	}
	return result
}
