package protoparser

import "fmt"

// FileReadError is returned when a .proto file could not be opened or read
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %s", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// InvalidFilenameError is returned by Scanner.Filename when the path does
// not have the .proto extension
type InvalidFilenameError struct {
	Path string
}

func (e *InvalidFilenameError) Error() string {
	return fmt.Sprintf("%s does not end with %s", e.Path, Extension)
}
