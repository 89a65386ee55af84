package pressgen

import "fmt"

// NotFoundError reports a missing source path, either the input directory or
// the assets directory. The build aborts immediately; there is nothing to
// publish from a directory that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("directory %q does not exist", e.Path)
}

// ParseError reports a Markdown file whose front-matter is missing or
// malformed. It always names the offending file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a failed write to the output directory. Writes are fatal
// and abort the run: regenerating from scratch is cheap and idempotent, so
// there is no partial-success mode.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
