package raster

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Error kinds returned by Load and Save. Match them with errors.Is.
var (
	ErrNotFound = errors.New("image not found")
	ErrDecode   = errors.New("cannot decode image")
	ErrWrite    = errors.New("cannot write image")
)

// Error describes a failed load or save of a single image file.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// pathCause strips the path from *os.PathError, since Error already carries it.
func pathCause(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

// singleLine renders a multierror on one line for CLI output.
func singleLine(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

func newMultiError() *multierror.Error {
	return &multierror.Error{ErrorFormat: singleLine}
}
