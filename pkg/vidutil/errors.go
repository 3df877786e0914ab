package vidutil

import (
	"errors"
	"fmt"
)

var (
	// ErrNotADirectory is returned by ListImages for a path that is not a directory.
	ErrNotADirectory = errors.New("vidutil: not a directory")

	// ErrDecode is returned when a container or image cannot be opened or read.
	ErrDecode = errors.New("vidutil: decode failed")

	// ErrEncode is returned when an output cannot be opened, written or exported.
	ErrEncode = errors.New("vidutil: encode failed")

	// ErrInvalidFrame is returned when a frame does not match the output size.
	ErrInvalidFrame = errors.New("vidutil: invalid frame")

	// ErrMux is returned when the mux invocation fails.
	ErrMux = errors.New("vidutil: mux failed")
)

// OpError records the operation and path that failed.
// errors.Is matches both Kind and the underlying Err.
type OpError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(op, path string, kind, err error) error {
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}
