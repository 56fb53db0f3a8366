package sandbox

import (
	"errors"
	"fmt"
)

// Kind classifies sandbox failures.
type Kind int

const (
	KindUnknown Kind = iota
	// KindOutsideSandbox: absolute path, ".." component, or canonical path not under root.
	KindOutsideSandbox
	// KindRootUnavailable: the directory locator could not determine the root.
	KindRootUnavailable
	// KindIOFailure: the OS refused a mkdir, canonicalization, read or write.
	KindIOFailure
)

// Kind sentinels, matched by errors.Is against any *Error of that kind.
var (
	ErrOutsideSandbox  = errors.New("path is outside the application data directory")
	ErrRootUnavailable = errors.New("application data directory is unavailable")
	ErrIOFailure       = errors.New("filesystem operation failed")
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindOutsideSandbox:
		return "outside_sandbox"
	case KindRootUnavailable:
		return "root_unavailable"
	case KindIOFailure:
		return "io_failure"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindOutsideSandbox:
		return ErrOutsideSandbox
	case KindRootUnavailable:
		return ErrRootUnavailable
	case KindIOFailure:
		return ErrIOFailure
	default:
		return nil
	}
}

// Error is a sandbox failure carrying the OS cause, if any.
type Error struct {
	Kind Kind
	Op   string // step that failed
	Path string // path as given by the caller, or the filesystem path involved
	Err  error  // underlying cause; may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, msg, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr.Kind
	}
	return KindUnknown
}

// IsOutsideSandbox reports whether err is a containment rejection.
func IsOutsideSandbox(err error) bool {
	return errors.Is(err, ErrOutsideSandbox)
}

func outside(op, path string) error {
	return &Error{Kind: KindOutsideSandbox, Op: op, Path: path}
}

func unavailable(op, path string, err error) error {
	return &Error{Kind: KindRootUnavailable, Op: op, Path: path, Err: err}
}

// IOFailure wraps an OS error. Operations built on the resolver use it so
// every failure of a sandboxed operation carries a kind.
func IOFailure(op, path string, err error) error {
	return &Error{Kind: KindIOFailure, Op: op, Path: path, Err: err}
}
