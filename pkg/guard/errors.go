package guard

import (
	"errors"
	"strings"
)

// Kind classifies engine failures.
type Kind int

const (
	KindEnvironmentUnresolved Kind = iota + 1
	KindIO
	KindPreconditionFailed
	KindTargetNotFound
	KindPartialFailure
)

func (k Kind) String() string {
	switch k {
	case KindEnvironmentUnresolved:
		return "environment unresolved"
	case KindIO:
		return "io error"
	case KindPreconditionFailed:
		return "precondition failed"
	case KindTargetNotFound:
		return "target not found"
	case KindPartialFailure:
		return "partial failure"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind, and
// a partial failure also matches the sentinel of the error it wraps.
var (
	ErrEnvironmentUnresolved = errors.New(KindEnvironmentUnresolved.String())
	ErrIO                    = errors.New(KindIO.String())
	ErrPreconditionFailed    = errors.New(KindPreconditionFailed.String())
	ErrTargetNotFound        = errors.New(KindTargetNotFound.String())
	ErrPartialFailure        = errors.New(KindPartialFailure.String())
)

// Error is the structured failure carried by every result record. Msg is the
// line shown to the user; Path and Err carry the context behind it.
type Error struct {
	Kind Kind
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindEnvironmentUnresolved:
		return target == ErrEnvironmentUnresolved
	case KindIO:
		return target == ErrIO
	case KindPreconditionFailed:
		return target == ErrPreconditionFailed
	case KindTargetNotFound:
		return target == ErrTargetNotFound
	case KindPartialFailure:
		return target == ErrPartialFailure
	default:
		return false
	}
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return 0
}

func ioError(path, msg string, cause error) *Error {
	return &Error{Kind: KindIO, Path: path, Msg: msg, Err: cause}
}

func environmentError(cause error) *Error {
	return &Error{Kind: KindEnvironmentUnresolved, Err: cause}
}

// partial marks err as having stopped a sequence after earlier steps changed
// the filesystem. The message of err is kept.
func partial(err error) error {
	if err == nil || KindOf(err) == KindPartialFailure {
		return err
	}
	var path string
	var gerr *Error
	if errors.As(err, &gerr) {
		path = gerr.Path
	}
	return &Error{Kind: KindPartialFailure, Path: path, Err: err}
}

func joinIOErrors(errs []*Error) *Error {
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, 0, len(errs))
	causes := make([]error, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Msg)
		causes = append(causes, e)
	}
	return &Error{Kind: KindIO, Msg: strings.Join(msgs, "; "), Err: errors.Join(causes...)}
}
