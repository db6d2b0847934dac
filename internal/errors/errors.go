// Package errors combines stdlib error matching with pkg/errors stack traces.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// maxLoggedFrames bounds the stack attached to a log record.
const maxLoggedFrames = 8

// facadeFile is this file, where pkg/errors records its first frame.
var facadeFile = func() string {
	_, file, _, _ := runtime.Caller(0)

	return file
}()

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// AsType returns the first error in err's tree of type T.
func AsType[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)

	return target, ok
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap returns an error annotating err with a stack trace and the supplied message.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf returns an error annotating err with a stack trace and the format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack annotates err with a stack trace at the point WithStack was called.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf formats according to a format specifier and returns the string as a
// value that satisfies error with stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Attr renders err for slog as an "error" group with its message and,
// when err carries one, the innermost recorded stack.
func Attr(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	frames := Stack(err)
	if len(frames) == 0 {
		return slog.String("error", err.Error())
	}

	return slog.Group("error",
		slog.String("message", err.Error()),
		slog.String("stack", strings.Join(frames, " < ")),
	)
}

// Stack returns "function file:line" entries of the deepest stack trace in err's chain.
func Stack(err error) []string {
	var deepest stackTracer
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st
		}
	}
	if deepest == nil {
		return nil
	}

	trace := deepest.StackTrace()
	for len(trace) > 0 && frameFile(trace[0]) == facadeFile {
		trace = trace[1:]
	}
	if len(trace) > maxLoggedFrames {
		trace = trace[:maxLoggedFrames]
	}

	frames := make([]string, 0, len(trace))
	for _, f := range trace {
		frames = append(frames, fmt.Sprintf("%n %s:%d", f, f, f))
	}

	return frames
}

func frameFile(f pkgerrors.Frame) string {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	file, _ := fn.FileLine(pc)

	return file
}
