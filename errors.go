package swiftdaddy

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a failed step.
type ErrorKind string

const (
	KindConfig   ErrorKind = "config"   // malformed site definition
	KindContent  ErrorKind = "content"  // malformed front matter or Markdown
	KindIO       ErrorKind = "io"       // unreadable source or unwritable output
	KindDeploy   ErrorKind = "deploy"   // remote push failed
	KindCanceled ErrorKind = "canceled" // context canceled between steps
)

// Sentinel errors, one per ErrorKind. A *StepError matches the sentinel of
// its kind with errors.Is.
var (
	ErrConfig   = errors.New("configuration error")
	ErrContent  = errors.New("content error")
	ErrIO       = errors.New("i/o error")
	ErrDeploy   = errors.New("deployment error")
	ErrNotFound = errors.New("not found")
)

// StepError reports which step of a publishing run failed.
type StepError struct {
	Step string
	Kind ErrorKind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("swiftdaddy: step %q failed (%s): %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for the error's kind.
func (e *StepError) Is(target error) bool {
	return kindError(e.Kind) == target && target != nil
}

func kindError(k ErrorKind) error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindContent:
		return ErrContent
	case KindIO:
		return ErrIO
	case KindDeploy:
		return ErrDeploy
	}
	return nil
}

// contentError marks err as a content error so that a step declared with a
// different kind still reports it correctly.
func contentError(format string, args ...any) error {
	return &kindedError{kind: KindContent, err: fmt.Errorf(format, args...)}
}

func ioError(format string, args ...any) error {
	return &kindedError{kind: KindIO, err: fmt.Errorf(format, args...)}
}

func configError(format string, args ...any) error {
	return &kindedError{kind: KindConfig, err: fmt.Errorf(format, args...)}
}

type kindedError struct {
	kind ErrorKind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }
func (e *kindedError) Unwrap() error { return e.err }
func (e *kindedError) Is(target error) bool {
	return target != nil && kindError(e.kind) == target
}

// errorKind returns the kind recorded in err's chain, or fallback.
func errorKind(err error, fallback ErrorKind) ErrorKind {
	var k *kindedError
	if errors.As(err, &k) {
		return k.kind
	}
	return fallback
}
