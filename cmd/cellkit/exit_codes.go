package main

import (
	stderrors "errors"

	"github.com/odvcencio/cellkit/pkg/errors"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitConfig  = 3
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error { return e.err }

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return exitFailure
	}
	return e.code
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

// exitCodeForError maps err to a process exit code. Config errors that were
// not tagged explicitly still exit with exitConfig.
func exitCodeForError(err error) int {
	if err == nil {
		return exitOK
	}
	var coded exitCoder
	if stderrors.As(err, &coded) {
		return coded.ExitCode()
	}
	for _, code := range []errors.ErrorCode{errors.ErrCodeConfigLoad, errors.ErrCodeConfigParse, errors.ErrCodeConfigInvalid} {
		if errors.IsCode(err, code) {
			return exitConfig
		}
	}
	return exitFailure
}
