// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrWaitTimeout is returned if a background process did not terminate in
// the allowed time.
var ErrWaitTimeout = errors.New("process wait timed out")

// StartError is returned if a program could not be spawned.
type StartError struct {
	Name string
	Args []string
	Dir  string
	Err  error
}

func newStartError(cmd *exec.Cmd, err error) *StartError {
	startErr := &StartError{
		Name: cmd.Path,
		Dir:  cmd.Dir,
		Err:  err,
	}

	if len(cmd.Args) > 0 {
		startErr.Name = cmd.Args[0]
		startErr.Args = cmd.Args[1:]
	}

	return startErr
}

// Error implements the [error] interface.
func (e *StartError) Error() string {
	msg := "start " + e.Name
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}

	if e.Dir != "" {
		msg += " (in " + e.Dir + ")"
	}

	return msg + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*StartError) Is(other error) bool {
	_, ok := other.(*StartError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *StartError) Unwrap() error {
	return e.Err
}
