// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// State is the lifecycle state of a process.
type State int

const (
	// StateRunning means the process has not terminated yet.
	StateRunning State = iota
	// StateExited means the process terminated with an exit code.
	StateExited
	// StateSignaled means the process was terminated by a signal.
	StateSignaled
	// StateFailed means the process could not be waited for.
	StateFailed
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateSignaled:
		return "signaled"
	case StateFailed:
		return "failed"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// Status is the termination status of a process.
type Status struct {
	State  State
	Code   int
	Signal syscall.Signal
	Err    error
}

// Success returns true if the process exited with code 0.
func (s Status) Success() bool {
	return s.State == StateExited && s.Code == 0
}

// LogValue implements [slog.LogValuer].
func (s Status) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("state", s.State.String()),
	}

	switch s.State {
	case StateExited:
		attrs = append(attrs, slog.Int("code", s.Code))
	case StateSignaled:
		attrs = append(attrs, slog.String("signal", s.Signal.String()))
	case StateFailed:
		attrs = append(attrs, slog.Any("error", s.Err))
	case StateRunning:
	}

	return slog.GroupValue(attrs...)
}

// statusFrom creates the [Status] for the given process state and the error
// returned by [exec.Cmd.Wait].
func statusFrom(state *os.ProcessState, waitErr error) Status {
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return Status{State: StateFailed, Code: -1, Err: waitErr}
	}

	if state == nil {
		return Status{State: StateFailed, Code: -1, Err: waitErr}
	}

	waitStatus, ok := state.Sys().(syscall.WaitStatus)
	if ok && waitStatus.Signaled() {
		return Status{
			State:  StateSignaled,
			Code:   -1,
			Signal: waitStatus.Signal(),
		}
	}

	return Status{State: StateExited, Code: state.ExitCode()}
}
