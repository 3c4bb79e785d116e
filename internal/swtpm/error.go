// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package swtpm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned if the emulator socket did not show up in time.
	ErrNotReady = errors.New("emulator socket not ready")

	// ErrTerminated is returned if the emulator terminated before its socket
	// was ready.
	ErrTerminated = errors.New("emulator terminated")
)

// StateDirError is returned if the state directory can not be created.
type StateDirError struct {
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *StateDirError) Error() string {
	return fmt.Sprintf("state dir %s: %v", e.Path, e.Err)
}

// Is implements the [errors.Is] interface.
func (*StateDirError) Is(other error) bool {
	_, ok := other.(*StateDirError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *StateDirError) Unwrap() error {
	return e.Err
}
