// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc

import (
	"context"
	"io"
	"os/exec"
)

// CommandFunc creates an [exec.Cmd] for the given program and arguments. It
// is the single spawn primitive, so callers can replace it in tests.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

var _ CommandFunc = exec.CommandContext

// IO provides the standard streams for a foreground process.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}
