// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package swtpm

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aibor/vmlaunch/internal/proc"
)

// DefaultExecutable is the swtpm binary looked up in PATH.
const DefaultExecutable = "swtpm"

// Emulator describes the TPM emulator of a single machine.
type Emulator struct {
	// Executable is the swtpm binary.
	Executable string

	// WorkDir is the directory the state directories are located in.
	WorkDir string

	// Serial is the serial number of the machine.
	Serial string
}

// StateDir returns the state directory of the emulator.
func (e *Emulator) StateDir() string {
	return StateDir(e.WorkDir, e.Serial)
}

// SocketPath returns the control socket path of the emulator.
func (e *Emulator) SocketPath() string {
	return SocketPath(e.WorkDir, e.Serial)
}

// Start starts the emulator in the background using the given command
// function. The state directory must exist already, see [EnsureStateDir].
//
// A socket left behind by an earlier emulator is removed before the new one
// is spawned, so only the new emulator can make [WaitReady] succeed.
//
// The emulator output is logged at debug level. The returned process handle
// may be used to observe its termination. There is no explicit shutdown. The
// emulator terminates by itself once QEMU disconnects.
func (e *Emulator) Start(
	ctx context.Context,
	command proc.CommandFunc,
	logger *slog.Logger,
) (*proc.Process, error) {
	err := removeStaleSocket(e.SocketPath())
	if err != nil {
		return nil, fmt.Errorf("tpm emulator: %w", err)
	}

	cmd := command(ctx, e.Executable, Args(e.StateDir())...)
	cmd.SysProcAttr = sysProcAttr()

	process, err := proc.Background(cmd, logger)
	if err != nil {
		return nil, fmt.Errorf("tpm emulator: %w", err)
	}

	return process, nil
}

func removeStaleSocket(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	return nil
}
