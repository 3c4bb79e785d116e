// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aibor/vmlaunch/internal/exitcode"
	"github.com/aibor/vmlaunch/internal/proc"
	"github.com/aibor/vmlaunch/internal/qemu"
	"github.com/aibor/vmlaunch/internal/swtpm"
)

// DefaultReadyTimeout is the time the TPM emulator has to create its socket.
const DefaultReadyTimeout = 5 * time.Second

// Spec describes a single machine launch.
type Spec struct {
	// Executable is the QEMU system binary.
	Executable string

	// Builder holds the monitor arguments.
	Builder qemu.Builder

	// Emulator is the swtpm binary of the TPM emulator the machine depends
	// on. Its state directory is derived from the work dir and serial number
	// of the Builder. If empty, no state directory is created and no emulator
	// is started.
	Emulator string

	// DryRun only prints the monitor arguments. No process is started.
	DryRun bool

	// ReadyTimeout is the time the emulator has to create its socket. Zero
	// means [DefaultReadyTimeout].
	ReadyTimeout time.Duration
}

// Launcher runs [Spec]s.
//
// All processes are created with Command. The monitor is attached to IO.
type Launcher struct {
	Command proc.CommandFunc
	IO      proc.IO
	Logger  *slog.Logger

	background []*proc.Process
}

// Run runs the launch sequence for the given [Spec] in fixed order:
//
//  1. The TPM state directory is created, if missing.
//  2. Unless in dry run mode, the TPM emulator is started in the background
//     and Run waits until its socket is ready.
//  3. The monitor arguments are printed, one flag per line.
//  4. Unless in dry run mode, the monitor is run in the foreground.
//  5. The final status is logged.
//
// A non-zero exit of the monitor is returned as [exitcode.Error].
func (l *Launcher) Run(ctx context.Context, spec Spec) error {
	if spec.Executable == "" {
		return ErrNoExecutable
	}

	if spec.Emulator != "" {
		err := l.startEmulator(ctx, spec)
		if err != nil {
			return err
		}
	}

	err := l.printArguments(spec.Builder.Arguments())
	if err != nil {
		return fmt.Errorf("print arguments: %w", err)
	}

	if spec.DryRun {
		l.logger().Info("Dry run, monitor not started",
			slog.String("executable", spec.Executable))

		return nil
	}

	return l.runMonitor(ctx, spec)
}

func (l *Launcher) startEmulator(ctx context.Context, spec Spec) error {
	emulator := &swtpm.Emulator{
		Executable: spec.Emulator,
		WorkDir:    spec.Builder.WorkDir(),
		Serial:     spec.Builder.Serial(),
	}

	stateDir, err := swtpm.EnsureStateDir(emulator.WorkDir, emulator.Serial)
	if err != nil {
		return fmt.Errorf("tpm emulator: %w", err)
	}

	l.logger().Debug("TPM state directory ready",
		slog.String("path", stateDir))

	if spec.DryRun {
		return nil
	}

	process, err := emulator.Start(ctx, l.Command, l.logger())
	if err != nil {
		return err
	}

	l.background = append(l.background, process)

	timeout := spec.ReadyTimeout
	if timeout == 0 {
		timeout = DefaultReadyTimeout
	}

	socketPath := emulator.SocketPath()

	err = swtpm.WaitReady(ctx, socketPath, process.Done(), timeout)
	if err != nil {
		return fmt.Errorf("tpm emulator: %w", err)
	}

	l.logger().Info("TPM emulator ready",
		slog.Int("pid", process.PID()),
		slog.String("socket", socketPath),
	)

	return nil
}

func (l *Launcher) printArguments(args []qemu.Argument) error {
	for _, arg := range args {
		_, err := fmt.Fprintln(l.IO.Stdout, arg.String())
		if err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func (l *Launcher) runMonitor(ctx context.Context, spec Spec) error {
	cmd := l.Command(ctx, spec.Executable, spec.Builder.Finalize()...)

	status, err := proc.Foreground(cmd, l.IO)
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}

	switch status.State {
	case proc.StateSignaled:
		l.logger().Warn("Monitor terminated by signal",
			slog.Any("status", status))

		return exitcode.Signaled(status.Signal)
	case proc.StateExited:
		if status.Code != 0 {
			l.logger().Warn("Monitor exited with non-zero exit code",
				slog.Any("status", status))

			return exitcode.Error(status.Code)
		}
	}

	l.logger().Info("Monitor exited", slog.Any("status", status))

	return nil
}

// WaitBackground waits for all background processes started by the
// [Launcher] to terminate.
//
// It returns [proc.ErrWaitTimeout] if any of them is still running after the
// given timeout. The timeout applies to each process.
func (l *Launcher) WaitBackground(timeout time.Duration) error {
	var errs []error

	for _, process := range l.background {
		_, err := process.Wait(timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w",
				process.Name(), process.PID(), err))
		}
	}

	return errors.Join(errs...)
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}

	return l.Logger
}
