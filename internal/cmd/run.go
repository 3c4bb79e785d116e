// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/aibor/vmlaunch/internal/exitcode"
	"github.com/aibor/vmlaunch/internal/launch"
	"github.com/aibor/vmlaunch/internal/proc"
	"github.com/aibor/vmlaunch/internal/swtpm"
	"github.com/aibor/vmlaunch/internal/sys"
	"golang.org/x/term"
)

// emulatorExitTimeout is the time the TPM emulator has to terminate after
// QEMU is gone.
const emulatorExitTimeout = 2 * time.Second

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func loadFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return flags, nil
}

// warnHostCapabilities logs issues of the host that are likely to make the
// machine unusable. They are not fatal, as QEMU reports them itself.
func warnHostCapabilities(stdin io.Reader) {
	if !sys.AMD64.KVMAvailable() {
		slog.Warn("KVM not available, QEMU fails to start with KVM acceleration",
			slog.String("device", sys.KVMDevice))
	}

	file, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		slog.Warn("Stdin is not a terminal, serial console is not interactive")
	}
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	spec := flags.launchSpec()

	if !spec.DryRun {
		warnHostCapabilities(cfg.Stdin)
	}

	launcher := &launch.Launcher{
		Command: exec.CommandContext,
		IO:      proc.IO(cfg),
		Logger:  slog.Default(),
	}

	err := launcher.Run(ctx, spec)

	waitErr := launcher.WaitBackground(emulatorExitTimeout)
	if waitErr != nil {
		slog.Warn("TPM emulator still running", slog.Any("error", waitErr))
	}

	return err
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	exitCode, isExitCodeErr := exitcode.From(err)

	// Do not print the error in case QEMU ran and just exited with a
	// non-zero exit code. QEMU prints its errors itself.
	if err != nil && !isExitCodeErr {
		slog.Error(err.Error())

		if errors.Is(err, swtpm.ErrNotReady) || errors.Is(err, swtpm.ErrTerminated) {
			slog.Warn("Run with -debug to see the TPM emulator output")
		}
	}

	return exitCode
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags, err := loadFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug)

	err = run(ctx, flags, cfg)

	return handleRunError(err)
}
