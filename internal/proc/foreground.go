// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc

import (
	"fmt"
	"os/exec"
)

// Foreground runs the given command attached to the given standard streams
// and blocks until it terminates.
//
// A non-zero exit code or termination by a signal is not an error. It is
// reported in the returned [Status] only. If the process can not be started,
// a [StartError] is returned. Errors while waiting, like failing copies of
// non-file streams, are returned along with a [StateFailed] status.
func Foreground(cmd *exec.Cmd, stdio IO) (Status, error) {
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	err := cmd.Start()
	if err != nil {
		return Status{State: StateFailed, Code: -1, Err: err},
			newStartError(cmd, err)
	}

	status := statusFrom(cmd.ProcessState, cmd.Wait())
	if status.State == StateFailed {
		return status, fmt.Errorf("wait: %w", status.Err)
	}

	return status, nil
}
