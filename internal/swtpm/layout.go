// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package swtpm

import (
	"os"
	"path/filepath"
)

const (
	stateDirName   = "tpms"
	socketName     = "swtpm-sock"
	stateDirMode   = 0o755
	logLevel       = "20"
	ctrlSocketType = "unixio"
)

// StateDir returns the TPM state directory of the machine with the given
// serial number.
func StateDir(workDir, serial string) string {
	return filepath.Join(workDir, stateDirName, serial)
}

// SocketPath returns the path of the control socket of the TPM emulator for
// the machine with the given serial number.
func SocketPath(workDir, serial string) string {
	return filepath.Join(StateDir(workDir, serial), socketName)
}

// EnsureStateDir creates the state directory for the machine with the given
// serial number including all parents, if it does not exist yet. Existing
// directories and their content are left as they are.
//
// It returns the path of the state directory.
func EnsureStateDir(workDir, serial string) (string, error) {
	dir := StateDir(workDir, serial)

	err := os.MkdirAll(dir, stateDirMode)
	if err != nil {
		return "", &StateDirError{Path: dir, Err: err}
	}

	return dir, nil
}

// Args returns the swtpm arguments for running a TPM 2.0 emulator with the
// given state directory.
//
// The control socket is created in the state directory. The emulator
// terminates once the client disconnects.
func Args(stateDir string) []string {
	return []string{
		"socket",
		"--tpmstate", "dir=" + stateDir,
		"--ctrl", "type=" + ctrlSocketType + ",path=" + filepath.Join(stateDir, socketName),
		"--log", "level=" + logLevel,
		"--tpm2",
		"-t",
	}
}
