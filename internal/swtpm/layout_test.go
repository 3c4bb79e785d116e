// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package swtpm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/vmlaunch/internal/swtpm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	assert.Equal(t, "/work/tpms/Mike-0003", swtpm.StateDir("/work", "Mike-0003"))
	assert.Equal(t, "tpms/Mike-0003/swtpm-sock", swtpm.SocketPath(".", "Mike-0003"))
}

func TestArgs(t *testing.T) {
	expected := []string{
		"socket",
		"--tpmstate", "dir=/work/tpms/Mike-0003",
		"--ctrl", "type=unixio,path=/work/tpms/Mike-0003/swtpm-sock",
		"--log", "level=20",
		"--tpm2",
		"-t",
	}

	assert.Equal(t, expected, swtpm.Args("/work/tpms/Mike-0003"))
}

func TestEnsureStateDir(t *testing.T) {
	workDir := t.TempDir()

	dir, err := swtpm.EnsureStateDir(workDir, "Mike-0003")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "tpms", "Mike-0003"), dir)
	assert.DirExists(t, dir)

	stateFile := filepath.Join(dir, "tpm2-00.permall")
	err = os.WriteFile(stateFile, []byte("state"), 0o600)
	require.NoError(t, err)

	again, err := swtpm.EnsureStateDir(workDir, "Mike-0003")
	require.NoError(t, err, "idempotent")
	assert.Equal(t, dir, again)

	content, err := os.ReadFile(stateFile)
	require.NoError(t, err)
	assert.Equal(t, "state", string(content), "existing files untouched")
}

func TestEnsureStateDir_Error(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), "file")

	err := os.WriteFile(workDir, nil, 0o600)
	require.NoError(t, err)

	_, err = swtpm.EnsureStateDir(workDir, "Mike-0003")
	require.ErrorIs(t, err, &swtpm.StateDirError{})

	var dirErr *swtpm.StateDirError
	require.ErrorAs(t, err, &dirErr)
	assert.Equal(t, filepath.Join(workDir, "tpms", "Mike-0003"), dirErr.Path)
}
