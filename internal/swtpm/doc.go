// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package swtpm runs the swtpm TPM 2.0 emulator for a virtual machine.
//
// Each machine has its own persistent state directory below the work dir,
// named after the machine's serial number:
//
//	<workdir>/tpms/<serial>/
//	<workdir>/tpms/<serial>/swtpm-sock
//
// The state directory is never removed, so the TPM state survives restarts
// of the same machine.
package swtpm
