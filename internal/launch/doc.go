// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package launch runs the launch sequence of a virtual machine: the TPM
// emulator is started in the background and the QEMU monitor in the
// foreground attached to the terminal.
package launch
