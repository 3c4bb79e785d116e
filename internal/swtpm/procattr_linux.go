// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package swtpm

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// sysProcAttr makes the kernel terminate the emulator if the launching
// thread dies, so it can not outlive a crashed launcher.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Pdeathsig: unix.SIGTERM,
	}
}
