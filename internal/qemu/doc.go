// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides utilities for composing the argument vector of a QEMU
// system virtualization command for a UEFI guest with TPM, user mode
// networking and optional debugging facilities.
//
// Arguments are accumulated by a [Builder] in call order. Network devices are
// appended after all other arguments and the SMBIOS serial number argument is
// always the last one. Nothing is validated: malformed values are passed to
// QEMU verbatim and surface only as QEMU errors.
package qemu
